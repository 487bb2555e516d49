package handlers

import (
	"net/http"

	"github.com/coopera/savings-backend/internal/api/httpx"
	"github.com/coopera/savings-backend/internal/models"
)

func (h *API) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := h.resolveUser(w, r)
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *API) PersonalSavings(w http.ResponseWriter, r *http.Request) {
	u, ok := h.resolveUser(w, r)
	if !ok {
		return
	}
	p, err := h.profile.PersonalSavings(r.Context(), u.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *API) Notifications(w http.ResponseWriter, r *http.Request) {
	u, ok := h.resolveUser(w, r)
	if !ok {
		return
	}
	ns, err := h.profile.Notifications(r.Context(), u.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if ns == nil {
		ns = []models.Notification{}
	}
	httpx.WriteJSON(w, http.StatusOK, ns)
}
