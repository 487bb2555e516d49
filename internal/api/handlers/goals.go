package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/coopera/savings-backend/internal/api/httpx"
	"github.com/coopera/savings-backend/internal/models"
)

type createGoalReq struct {
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	Deadline     *time.Time      `json:"deadline,omitempty"`
}

func (h *API) CreateGoal(w http.ResponseWriter, r *http.Request) {
	u, ok := h.resolveUser(w, r)
	if !ok {
		return
	}
	var req createGoalReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	g, err := h.goals.Create(r.Context(), u.ID, models.SavingsGoal{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		Deadline:     req.Deadline,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, g)
}

func (h *API) ListGoals(w http.ResponseWriter, r *http.Request) {
	u, ok := h.resolveUser(w, r)
	if !ok {
		return
	}
	goals, err := h.goals.List(r.Context(), u.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if goals == nil {
		goals = []models.SavingsGoal{}
	}
	httpx.WriteJSON(w, http.StatusOK, goals)
}

func (h *API) GetGoal(w http.ResponseWriter, r *http.Request) {
	u, ok := h.resolveUser(w, r)
	if !ok {
		return
	}
	g, err := h.goals.Get(r.Context(), u.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, g)
}
