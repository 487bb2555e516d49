package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/coopera/savings-backend/internal/api/httpx"
	"github.com/coopera/savings-backend/internal/api/validate"
	"github.com/coopera/savings-backend/internal/middleware"
	"github.com/coopera/savings-backend/internal/models"
	repo "github.com/coopera/savings-backend/internal/repository"
	"github.com/coopera/savings-backend/internal/services"
)

// API groups the authenticated route handlers. Every handler resolves the
// request's external identity to an internal user up front and passes it
// down explicitly.
type API struct {
	identity *services.IdentityService
	goals    *services.GoalService
	ledger   *services.LedgerService
	profile  *services.ProfileService
}

func NewAPI(id *services.IdentityService, gs *services.GoalService, ls *services.LedgerService, ps *services.ProfileService) *API {
	return &API{identity: id, goals: gs, ledger: ls, profile: ps}
}

func (h *API) resolveUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	ident, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "authentication_required", "authentication required", nil)
		return models.User{}, false
	}
	u, err := h.identity.Resolve(r.Context(), ident)
	if err != nil {
		writeServiceError(w, err)
		return models.User{}, false
	}
	return u, true
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Store errors are logged with context and surface as opaque 500s.
func writeServiceError(w http.ResponseWriter, err error) {
	var errs validate.Errs
	switch {
	case errors.As(err, &errs):
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", errs.Error(), errs)
	case errors.Is(err, services.ErrInsufficientFunds):
		httpx.WriteError(w, http.StatusBadRequest, "insufficient_funds", "insufficient funds for withdrawal", nil)
	case errors.Is(err, repo.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "not found", nil)
	case errors.Is(err, services.ErrAuthenticationRequired):
		httpx.WriteError(w, http.StatusUnauthorized, "authentication_required", "authentication required", nil)
	default:
		slog.Error("store error", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}
