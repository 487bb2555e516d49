package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/coopera/savings-backend/internal/api/httpx"
	"github.com/coopera/savings-backend/internal/models"
)

type applyTransactionReq struct {
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type"`
}

type addFundsReq struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *API) ApplyTransaction(w http.ResponseWriter, r *http.Request) {
	u, ok := h.resolveUser(w, r)
	if !ok {
		return
	}
	var req applyTransactionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	g, err := h.ledger.ApplyTransaction(r.Context(), u.ID, chi.URLParam(r, "id"), req.Amount, models.TransactionType(req.Type))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, g)
}

func (h *API) AddFunds(w http.ResponseWriter, r *http.Request) {
	u, ok := h.resolveUser(w, r)
	if !ok {
		return
	}
	var req addFundsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	g, err := h.ledger.AddFunds(r.Context(), u.ID, chi.URLParam(r, "id"), req.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, g)
}

func (h *API) ListTransactions(w http.ResponseWriter, r *http.Request) {
	u, ok := h.resolveUser(w, r)
	if !ok {
		return
	}
	txs, err := h.ledger.ListTransactions(r.Context(), u.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if txs == nil {
		txs = []models.SavingsTransaction{}
	}
	httpx.WriteJSON(w, http.StatusOK, txs)
}
