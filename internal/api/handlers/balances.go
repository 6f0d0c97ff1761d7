package handlers

import (
	"net/http"

	"github.com/ugcforge/escrow-backend/internal/api/httpx"
	"github.com/ugcforge/escrow-backend/internal/api/validate"
	"github.com/ugcforge/escrow-backend/internal/escrow"
	"github.com/ugcforge/escrow-backend/internal/middleware"
	"github.com/ugcforge/escrow-backend/internal/services"
)

type BalancesHandler struct {
	balances *services.BalanceService
	engine   *escrow.Engine
}

func NewBalancesHandler(bs *services.BalanceService, e *escrow.Engine) *BalancesHandler {
	return &BalancesHandler{balances: bs, engine: e}
}

func (h *BalancesHandler) Current(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	b, err := h.balances.Current(r.Context(), u.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

func (h *BalancesHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	entries, err := h.balances.Entries(r.Context(), u.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, entries)
}

type withdrawReq struct {
	AmountCents int64 `json:"amount_cents" validate:"required,gt=0"`
}

func (h *BalancesHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	var req withdrawReq
	if err := validate.Decode(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	entry, err := h.engine.Withdraw(r.Context(), u.UserID, req.AmountCents)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, entry)
}
