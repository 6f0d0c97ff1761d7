package handlers

import (
	"errors"
	"net/http"

	"github.com/ugcforge/escrow-backend/internal/api/httpx"
	"github.com/ugcforge/escrow-backend/internal/api/validate"
	"github.com/ugcforge/escrow-backend/internal/escrow"
)

type WebhooksHandler struct {
	engine *escrow.Engine
}

func NewWebhooksHandler(e *escrow.Engine) *WebhooksHandler {
	return &WebhooksHandler{engine: e}
}

// checkoutEvent is the payment provider's completed-checkout payload,
// reduced to the fields the ledger needs.
type checkoutEvent struct {
	BrandID     string `json:"brand_id" validate:"required,uuid"`
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
	ProviderRef string `json:"provider_ref" validate:"required"`
}

// Checkout credits a brand's pending balance. Providers redeliver events,
// so a duplicate provider_ref is acknowledged with 200 rather than
// credited again.
func (h *WebhooksHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var ev checkoutEvent
	if err := validate.Decode(r, &ev); err != nil {
		writeDomainError(w, err)
		return
	}
	entry, err := h.engine.Deposit(r.Context(), ev.BrandID, ev.AmountCents, ev.ProviderRef)
	if err != nil {
		if errors.Is(err, escrow.ErrConflict) {
			httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "duplicate": true})
			return
		}
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, entry)
}
