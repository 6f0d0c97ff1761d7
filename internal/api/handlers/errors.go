package handlers

import (
	"errors"
	"net/http"

	"github.com/ugcforge/escrow-backend/internal/api/httpx"
	"github.com/ugcforge/escrow-backend/internal/api/validate"
	"github.com/ugcforge/escrow-backend/internal/escrow"
)

// writeDomainError maps the error taxonomy to HTTP. Every failure carries
// a short human-readable message; no partial financial state is ever
// presented as success.
func writeDomainError(w http.ResponseWriter, err error) {
	var verrs validate.Errs
	switch {
	case errors.As(err, &verrs):
		httpx.WriteError(w, http.StatusBadRequest, "validation_failed", "invalid request", verrs)
	case errors.Is(err, escrow.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "submission not found", nil)
	case errors.Is(err, escrow.ErrNotOwner):
		httpx.WriteError(w, http.StatusForbidden, "not_owner", "you do not own this campaign", nil)
	case errors.Is(err, escrow.ErrInvalidState):
		httpx.WriteError(w, http.StatusConflict, "invalid_state", "submission is not awaiting review", nil)
	case errors.Is(err, escrow.ErrInsufficientFunds):
		httpx.WriteError(w, http.StatusUnprocessableEntity, "insufficient_funds", "pending balance too low", nil)
	case errors.Is(err, escrow.ErrConflict):
		httpx.WriteError(w, http.StatusConflict, "conflict", "duplicate operation", nil)
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}
