package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ugcforge/escrow-backend/internal/api/httpx"
	"github.com/ugcforge/escrow-backend/internal/api/validate"
	"github.com/ugcforge/escrow-backend/internal/escrow"
	"github.com/ugcforge/escrow-backend/internal/middleware"
	"github.com/ugcforge/escrow-backend/internal/services"
)

type SubmissionsHandler struct {
	engine      *escrow.Engine
	checker     *escrow.Checker
	submissions *services.SubmissionService
}

func NewSubmissionsHandler(e *escrow.Engine, c *escrow.Checker, s *services.SubmissionService) *SubmissionsHandler {
	return &SubmissionsHandler{engine: e, checker: c, submissions: s}
}

type createSubmissionReq struct {
	CampaignID  string `json:"campaign_id" validate:"required,uuid"`
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
	ContentRef  string `json:"content_ref" validate:"required"`
}

func (h *SubmissionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	var req createSubmissionReq
	if err := validate.Decode(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	sub, err := h.submissions.Create(r.Context(), req.CampaignID, u.UserID, req.AmountCents, req.ContentRef)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, sub)
}

func (h *SubmissionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	sub, err := h.submissions.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sub)
}

// approveResp is the invocation surface's success envelope.
type approveResp struct {
	Success                 bool   `json:"success"`
	Message                 string `json:"message"`
	SubmissionID            string `json:"submission_id"`
	BrandLedgerID           string `json:"brand_ledger_id"`
	CreatorLedgerID         string `json:"creator_ledger_id"`
	AmountReleased          int64  `json:"amount_released"`
	BrandPendingBalance     int64  `json:"brand_pending_balance"`
	CreatorAvailableBalance int64  `json:"creator_available_balance"`
	NotificationID          string `json:"notification_id"`
}

func (h *SubmissionsHandler) Approve(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	res, err := h.engine.Approve(r.Context(), chi.URLParam(r, "id"), u.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, approveResp{
		Success:                 true,
		Message:                 "funds released",
		SubmissionID:            res.SubmissionID,
		BrandLedgerID:           res.BrandLedgerID,
		CreatorLedgerID:         res.CreatorLedgerID,
		AmountReleased:          res.AmountReleased,
		BrandPendingBalance:     res.BrandPendingCents,
		CreatorAvailableBalance: res.CreatorAvailable,
		NotificationID:          res.NotificationID,
	})
}

func (h *SubmissionsHandler) CanApprove(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	res, err := h.checker.CanApprove(r.Context(), chi.URLParam(r, "id"), u.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *SubmissionsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	if err := h.submissions.Reject(r.Context(), chi.URLParam(r, "id"), u.UserID); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *SubmissionsHandler) RequestRevision(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	if err := h.submissions.RequestRevision(r.Context(), chi.URLParam(r, "id"), u.UserID); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

type resubmitReq struct {
	ContentRef string `json:"content_ref" validate:"required"`
}

func (h *SubmissionsHandler) Resubmit(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	var req resubmitReq
	if err := validate.Decode(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.submissions.Resubmit(r.Context(), chi.URLParam(r, "id"), u.UserID, req.ContentRef); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}
