package handlers

import (
	"net/http"

	"github.com/ugcforge/escrow-backend/internal/api/httpx"
	"github.com/ugcforge/escrow-backend/internal/api/validate"
	"github.com/ugcforge/escrow-backend/internal/middleware"
	"github.com/ugcforge/escrow-backend/internal/models"
	repo "github.com/ugcforge/escrow-backend/internal/repository"
)

type CampaignsHandler struct {
	campaigns repo.Campaigns
}

func NewCampaignsHandler(c repo.Campaigns) *CampaignsHandler {
	return &CampaignsHandler{campaigns: c}
}

type createCampaignReq struct {
	Title string `json:"title" validate:"required,min=3"`
}

func (h *CampaignsHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	var req createCampaignReq
	if err := validate.Decode(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	c, err := h.campaigns.Create(r.Context(), models.Campaign{BrandID: u.UserID, Title: req.Title})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, c)
}
