package handlers

import (
	"errors"
	"net/http"

	"github.com/ugcforge/escrow-backend/internal/api/httpx"
	"github.com/ugcforge/escrow-backend/internal/api/validate"
	"github.com/ugcforge/escrow-backend/internal/services"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(us *services.UserService) *AuthHandler {
	return &AuthHandler{users: us}
}

type registerReq struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=brand creator"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := validate.Decode(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	u, err := h.users.Register(r.Context(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "register_failed", err.Error(), nil)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, u)
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := validate.Decode(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	pair, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", nil)
			return
		}
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, pair)
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := validate.Decode(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	pair, err := h.users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_refresh", "invalid refresh token", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, pair)
}
