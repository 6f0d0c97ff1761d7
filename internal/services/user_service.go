package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ugcforge/escrow-backend/internal/auth"
	"github.com/ugcforge/escrow-backend/internal/models"
	repo "github.com/ugcforge/escrow-backend/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type UserService struct {
	users repo.Users
	tm    *auth.TokenManager
}

func NewUserService(r repo.Users, tm *auth.TokenManager) *UserService {
	return &UserService{users: r, tm: tm}
}

func (s *UserService) Register(ctx context.Context, username, email, password, role string) (models.User, error) {
	u := models.User{
		Username: strings.TrimSpace(username),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Role:     role,
	}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	if len(password) < 8 {
		return models.User{}, errors.New("password too short")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	return s.users.Create(ctx, u.Username, u.Email, hash, u.Role)
}

func (s *UserService) Login(ctx context.Context, email, password string) (auth.TokenPair, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return auth.TokenPair{}, ErrInvalidCredentials
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return auth.TokenPair{}, ErrInvalidCredentials
	}
	return s.tm.GeneratePair(u.ID, u.Role)
}

func (s *UserService) Refresh(_ context.Context, refreshToken string) (auth.TokenPair, error) {
	claims, isRefresh, err := s.tm.ParseAny(refreshToken)
	if err != nil || !isRefresh {
		return auth.TokenPair{}, ErrInvalidCredentials
	}
	return s.tm.GeneratePair(claims.UserID, claims.Role)
}
