package service

import (
	"context"
	"errors"

	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository"
	"rentdesk-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	users  repository.UserRepository
	tokens security.TokenManager
}

func NewAuthService(users repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Same answer for unknown email and bad password.
		return "", "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}

	logger.Info("User logged in", "user_id", user.ID)
	return access, refresh, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", security.ErrWrongTokenType
	}
	// Re-read the user so a deleted account cannot refresh forever.
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", security.ErrInvalidToken
	}
	return s.tokens.GenerateAccessToken(user.ID, user.Email)
}
