package service_test

import (
	"context"
	"testing"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/security"
	"rentdesk-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("test-secret", time.Hour, 7*24*time.Hour)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: 1, Email: "admin@rentdesk.test", PasswordHash: string(hash)}

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByEmail", ctx, "admin@rentdesk.test").Return(user, nil)
		svc := service.NewAuthService(users, tokens)

		access, refresh, err := svc.Login(ctx, "admin@rentdesk.test", "s3cret")
		require.NoError(t, err)

		claims, err := tokens.ValidateToken(access)
		require.NoError(t, err)
		assert.Equal(t, int32(1), claims.UserID)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)

		claims, err = tokens.ValidateToken(refresh)
		require.NoError(t, err)
		assert.Equal(t, security.TokenTypeRefresh, claims.Type)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByEmail", ctx, "admin@rentdesk.test").Return(user, nil)
		svc := service.NewAuthService(users, tokens)

		_, _, err := svc.Login(ctx, "admin@rentdesk.test", "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByEmail", ctx, "nobody@rentdesk.test").Return(nil, domain.ErrCustomerNotFound)
		svc := service.NewAuthService(users, tokens)

		_, _, err := svc.Login(ctx, "nobody@rentdesk.test", "s3cret")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("test-secret", time.Hour, 7*24*time.Hour)
	user := &domain.User{ID: 1, Email: "admin@rentdesk.test"}

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByID", ctx, int32(1)).Return(user, nil)
		svc := service.NewAuthService(users, tokens)

		refresh, err := tokens.GenerateRefreshToken(1, user.Email)
		require.NoError(t, err)

		access, err := svc.Refresh(ctx, refresh)
		require.NoError(t, err)

		claims, err := tokens.ValidateToken(access)
		require.NoError(t, err)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)
	})

	t.Run("RejectsAccessToken", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := service.NewAuthService(users, tokens)

		access, err := tokens.GenerateAccessToken(1, user.Email)
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, access)
		assert.ErrorIs(t, err, security.ErrWrongTokenType)
	})
}
