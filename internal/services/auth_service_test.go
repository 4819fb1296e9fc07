package services

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lottopantera/draw-engine/internal/apperrors"
	"github.com/lottopantera/draw-engine/internal/config"
	"github.com/lottopantera/draw-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (*AuthServiceImpl, *fakeAdminRepo) {
	t.Helper()
	repo := newFakeAdminRepo()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiresIn = 3600
	return NewAuthService(repo, cfg), repo
}

func TestCreateAdminAndLogin(t *testing.T) {
	service, _ := newAuthFixture(t)

	admin, err := service.CreateAdmin(context.Background(), "Ana", "ana@example.com", "s3cret-pass", "admin")
	require.NoError(t, err)
	assert.Empty(t, admin.Password, "hash must not leak out of CreateAdmin")

	response, err := service.Login(context.Background(), &models.LoginRequest{
		Email:    "ana@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", response.Email)
	assert.Equal(t, "admin", response.Role)
	assert.NotEmpty(t, response.Token)

	// The token carries the email claim the audit trail depends on
	token, err := jwt.Parse(response.Token, func(_ *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "ana@example.com", claims["email"])
}

func TestLogin_WrongPassword(t *testing.T) {
	service, _ := newAuthFixture(t)
	_, err := service.CreateAdmin(context.Background(), "Ana", "ana@example.com", "s3cret-pass", "admin")
	require.NoError(t, err)

	_, err = service.Login(context.Background(), &models.LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong-pass",
	})
	assert.True(t, apperrors.IsValidation(err), "expected validation error, got %v", err)
}

func TestLogin_UnknownEmail(t *testing.T) {
	service, _ := newAuthFixture(t)

	_, err := service.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.True(t, apperrors.IsValidation(err), "expected validation error, got %v", err)
}

func TestCreateAdmin_Rejections(t *testing.T) {
	service, _ := newAuthFixture(t)

	_, err := service.CreateAdmin(context.Background(), "Ana", "", "s3cret-pass", "admin")
	assert.True(t, apperrors.IsValidation(err))

	_, err = service.CreateAdmin(context.Background(), "Ana", "ana@example.com", "short", "admin")
	assert.True(t, apperrors.IsValidation(err))

	_, err = service.CreateAdmin(context.Background(), "Ana", "ana@example.com", "s3cret-pass", "admin")
	require.NoError(t, err)
	_, err = service.CreateAdmin(context.Background(), "Ana II", "ana@example.com", "other-pass", "operator")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}
