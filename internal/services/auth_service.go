package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lottopantera/draw-engine/internal/apperrors"
	"github.com/lottopantera/draw-engine/internal/config"
	"github.com/lottopantera/draw-engine/internal/models"
	"github.com/lottopantera/draw-engine/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl authenticates admin operators and issues the JWTs the
// middleware validates. The token's email claim is the actor identity every
// mutating call records in its audit entry.
type AuthServiceImpl struct {
	adminRepo repositories.AdminUserRepository
	cfg       *config.Config
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(adminRepo repositories.AdminUserRepository, cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{adminRepo: adminRepo, cfg: cfg}
}

// Login verifies credentials and returns a signed token
func (s *AuthServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	adminUser, err := s.adminRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewValidation("credentials", "invalid email or password")
		}
		return nil, fmt.Errorf("failed to look up admin user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(adminUser.Password), []byte(req.Password)); err != nil {
		return nil, apperrors.NewValidation("credentials", "invalid email or password")
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.JWT.ExpiresIn) * time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": adminUser.Email,
		"role":  adminUser.Role,
		"exp":   expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	slog.Info("Admin logged in", "email", adminUser.Email, "role", adminUser.Role)
	return &models.LoginResponse{
		Token:     signed,
		Email:     adminUser.Email,
		Role:      adminUser.Role,
		ExpiresAt: expiresAt,
	}, nil
}

// CreateAdmin registers an operator account with a bcrypt-hashed password
func (s *AuthServiceImpl) CreateAdmin(ctx context.Context, name, email, password, role string) (*models.AdminUser, error) {
	if email == "" {
		return nil, apperrors.NewValidation("email", "must not be empty")
	}
	if len(password) < 8 {
		return nil, apperrors.NewValidation("password", "must be at least 8 characters")
	}

	existing, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check admin email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("admin %q already exists: %w", email, apperrors.ErrConflict)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	adminUser := &models.AdminUser{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.adminRepo.Create(ctx, adminUser); err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}

	slog.Info("Admin user created", "email", email, "role", role)
	adminUser.Password = ""
	return adminUser, nil
}
