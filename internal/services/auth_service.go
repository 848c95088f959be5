package services

import (
	"context"
	"errors"
	"time"

	"github.com/pumppot-labs/pumppot-verifier/internal/config"
	"github.com/pumppot-labs/pumppot-verifier/internal/models"
	"github.com/pumppot-labs/pumppot-verifier/internal/repositories"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AdminUser, error)
	Login(ctx context.Context, req *models.LoginRequest) (string, error) // Returns JWT token
}

type authService struct {
	adminRepo repositories.AdminUserRepository
	cfg       *config.Config
}

// NewAuthService creates a new AuthService implementation
func NewAuthService(adminRepo repositories.AdminUserRepository, cfg *config.Config) AuthService {
	return &authService{
		adminRepo: adminRepo,
		cfg:       cfg,
	}
}

// Register creates a new admin account with a bcrypt-hashed password.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AdminUser, error) {
	if existing, err := s.adminRepo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, errors.New("an account with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	role := req.Role
	if role == "" {
		role = "viewer"
	}
	user := &models.AdminUser{
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := s.adminRepo.Create(ctx, user); err != nil {
		slog.Error("Failed to create admin user", "error", err, "email", req.Email)
		return nil, errors.New("failed to create account")
	}

	user.Password = ""
	return user, nil
}

// Login validates admin credentials and returns a signed JWT.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	user, err := s.adminRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	claims := jwt.MapClaims{
		"sub":   user.ID.Hex(),
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(time.Second * time.Duration(s.cfg.JWT.ExpiresIn)).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		slog.Error("Failed to sign JWT", "error", err)
		return "", errors.New("failed to generate token")
	}
	return tokenString, nil
}
