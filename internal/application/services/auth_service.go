package services

import (
	"errors"

	"github.com/golang-jwt/jwt/v4"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
	"github.com/lumenworks/galleria-go/internal/infrastructure/security"
	"github.com/lumenworks/galleria-go/pkg/config"
)

var (
	ErrAuthNotConfigured  = errors.New("admin auth is not configured")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService issues and validates admin tokens.
type AuthService struct {
	logger *logging.ChanneledLogger
}

func NewAuthService(logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{logger: logger}
}

// Login verifies the admin password and returns a signed token.
func (s *AuthService) Login(password string) (string, error) {
	if config.JWTSecret == "" || config.AdminPasswordHash == "" {
		return "", ErrAuthNotConfigured
	}
	if !security.VerifyPassword(password, config.AdminPasswordHash) {
		s.logger.Auth().Warn("Admin login rejected")
		return "", ErrInvalidCredentials
	}

	token, err := security.GenerateAdminToken(config.JWTSecret, config.TokenLifetime)
	if err != nil {
		s.logger.Auth().Error("Failed to sign admin token", "error", err.Error())
		return "", err
	}

	s.logger.Auth().Info("Admin login accepted")
	return token, nil
}

// Validate checks a bearer token and confirms the admin role.
func (s *AuthService) Validate(token string) (jwt.MapClaims, error) {
	claims, err := security.ValidateJWT(token, config.JWTSecret)
	if err != nil {
		return nil, err
	}
	if !security.IsAdminClaims(claims) {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}
