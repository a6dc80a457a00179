package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noriyal/madrasa-portal/internal/app/models/dto"
	"github.com/noriyal/madrasa-portal/internal/pkg/apperrors"
	"github.com/noriyal/madrasa-portal/internal/pkg/auth"
)

// AuthService exchanges the shared admin password for a session token.
// Retries are unlimited and there is no lockout, matching the original
// portal's behavior.
type AuthService interface {
	Login(ctx context.Context, password string) (dto.LoginResponse, error)
}

type authServiceImpl struct {
	adminPassword string
	jwtService    *auth.JWTService
	logger        zerolog.Logger
}

// NewAuthService creates a new auth service instance.
func NewAuthService(adminPassword string, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		adminPassword: adminPassword,
		jwtService:    jwtService,
		logger:        logger,
	}
}

// Login checks the password and issues an admin token.
func (s *authServiceImpl) Login(ctx context.Context, password string) (dto.LoginResponse, error) {
	if !auth.CheckPassword(s.adminPassword, password) {
		s.logger.Warn().Msg("Admin login rejected: wrong password")
		return dto.LoginResponse{}, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken()
	if err != nil {
		return dto.LoginResponse{}, err
	}

	s.logger.Info().Msg("Admin logged in")
	return dto.LoginResponse{Token: token, ExpiresIn: expiresIn}, nil
}
