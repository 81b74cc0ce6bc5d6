package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/parcauto/fleet-dashboard/internal/backend"
	"github.com/parcauto/fleet-dashboard/internal/domain"
	"go.uber.org/zap"
)

// AuthService exchanges credentials for a backend token and resolves the
// current user
type AuthService struct {
	client *backend.Client
	logger *zap.Logger
}

func NewAuthService(client *backend.Client, logger *zap.Logger) *AuthService {
	return &AuthService{
		client: client,
		logger: logger,
	}
}

// Login authenticates against the fleet backend. It returns the bearer token
// and the user record on success; wrong credentials map to
// ErrInvalidCredentials so the handler can answer 401 without leaking which
// part was wrong.
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResult, error) {
	var result domain.LoginResult
	if err := s.client.PostJSON(ctx, "/login", req, &result); err != nil {
		if apiErr, ok := backend.AsAPIError(err); ok && (apiErr.Status == 401 || apiErr.Status == 422) {
			s.logger.Info("login refused", zap.String("email", req.Email))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	if result.Token == "" {
		return nil, fmt.Errorf("backend returned an empty token")
	}

	s.logger.Info("user logged in",
		zap.Int("user_id", result.User.ID),
		zap.String("role", string(result.User.Role)),
	)
	return &result, nil
}

// Logout revokes the backend token. Revocation failures are logged but not
// returned: the session cookie is cleared either way and the token expires on
// its own.
func (s *AuthService) Logout(ctx context.Context) {
	if err := s.client.PostJSON(ctx, "/logout", nil, nil); err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return
		}
		s.logger.Warn("backend logout failed", zap.Error(err))
	}
}

// CurrentUser fetches the authenticated user's profile
func (s *AuthService) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := s.client.GetJSON(ctx, "/user", nil, &user); err != nil {
		return nil, fmt.Errorf("failed to fetch current user: %w", err)
	}
	return &user, nil
}
