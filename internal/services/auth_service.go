package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jungle-hr/pulse-match-service/internal/models"
	"github.com/jungle-hr/pulse-match-service/internal/repositories"
	"github.com/jungle-hr/pulse-match-service/internal/session"
	"github.com/jungle-hr/pulse-match-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	sessions  session.Store
	logger    *slog.Logger
	validator *validator.Validator

	// Fixed demo delay so the frontend's loading state is observable.
	loginDelay time.Duration
}

func NewAuthService(repo repositories.Repository, sessions session.Store, logger *slog.Logger, validator *validator.Validator, loginDelay time.Duration) AuthService {
	return &authService{
		repo:       repo,
		sessions:   sessions,
		logger:     logger,
		validator:  validator,
		loginDelay: loginDelay,
	}
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	// The delay runs before credential verification so success and failure
	// take the same time.
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	user, err := s.repo.User().Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidCredentials) {
			s.logger.Info("Login rejected", "email", req.Email)
			return nil, repositories.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	token := uuid.NewString()
	if err := s.sessions.Set(ctx, token, user); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	redirect, err := s.landingRoute(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Login succeeded", "user_id", user.ID, "role", user.Role, "redirect", redirect)

	return &LoginResponse{
		Token:    token,
		User:     user,
		Redirect: redirect,
	}, nil
}

func (s *authService) CurrentSession(ctx context.Context, token string) (*SessionResponse, error) {
	user, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	redirect, err := s.landingRoute(ctx, user)
	if err != nil {
		return nil, err
	}

	return &SessionResponse{User: user, Redirect: redirect}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Clear(ctx, token); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// landingRoute resolves the post-login destination. Employees without a
// profile are sent to profile creation first; everyone else lands on their
// role's canonical route.
func (s *authService) landingRoute(ctx context.Context, user *models.User) (string, error) {
	route := models.RouteForRole(user.Role)

	if user.Role != models.RoleEmployee {
		return route, nil
	}

	_, err := s.repo.Profile().GetByUserID(ctx, nil, user.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return models.PathCreateProfile, nil
		}
		return "", fmt.Errorf("failed to check profile: %w", err)
	}
	return route, nil
}

func (s *authService) wait(ctx context.Context) error {
	if s.loginDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.loginDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
