package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/campusboard/noticeboard-service/internal/auth"
	"github.com/campusboard/noticeboard-service/internal/models"
	"github.com/campusboard/noticeboard-service/internal/repositories"
	"github.com/campusboard/noticeboard-service/internal/validator"
)

type authService struct {
	storage   repositories.Storage
	logger    *slog.Logger
	validator *validator.Validator

	// bootstrapIDs are the seeded demo accounts whose passwords are
	// stored in the clear. Only these may log in with a plaintext
	// comparison; every other account goes through scrypt.
	bootstrapIDs map[uint]struct{}
}

func NewAuthService(storage repositories.Storage, logger *slog.Logger, v *validator.Validator, bootstrapIDs map[uint]struct{}) AuthService {
	if bootstrapIDs == nil {
		bootstrapIDs = map[uint]struct{}{}
	}
	return &authService{
		storage:      storage,
		logger:       logger,
		validator:    v,
		bootstrapIDs: bootstrapIDs,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	if verrs := s.validator.GetBusinessValidator().ValidateRegister(req); len(verrs) > 0 {
		return nil, verrs
	}

	role := models.RoleStudent
	if req.Role != "" {
		parsed, err := models.ParseRole(req.Role)
		if err != nil {
			return nil, validator.ValidationErrors{{Field: "role", Message: "role must be one of student, teacher, admin", Value: req.Role, Rule: "role"}}
		}
		role = parsed
	}

	if _, err := s.storage.User().GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}

	digest, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		Password: digest,
		Name:     req.Name,
		Role:     role,
	}

	if err := s.storage.User().Create(ctx, user); err != nil {
		// A concurrent registration may win the race past the
		// availability check; the unique index is authoritative.
		if errors.Is(err, repositories.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username, "role", user.Role)

	return user, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*models.User, error) {
	if verrs := s.validator.GetBusinessValidator().Validate(req); len(verrs) > 0 {
		return nil, verrs
	}

	user, err := s.storage.User().GetByUsername(ctx, req.Username)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			// Same failure as a wrong password so usernames cannot
			// be probed.
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.verifyPassword(user, req.Password) {
		s.logger.Warn("login rejected", "username", req.Username)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("login succeeded", "user_id", user.ID, "username", user.Username)

	return user, nil
}

func (s *authService) verifyPassword(user *models.User, candidate string) bool {
	if _, seeded := s.bootstrapIDs[user.ID]; seeded && !auth.IsHashedDigest(user.Password) {
		return user.Password == candidate
	}

	ok, err := auth.VerifyPassword(candidate, user.Password)
	if err != nil {
		s.logger.Error("stored credential digest unreadable", "user_id", user.ID, "error", err)
		return false
	}
	return ok
}
