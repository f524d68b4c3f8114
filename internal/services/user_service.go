package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/campusboard/noticeboard-service/internal/auth"
	"github.com/campusboard/noticeboard-service/internal/models"
	"github.com/campusboard/noticeboard-service/internal/repositories"
	"github.com/campusboard/noticeboard-service/internal/validator"
)

type userService struct {
	storage   repositories.Storage
	logger    *slog.Logger
	validator *validator.Validator
	auth      AuthService
}

func NewUserService(storage repositories.Storage, logger *slog.Logger, v *validator.Validator, auth AuthService) UserService {
	return &userService{
		storage:   storage,
		logger:    logger,
		validator: v,
		auth:      auth,
	}
}

func (s *userService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.storage.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.storage.User().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Create is the admin path; it shares registration semantics so the
// credential format never diverges.
func (s *userService) Create(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	return s.auth.Register(ctx, req)
}

func (s *userService) Update(ctx context.Context, id uint, req *UserUpdateRequest) (*models.User, error) {
	if verrs := s.validator.GetBusinessValidator().ValidateUserUpdate(req); len(verrs) > 0 {
		return nil, verrs
	}

	patch := repositories.UserPatch{
		Username: req.Username,
		Name:     req.Name,
	}

	if req.Role != nil {
		role, err := models.ParseRole(*req.Role)
		if err != nil {
			return nil, validator.ValidationErrors{{Field: "role", Message: "role must be one of student, teacher, admin", Value: *req.Role, Rule: "role"}}
		}
		patch.Role = &role
	}

	// An updated password is always rehashed, including for the seeded
	// demo accounts; plaintext never survives an update.
	if req.Password != nil {
		digest, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		patch.Password = &digest
	}

	user, err := s.storage.User().Update(ctx, id, patch)
	if err != nil {
		switch {
		case repositories.IsNotFoundError(err):
			return nil, ErrUserNotFound
		case errors.Is(err, repositories.ErrDuplicateUsername):
			return nil, ErrUsernameTaken
		default:
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	s.logger.Info("user updated", "user_id", user.ID)

	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uint, actorID uint) error {
	if id == actorID {
		return ErrSelfDeletion
	}

	if err := s.storage.User().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted", "user_id", id, "deleted_by", actorID)

	return nil
}

// ExportRoster writes every account into one sheet for offline use.
// Passwords are never included.
func (s *userService) ExportRoster(ctx context.Context) (*excelize.File, error) {
	users, err := s.storage.User().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users for export: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Users"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create export sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headers := []string{"ID", "Username", "Name", "Role"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, user := range users {
		values := []interface{}{user.ID, user.Username, user.Name, string(user.Role)}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write roster row: %w", err)
			}
		}
	}

	return f, nil
}
