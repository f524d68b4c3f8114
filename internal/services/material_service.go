package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campusboard/noticeboard-service/internal/events"
	"github.com/campusboard/noticeboard-service/internal/files"
	"github.com/campusboard/noticeboard-service/internal/models"
	"github.com/campusboard/noticeboard-service/internal/repositories"
	"github.com/campusboard/noticeboard-service/internal/validator"
)

type materialService struct {
	storage   repositories.Storage
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
	files     files.Store
}

func NewMaterialService(storage repositories.Storage, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher, fileStore files.Store) MaterialService {
	return &materialService{
		storage:   storage,
		logger:    logger,
		validator: v,
		publisher: publisher,
		files:     fileStore,
	}
}

func (s *materialService) List(ctx context.Context) ([]*models.Material, error) {
	materials, err := s.storage.Material().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	return materials, nil
}

func (s *materialService) GetByID(ctx context.Context, id uint) (*models.Material, error) {
	material, err := s.storage.Material().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	return material, nil
}

func (s *materialService) ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Material, error) {
	materials, err := s.storage.Material().ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials by teacher: %w", err)
	}
	return materials, nil
}

func (s *materialService) Create(ctx context.Context, req *MaterialCreateRequest, teacherID uint) (*models.Material, error) {
	if verrs := s.validator.GetBusinessValidator().ValidateMaterialCreate(req); len(verrs) > 0 {
		return nil, verrs
	}

	fileURL := req.FileURL
	material := &models.Material{
		Title:       req.Title,
		Description: req.Description,
		FileURL:     &fileURL,
		UploadedAt:  time.Now(),
		TeacherID:   teacherID,
		ClassID:     req.ClassID,
		Category:    req.Category,
	}

	if err := s.storage.Material().Create(ctx, material); err != nil {
		return nil, fmt.Errorf("failed to create material: %w", err)
	}

	s.logger.Info("material created", "material_id", material.ID, "teacher_id", teacherID)

	s.publishNotice(ctx, events.TypeMaterialCreated, material)

	return material, nil
}

// Delete removes the row after checking ownership. The stored file is
// unlinked first; an unlink failure is logged and the delete proceeds,
// the row is the source of truth.
func (s *materialService) Delete(ctx context.Context, id uint, actor *models.User) error {
	material, err := s.storage.Material().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrMaterialNotFound
		}
		return fmt.Errorf("failed to get material: %w", err)
	}

	if actor.Role != models.RoleAdmin && material.TeacherID != actor.ID {
		return NewPermissionError(actor.ID, id, "material", "delete", "not owner")
	}

	if material.FileURL != nil && s.files != nil {
		if err := s.files.Remove(*material.FileURL); err != nil {
			s.logger.Warn("failed to remove material file", "material_id", id, "file_url", *material.FileURL, "error", err)
		}
	}

	if err := s.storage.Material().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrMaterialNotFound
		}
		return fmt.Errorf("failed to delete material: %w", err)
	}

	s.logger.Info("material deleted", "material_id", id, "deleted_by", actor.ID)

	s.publishNotice(ctx, events.TypeMaterialDeleted, material)

	return nil
}

func (s *materialService) publishNotice(ctx context.Context, eventType string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, payload)); err != nil {
		s.logger.Warn("failed to publish notice event", "event_type", eventType, "error", err)
	}
}
