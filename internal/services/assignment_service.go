package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campusboard/noticeboard-service/internal/events"
	"github.com/campusboard/noticeboard-service/internal/models"
	"github.com/campusboard/noticeboard-service/internal/repositories"
	"github.com/campusboard/noticeboard-service/internal/validator"
)

type assignmentService struct {
	storage   repositories.Storage
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewAssignmentService(storage repositories.Storage, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) AssignmentService {
	return &assignmentService{
		storage:   storage,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *assignmentService) List(ctx context.Context) ([]*models.Assignment, error) {
	assignments, err := s.storage.Assignment().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

func (s *assignmentService) GetByID(ctx context.Context, id uint) (*models.Assignment, error) {
	assignment, err := s.storage.Assignment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return assignment, nil
}

func (s *assignmentService) ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Assignment, error) {
	assignments, err := s.storage.Assignment().ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments by teacher: %w", err)
	}
	return assignments, nil
}

func (s *assignmentService) Create(ctx context.Context, req *AssignmentCreateRequest, teacherID uint) (*models.Assignment, error) {
	if verrs := s.validator.GetBusinessValidator().ValidateAssignmentCreate(req); len(verrs) > 0 {
		return nil, verrs
	}

	status := models.AssignmentActive
	if req.Status != "" {
		parsed, err := models.ParseAssignmentStatus(req.Status)
		if err != nil {
			return nil, validator.ValidationErrors{{Field: "status", Message: "status must be one of draft, active, archived", Value: req.Status, Rule: "assignment_status"}}
		}
		status = parsed
	}

	assignment := &models.Assignment{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate.Time,
		CreatedAt:   time.Now(),
		TeacherID:   teacherID,
		ClassID:     req.ClassID,
		Status:      status,
	}

	if err := s.storage.Assignment().Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.logger.Info("assignment created", "assignment_id", assignment.ID, "teacher_id", teacherID)

	s.publishNotice(ctx, events.TypeAssignmentCreated, assignment)

	return assignment, nil
}

func (s *assignmentService) Delete(ctx context.Context, id uint, actor *models.User) error {
	assignment, err := s.storage.Assignment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to get assignment: %w", err)
	}

	if actor.Role != models.RoleAdmin && assignment.TeacherID != actor.ID {
		return NewPermissionError(actor.ID, id, "assignment", "delete", "not owner")
	}

	if err := s.storage.Assignment().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	s.logger.Info("assignment deleted", "assignment_id", id, "deleted_by", actor.ID)

	return nil
}

func (s *assignmentService) publishNotice(ctx context.Context, eventType string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, payload)); err != nil {
		s.logger.Warn("failed to publish notice event", "event_type", eventType, "error", err)
	}
}
