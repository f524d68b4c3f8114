package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campusboard/noticeboard-service/internal/events"
	"github.com/campusboard/noticeboard-service/internal/models"
	"github.com/campusboard/noticeboard-service/internal/repositories"
	"github.com/campusboard/noticeboard-service/internal/validator"
)

type eventService struct {
	storage   repositories.Storage
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewEventService(storage repositories.Storage, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) EventService {
	return &eventService{
		storage:   storage,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *eventService) List(ctx context.Context) ([]*models.Event, error) {
	calendar, err := s.storage.Event().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return calendar, nil
}

func (s *eventService) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.storage.Event().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (s *eventService) Create(ctx context.Context, req *EventCreateRequest, creatorID uint) (*models.Event, error) {
	if verrs := s.validator.GetBusinessValidator().ValidateEventCreate(req); len(verrs) > 0 {
		return nil, verrs
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate.Time,
		EndDate:     req.EndDate.Time,
		Location:    req.Location,
		CreatedBy:   creatorID,
		Important:   req.Important,
		Category:    req.Category,
	}

	if err := s.storage.Event().Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.logger.Info("event created", "event_id", event.ID, "created_by", creatorID)

	s.publishNotice(ctx, events.TypeEventCreated, event)

	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id uint) error {
	if err := s.storage.Event().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.logger.Info("event deleted", "event_id", id)

	return nil
}

func (s *eventService) publishNotice(ctx context.Context, eventType string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, payload)); err != nil {
		s.logger.Warn("failed to publish notice event", "event_type", eventType, "error", err)
	}
}
