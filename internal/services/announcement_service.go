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

type announcementService struct {
	storage   repositories.Storage
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewAnnouncementService(storage repositories.Storage, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) AnnouncementService {
	return &announcementService{
		storage:   storage,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *announcementService) List(ctx context.Context) ([]*models.Announcement, error) {
	announcements, err := s.storage.Announcement().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return announcements, nil
}

func (s *announcementService) GetByID(ctx context.Context, id uint) (*models.Announcement, error) {
	announcement, err := s.storage.Announcement().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("failed to get announcement: %w", err)
	}
	return announcement, nil
}

func (s *announcementService) Create(ctx context.Context, req *AnnouncementCreateRequest, authorID uint) (*models.Announcement, error) {
	if verrs := s.validator.GetBusinessValidator().ValidateAnnouncementCreate(req); len(verrs) > 0 {
		return nil, verrs
	}

	announcement := &models.Announcement{
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: time.Now(),
		AuthorID:  authorID,
		Important: req.Important,
		Category:  req.Category,
		Audience:  req.Audience,
	}

	if err := s.storage.Announcement().Create(ctx, announcement); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}

	s.logger.Info("announcement created", "announcement_id", announcement.ID, "author_id", authorID)

	s.publishNotice(ctx, events.TypeAnnouncementCreated, announcement)

	return announcement, nil
}

func (s *announcementService) Delete(ctx context.Context, id uint) error {
	if err := s.storage.Announcement().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAnnouncementNotFound
		}
		return fmt.Errorf("failed to delete announcement: %w", err)
	}

	s.logger.Info("announcement deleted", "announcement_id", id)

	return nil
}

// publishNotice is best effort; a bus outage never fails the write.
func (s *announcementService) publishNotice(ctx context.Context, eventType string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, payload)); err != nil {
		s.logger.Warn("failed to publish notice event", "event_type", eventType, "error", err)
	}
}
