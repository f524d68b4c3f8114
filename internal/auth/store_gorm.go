package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/campusboard/noticeboard-service/internal/models"
)

// GormSessionStore persists sessions in the relational store, so they
// survive process restarts. Expired rows are filtered on read and swept by
// a background pruner.
type GormSessionStore struct {
	db   *gorm.DB
	done chan struct{}
	once sync.Once
}

const gormPruneInterval = time.Hour

func NewGormSessionStore(db *gorm.DB) *GormSessionStore {
	s := &GormSessionStore{
		db:   db,
		done: make(chan struct{}),
	}
	go s.pruneLoop()
	return s
}

func (s *GormSessionStore) Create(ctx context.Context, session *models.Session) error {
	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *GormSessionStore) Get(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, time.Now().UTC()).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &session, nil
}

func (s *GormSessionStore) Delete(ctx context.Context, token string) error {
	if err := s.db.WithContext(ctx).Delete(&models.Session{}, "token = ?", token).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *GormSessionStore) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

func (s *GormSessionStore) pruneLoop() {
	ticker := time.NewTicker(gormPruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			// Best effort; a failed sweep is retried next cycle.
			s.db.Delete(&models.Session{}, "expires_at <= ?", now.UTC())
		}
	}
}
