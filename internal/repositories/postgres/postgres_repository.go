package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/campusboard/noticeboard-service/internal/repositories"
)

// PostgreSQLStorage implements the Storage interface on top of gorm.
type PostgreSQLStorage struct {
	db *gorm.DB

	user         repositories.UserRepository
	announcement repositories.AnnouncementRepository
	assignment   repositories.AssignmentRepository
	material     repositories.MaterialRepository
	event        repositories.EventRepository
}

// NewPostgreSQLStorage creates the storage aggregate with all sub-repositories.
func NewPostgreSQLStorage(db *gorm.DB) repositories.Storage {
	return &PostgreSQLStorage{
		db:           db,
		user:         NewUserPostgreSQL(db),
		announcement: NewAnnouncementPostgreSQL(db),
		assignment:   NewAssignmentPostgreSQL(db),
		material:     NewMaterialPostgreSQL(db),
		event:        NewEventPostgreSQL(db),
	}
}

func (s *PostgreSQLStorage) User() repositories.UserRepository {
	return s.user
}

func (s *PostgreSQLStorage) Announcement() repositories.AnnouncementRepository {
	return s.announcement
}

func (s *PostgreSQLStorage) Assignment() repositories.AssignmentRepository {
	return s.assignment
}

func (s *PostgreSQLStorage) Material() repositories.MaterialRepository {
	return s.material
}

func (s *PostgreSQLStorage) Event() repositories.EventRepository {
	return s.event
}

// Ping checks the health of the database connection.
func (s *PostgreSQLStorage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgreSQLStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

// handleDBError translates gorm errors to repository sentinels so callers
// never depend on the driver. Requires gorm's TranslateError option for
// duplicate key detection.
func handleDBError(err error, operation string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repositories.ErrDuplicateUsername
	default:
		return fmt.Errorf("%s: %w", operation, err)
	}
}
