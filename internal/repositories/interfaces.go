package repositories

import (
	"context"

	"github.com/campusboard/noticeboard-service/internal/models"
)

// UserRepository owns the user rows, including credential digests.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Create persists a new user; a duplicate username fails with
	// ErrDuplicateUsername.
	Create(ctx context.Context, user *models.User) error
	// Update applies non-zero fields of the patch to the stored row and
	// returns the updated user.
	Update(ctx context.Context, id uint, patch UserPatch) (*models.User, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.User, error)
	// Count reports the number of user rows; zero triggers bootstrap
	// seeding at startup.
	Count(ctx context.Context) (int64, error)
}

// UserPatch carries the updatable user fields; nil means leave unchanged.
type UserPatch struct {
	Username *string
	Password *string
	Name     *string
	Role     *models.Role
}

type AnnouncementRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Announcement, error)
	Create(ctx context.Context, announcement *models.Announcement) error
	List(ctx context.Context) ([]*models.Announcement, error)
	Delete(ctx context.Context, id uint) error
}

type AssignmentRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Assignment, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	List(ctx context.Context) ([]*models.Assignment, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Assignment, error)
	Delete(ctx context.Context, id uint) error
}

type MaterialRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Material, error)
	Create(ctx context.Context, material *models.Material) error
	List(ctx context.Context) ([]*models.Material, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Material, error)
	Delete(ctx context.Context, id uint) error
	// Count supports verifying single-row delete semantics.
	Count(ctx context.Context) (int64, error)
}

type EventRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	List(ctx context.Context) ([]*models.Event, error)
	Delete(ctx context.Context, id uint) error
}
