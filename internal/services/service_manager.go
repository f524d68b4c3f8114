package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/campusboard/noticeboard-service/internal/events"
	"github.com/campusboard/noticeboard-service/internal/files"
	"github.com/campusboard/noticeboard-service/internal/models"
	"github.com/campusboard/noticeboard-service/internal/repositories"
	"github.com/campusboard/noticeboard-service/internal/validator"
)

// bootstrapAccounts are seeded into an empty user table so a fresh
// deployment is immediately usable. Their passwords are stored in the
// clear and accepted as-is on login until an admin rotates them.
var bootstrapAccounts = []models.User{
	{Username: "admin", Password: "password", Name: "Admin User", Role: models.RoleAdmin},
	{Username: "teacher", Password: "password", Name: "Teacher User", Role: models.RoleTeacher},
	{Username: "student", Password: "password", Name: "Student User", Role: models.RoleStudent},
}

type serviceManager struct {
	storage   repositories.Storage
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
	files     files.Store

	authService         AuthService
	userService         UserService
	announcementService AnnouncementService
	assignmentService   AssignmentService
	materialService     MaterialService
	eventService        EventService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager wires the services over shared storage. Initialize
// must run before any getter is used.
func NewServiceManager(storage repositories.Storage, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher, fileStore files.Store) ServiceManager {
	return &serviceManager{
		storage:   storage,
		logger:    logger,
		validator: v,
		publisher: publisher,
		files:     fileStore,
	}
}

func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("initializing service manager")

	bootstrapIDs, err := sm.seedBootstrapAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed bootstrap accounts: %w", err)
	}

	sm.authService = NewAuthService(sm.storage, sm.logger, sm.validator, bootstrapIDs)
	sm.userService = NewUserService(sm.storage, sm.logger, sm.validator, sm.authService)
	sm.announcementService = NewAnnouncementService(sm.storage, sm.logger, sm.validator, sm.publisher)
	sm.assignmentService = NewAssignmentService(sm.storage, sm.logger, sm.validator, sm.publisher)
	sm.materialService = NewMaterialService(sm.storage, sm.logger, sm.validator, sm.publisher, sm.files)
	sm.eventService = NewEventService(sm.storage, sm.logger, sm.validator, sm.publisher)

	sm.initialized = true
	sm.logger.Info("service manager initialized")

	return nil
}

// seedBootstrapAccounts populates an empty user table and returns the
// set of seeded IDs. A non-empty table is left untouched; accounts that
// already exist keep their stored credentials.
func (sm *serviceManager) seedBootstrapAccounts(ctx context.Context) (map[uint]struct{}, error) {
	count, err := sm.storage.User().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	seeded := make(map[uint]struct{})
	if count > 0 {
		// Re-detect previously seeded accounts after a restart so
		// their plaintext logins keep working.
		for _, account := range bootstrapAccounts {
			user, err := sm.storage.User().GetByUsername(ctx, account.Username)
			if err != nil {
				if repositories.IsNotFoundError(err) {
					continue
				}
				return nil, fmt.Errorf("failed to look up bootstrap account %q: %w", account.Username, err)
			}
			if user.Password == account.Password {
				seeded[user.ID] = struct{}{}
			}
		}
		return seeded, nil
	}

	for _, account := range bootstrapAccounts {
		user := account
		if err := sm.storage.User().Create(ctx, &user); err != nil {
			return nil, fmt.Errorf("failed to seed account %q: %w", account.Username, err)
		}
		seeded[user.ID] = struct{}{}
		sm.logger.Info("seeded bootstrap account", "user_id", user.ID, "username", user.Username, "role", user.Role)
	}

	return seeded, nil
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.authService
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.userService
}

func (sm *serviceManager) Announcement() AnnouncementService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.announcementService
}

func (sm *serviceManager) Assignment() AssignmentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.assignmentService
}

func (sm *serviceManager) Material() MaterialService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.materialService
}

func (sm *serviceManager) Event() EventService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.eventService
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.storage.Ping(ctx); err != nil {
		return fmt.Errorf("storage health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("shutting down service manager")

	if sm.publisher != nil {
		if err := sm.publisher.Close(); err != nil {
			sm.logger.Error("failed to close event publisher", "error", err)
		}
	}

	if err := sm.storage.Close(); err != nil {
		sm.logger.Error("failed to close storage", "error", err)
	}

	sm.shutdown = true
	sm.logger.Info("service manager shut down")

	return nil
}
