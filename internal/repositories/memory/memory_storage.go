// Package memory provides a process-local Storage backend. It backs
// development runs without a database and doubles as the test double
// for the service and handler layers.
package memory

import (
	"context"
	"sync"

	"github.com/campusboard/noticeboard-service/internal/models"
	"github.com/campusboard/noticeboard-service/internal/repositories"
)

// MemoryStorage implements Storage with mutex-guarded maps. IDs are
// assigned from a per-entity counter, matching the serial columns of
// the postgres backend.
type MemoryStorage struct {
	user         *userStore
	announcement *announcementStore
	assignment   *assignmentStore
	material     *materialStore
	event        *eventStore
}

func NewMemoryStorage() repositories.Storage {
	return &MemoryStorage{
		user:         &userStore{rows: make(map[uint]models.User), byUsername: make(map[string]uint)},
		announcement: &announcementStore{rows: make(map[uint]models.Announcement)},
		assignment:   &assignmentStore{rows: make(map[uint]models.Assignment)},
		material:     &materialStore{rows: make(map[uint]models.Material)},
		event:        &eventStore{rows: make(map[uint]models.Event)},
	}
}

func (s *MemoryStorage) User() repositories.UserRepository { return s.user }

func (s *MemoryStorage) Announcement() repositories.AnnouncementRepository {
	return s.announcement
}

func (s *MemoryStorage) Assignment() repositories.AssignmentRepository { return s.assignment }

func (s *MemoryStorage) Material() repositories.MaterialRepository { return s.material }

func (s *MemoryStorage) Event() repositories.EventRepository { return s.event }

func (s *MemoryStorage) Ping(ctx context.Context) error { return nil }

func (s *MemoryStorage) Close() error { return nil }

// ===== USERS =====

type userStore struct {
	mu         sync.RWMutex
	rows       map[uint]models.User
	byUsername map[string]uint
	nextID     uint
}

func (s *userStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &user, nil
}

func (s *userStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	user := s.rows[id]
	return &user, nil
}

func (s *userStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[user.Username]; exists {
		return repositories.ErrDuplicateUsername
	}

	s.nextID++
	user.ID = s.nextID
	s.rows[user.ID] = *user
	s.byUsername[user.Username] = user.ID
	return nil
}

func (s *userStore) Update(ctx context.Context, id uint, patch repositories.UserPatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}

	if patch.Username != nil && *patch.Username != user.Username {
		if _, exists := s.byUsername[*patch.Username]; exists {
			return nil, repositories.ErrDuplicateUsername
		}
		delete(s.byUsername, user.Username)
		user.Username = *patch.Username
		s.byUsername[user.Username] = id
	}
	if patch.Password != nil {
		user.Password = *patch.Password
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}

	s.rows[id] = user
	return &user, nil
}

func (s *userStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.rows[id]
	if !ok {
		return repositories.ErrNotFound
	}
	delete(s.byUsername, user.Username)
	delete(s.rows, id)
	return nil
}

func (s *userStore) List(ctx context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*models.User, 0, len(s.rows))
	for id := uint(1); id <= s.nextID; id++ {
		if user, ok := s.rows[id]; ok {
			u := user
			users = append(users, &u)
		}
	}
	return users, nil
}

func (s *userStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.rows)), nil
}

// ===== ANNOUNCEMENTS =====

type announcementStore struct {
	mu     sync.RWMutex
	rows   map[uint]models.Announcement
	nextID uint
}

func (s *announcementStore) GetByID(ctx context.Context, id uint) (*models.Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &row, nil
}

func (s *announcementStore) Create(ctx context.Context, announcement *models.Announcement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	announcement.ID = s.nextID
	s.rows[announcement.ID] = *announcement
	return nil
}

func (s *announcementStore) List(ctx context.Context) ([]*models.Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]*models.Announcement, 0, len(s.rows))
	for id := s.nextID; id >= 1; id-- {
		if row, ok := s.rows[id]; ok {
			r := row
			rows = append(rows, &r)
		}
	}
	return rows, nil
}

func (s *announcementStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

// ===== ASSIGNMENTS =====

type assignmentStore struct {
	mu     sync.RWMutex
	rows   map[uint]models.Assignment
	nextID uint
}

func (s *assignmentStore) GetByID(ctx context.Context, id uint) (*models.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &row, nil
}

func (s *assignmentStore) Create(ctx context.Context, assignment *models.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	assignment.ID = s.nextID
	s.rows[assignment.ID] = *assignment
	return nil
}

func (s *assignmentStore) List(ctx context.Context) ([]*models.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]*models.Assignment, 0, len(s.rows))
	for id := uint(1); id <= s.nextID; id++ {
		if row, ok := s.rows[id]; ok {
			r := row
			rows = append(rows, &r)
		}
	}
	return rows, nil
}

func (s *assignmentStore) ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []*models.Assignment
	for id := uint(1); id <= s.nextID; id++ {
		if row, ok := s.rows[id]; ok && row.TeacherID == teacherID {
			r := row
			rows = append(rows, &r)
		}
	}
	return rows, nil
}

func (s *assignmentStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

// ===== MATERIALS =====

type materialStore struct {
	mu     sync.RWMutex
	rows   map[uint]models.Material
	nextID uint
}

func (s *materialStore) GetByID(ctx context.Context, id uint) (*models.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &row, nil
}

func (s *materialStore) Create(ctx context.Context, material *models.Material) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	material.ID = s.nextID
	s.rows[material.ID] = *material
	return nil
}

func (s *materialStore) List(ctx context.Context) ([]*models.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]*models.Material, 0, len(s.rows))
	for id := s.nextID; id >= 1; id-- {
		if row, ok := s.rows[id]; ok {
			r := row
			rows = append(rows, &r)
		}
	}
	return rows, nil
}

func (s *materialStore) ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []*models.Material
	for id := uint(1); id <= s.nextID; id++ {
		if row, ok := s.rows[id]; ok && row.TeacherID == teacherID {
			r := row
			rows = append(rows, &r)
		}
	}
	return rows, nil
}

func (s *materialStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *materialStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.rows)), nil
}

// ===== EVENTS =====

type eventStore struct {
	mu     sync.RWMutex
	rows   map[uint]models.Event
	nextID uint
}

func (s *eventStore) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &row, nil
}

func (s *eventStore) Create(ctx context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	event.ID = s.nextID
	s.rows[event.ID] = *event
	return nil
}

func (s *eventStore) List(ctx context.Context) ([]*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]*models.Event, 0, len(s.rows))
	for id := uint(1); id <= s.nextID; id++ {
		if row, ok := s.rows[id]; ok {
			r := row
			rows = append(rows, &r)
		}
	}
	return rows, nil
}

func (s *eventStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}
