package auth

import (
	"context"
	"sync"
	"time"

	"github.com/campusboard/noticeboard-service/internal/models"
)

// MemorySessionStore keeps sessions in process memory with periodic pruning
// of expired entries. Suitable for development and tests; sessions do not
// survive restarts.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
	done     chan struct{}
	once     sync.Once
}

const memoryPruneInterval = 10 * time.Minute

func NewMemorySessionStore() *MemorySessionStore {
	s := &MemorySessionStore{
		sessions: make(map[string]*models.Session),
		done:     make(chan struct{}),
	}
	go s.pruneLoop()
	return s
}

func (s *MemorySessionStore) Create(ctx context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[session.Token] = &copied
	return nil
}

func (s *MemorySessionStore) Get(ctx context.Context, token string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *MemorySessionStore) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

func (s *MemorySessionStore) pruneLoop() {
	ticker := time.NewTicker(memoryPruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.Prune(now.UTC())
		}
	}
}

// Prune drops every session expired at the given time.
func (s *MemorySessionStore) Prune(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, token)
		}
	}
}
