package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campusboard/noticeboard-service/internal/models"
)

// ErrSessionNotFound is returned when a token resolves to no live session.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists session records keyed by opaque token. The memory
// backend prunes expired entries itself; persistent backends (redis, gorm)
// survive process restarts.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
	Close() error
}

// SessionMetadata is captured at login and stored on the session record.
type SessionMetadata struct {
	UserAgent string `json:"userAgent,omitempty"`
	RemoteIP  string `json:"remoteIp,omitempty"`
}

// Manager issues and resolves sessions. Cookie values are the opaque token
// plus an HMAC over it, so a forged cookie is rejected before any store
// lookup.
type Manager struct {
	store  SessionStore
	secret []byte
	ttl    time.Duration
}

func NewManager(store SessionStore, secret string, ttl time.Duration) *Manager {
	return &Manager{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a server-side session for the user and returns the signed
// cookie value.
func (m *Manager) Issue(ctx context.Context, userID uint, meta SessionMetadata) (string, error) {
	token := uuid.New().String()

	session := &models.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(m.ttl),
	}
	if data, err := json.Marshal(meta); err == nil {
		session.Data = data
	}

	if err := m.store.Create(ctx, session); err != nil {
		return "", err
	}

	return m.sign(token), nil
}

// Resolve verifies a cookie value and returns the live session behind it.
func (m *Manager) Resolve(ctx context.Context, cookieValue string) (*models.Session, error) {
	token, ok := m.verify(cookieValue)
	if !ok {
		return nil, ErrSessionNotFound
	}

	session, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.Expired(time.Now().UTC()) {
		// Lazily reap sessions the store has not pruned yet.
		_ = m.store.Delete(ctx, token)
		return nil, ErrSessionNotFound
	}

	return session, nil
}

// Revoke destroys the server-side record behind a cookie value. Unknown or
// tampered cookies are a no-op: logout is idempotent.
func (m *Manager) Revoke(ctx context.Context, cookieValue string) error {
	token, ok := m.verify(cookieValue)
	if !ok {
		return nil
	}
	if err := m.store.Delete(ctx, token); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	return nil
}

func (m *Manager) sign(token string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(token))
	return token + "|" + hex.EncodeToString(mac.Sum(nil))
}

func (m *Manager) verify(cookieValue string) (string, bool) {
	token, signature, found := strings.Cut(cookieValue, "|")
	if !found || token == "" {
		return "", false
	}

	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(token))
	expected := hex.EncodeToString(mac.Sum(nil))

	if subtle.ConstantTimeCompare([]byte(signature), []byte(expected)) != 1 {
		return "", false
	}
	return token, true
}
