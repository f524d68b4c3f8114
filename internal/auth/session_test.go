package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestManager_IssueAndResolve(t *testing.T) {
	store := NewMemorySessionStore()
	defer store.Close()

	manager := NewManager(store, "test-secret", time.Hour)
	ctx := context.Background()

	cookie, err := manager.Issue(ctx, 42, SessionMetadata{UserAgent: "go-test", RemoteIP: "127.0.0.1"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if !strings.Contains(cookie, "|") {
		t.Fatalf("cookie value %q should carry a signature", cookie)
	}

	session, err := manager.Resolve(ctx, cookie)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if session.UserID != 42 {
		t.Errorf("UserID = %d, want 42", session.UserID)
	}
}

func TestManager_RejectsTamperedCookie(t *testing.T) {
	store := NewMemorySessionStore()
	defer store.Close()

	manager := NewManager(store, "test-secret", time.Hour)
	ctx := context.Background()

	cookie, err := manager.Issue(ctx, 1, SessionMetadata{})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	t.Run("flipped signature", func(t *testing.T) {
		tampered := cookie[:len(cookie)-1]
		if strings.HasSuffix(cookie, "0") {
			tampered += "1"
		} else {
			tampered += "0"
		}
		if _, err := manager.Resolve(ctx, tampered); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("tampered cookie: expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("swapped token", func(t *testing.T) {
		_, signature, _ := strings.Cut(cookie, "|")
		forged := "11111111-2222-3333-4444-555555555555|" + signature
		if _, err := manager.Resolve(ctx, forged); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("forged token: expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("different secret", func(t *testing.T) {
		other := NewManager(store, "other-secret", time.Hour)
		if _, err := other.Resolve(ctx, cookie); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("wrong secret: expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestManager_ExpiredSessionIsReaped(t *testing.T) {
	store := NewMemorySessionStore()
	defer store.Close()

	manager := NewManager(store, "test-secret", -time.Minute)
	ctx := context.Background()

	cookie, err := manager.Issue(ctx, 7, SessionMetadata{})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := manager.Resolve(ctx, cookie); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expired session: expected ErrSessionNotFound, got %v", err)
	}

	// The lazy reap must have removed the stored record too.
	token, _, _ := strings.Cut(cookie, "|")
	if _, err := store.Get(ctx, token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expired session should be deleted from the store, got %v", err)
	}
}

func TestManager_RevokeIsIdempotent(t *testing.T) {
	store := NewMemorySessionStore()
	defer store.Close()

	manager := NewManager(store, "test-secret", time.Hour)
	ctx := context.Background()

	cookie, err := manager.Issue(ctx, 3, SessionMetadata{})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if err := manager.Revoke(ctx, cookie); err != nil {
		t.Fatalf("first Revoke failed: %v", err)
	}
	if err := manager.Revoke(ctx, cookie); err != nil {
		t.Fatalf("second Revoke failed: %v", err)
	}
	if err := manager.Revoke(ctx, "garbage"); err != nil {
		t.Fatalf("Revoke of garbage cookie failed: %v", err)
	}

	if _, err := manager.Resolve(ctx, cookie); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("revoked session should not resolve, got %v", err)
	}
}

func TestMemorySessionStore_Prune(t *testing.T) {
	store := NewMemorySessionStore()
	defer store.Close()

	manager := NewManager(store, "test-secret", time.Hour)
	ctx := context.Background()

	cookie, err := manager.Issue(ctx, 5, SessionMetadata{})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	token, _, _ := strings.Cut(cookie, "|")

	store.Prune(time.Now().UTC())
	if _, err := store.Get(ctx, token); err != nil {
		t.Fatalf("live session pruned: %v", err)
	}

	store.Prune(time.Now().UTC().Add(2 * time.Hour))
	if _, err := store.Get(ctx, token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expired session should be pruned, got %v", err)
	}
}

func TestRedisSessionStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisSessionStore(client)
	manager := NewManager(store, "test-secret", time.Hour)
	ctx := context.Background()

	cookie, err := manager.Issue(ctx, 9, SessionMetadata{RemoteIP: "10.0.0.1"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	session, err := manager.Resolve(ctx, cookie)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if session.UserID != 9 {
		t.Errorf("UserID = %d, want 9", session.UserID)
	}

	t.Run("redis TTL reaps the session", func(t *testing.T) {
		mr.FastForward(2 * time.Hour)
		if _, err := manager.Resolve(ctx, cookie); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("expired redis session: expected ErrSessionNotFound, got %v", err)
		}
	})
}
