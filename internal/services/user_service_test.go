package services

import (
	"context"
	"errors"
	"testing"

	"github.com/campusboard/noticeboard-service/internal/auth"
	"github.com/campusboard/noticeboard-service/internal/models"
)

func TestUserService_Delete_SelfBlock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin, err := env.storage.User().GetByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("admin lookup failed: %v", err)
	}

	if err := env.manager.User().Delete(ctx, admin.ID, admin.ID); !errors.Is(err, ErrSelfDeletion) {
		t.Fatalf("expected ErrSelfDeletion, got %v", err)
	}

	// The block fires before storage; the account must still exist.
	if _, err := env.storage.User().GetByID(ctx, admin.ID); err != nil {
		t.Errorf("admin should survive a blocked self-delete: %v", err)
	}

	t.Run("deleting another account works", func(t *testing.T) {
		student, err := env.storage.User().GetByUsername(ctx, "student")
		if err != nil {
			t.Fatalf("student lookup failed: %v", err)
		}
		if err := env.manager.User().Delete(ctx, student.ID, admin.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := env.manager.User().GetByID(ctx, student.ID); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("deleted user should be gone, got %v", err)
		}
	})

	t.Run("deleting a missing account is 404", func(t *testing.T) {
		if err := env.manager.User().Delete(ctx, 9999, admin.ID); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestUserService_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	teacher, err := env.storage.User().GetByUsername(ctx, "teacher")
	if err != nil {
		t.Fatalf("teacher lookup failed: %v", err)
	}

	t.Run("password update rehashes", func(t *testing.T) {
		newPassword := "rotated-secret"
		updated, err := env.manager.User().Update(ctx, teacher.ID, &UserUpdateRequest{Password: &newPassword})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if !auth.IsHashedDigest(updated.Password) {
			t.Error("updated password should be stored as a digest")
		}

		if _, err := env.manager.Auth().Login(ctx, &LoginRequest{Username: "teacher", Password: newPassword}); err != nil {
			t.Errorf("login with rotated password failed: %v", err)
		}
		if _, err := env.manager.Auth().Login(ctx, &LoginRequest{Username: "teacher", Password: "password"}); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("old seeded password should stop working after rotation, got %v", err)
		}
	})

	t.Run("role change applies", func(t *testing.T) {
		role := "admin"
		updated, err := env.manager.User().Update(ctx, teacher.ID, &UserUpdateRequest{Role: &role})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.Role != models.RoleAdmin {
			t.Errorf("role = %s, want admin", updated.Role)
		}
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		role := "superuser"
		if _, err := env.manager.User().Update(ctx, teacher.ID, &UserUpdateRequest{Role: &role}); err == nil {
			t.Error("unknown role should fail validation")
		}
	})

	t.Run("username collision conflicts", func(t *testing.T) {
		taken := "admin"
		if _, err := env.manager.User().Update(ctx, teacher.ID, &UserUpdateRequest{Username: &taken}); !errors.Is(err, ErrUsernameTaken) {
			t.Errorf("expected ErrUsernameTaken, got %v", err)
		}
	})

	t.Run("missing user is 404", func(t *testing.T) {
		name := "nobody"
		if _, err := env.manager.User().Update(ctx, 9999, &UserUpdateRequest{Name: &name}); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestUserService_ExportRoster(t *testing.T) {
	env := newTestEnv(t)

	f, err := env.manager.User().ExportRoster(context.Background())
	if err != nil {
		t.Fatalf("ExportRoster failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Users")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}

	// Header plus the three seeded accounts.
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0][1] != "Username" {
		t.Errorf("unexpected header row: %v", rows[0])
	}

	for _, row := range rows[1:] {
		if len(row) >= 4 && (row[3] != "student" && row[3] != "teacher" && row[3] != "admin") {
			t.Errorf("unexpected role cell in row %v", row)
		}
	}
}
