package validator

import (
	"testing"
	"time"

	"github.com/campusboard/noticeboard-service/internal/models"
)

func hasViolation(errs ValidationErrors, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func ts(value string) models.Timestamp {
	parsed, err := models.ParseTimestamp(value)
	if err != nil {
		panic(err)
	}
	return models.Timestamp{Time: parsed}
}

func TestValidateRegister(t *testing.T) {
	v := New()

	t.Run("valid request", func(t *testing.T) {
		req := &RegisterRequest{Username: "jdoe", Password: "secret1", Name: "J. Doe", Role: "teacher"}
		if errs := v.GetBusinessValidator().ValidateRegister(req); len(errs) != 0 {
			t.Errorf("unexpected violations: %v", errs)
		}
	})

	t.Run("role defaults when omitted", func(t *testing.T) {
		req := &RegisterRequest{Username: "jdoe", Password: "secret1", Name: "J. Doe"}
		if errs := v.GetBusinessValidator().ValidateRegister(req); len(errs) != 0 {
			t.Errorf("empty role should pass omitempty: %v", errs)
		}
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		req := &RegisterRequest{Username: "jdoe", Password: "secret1", Name: "J. Doe", Role: "principal"}
		errs := v.GetBusinessValidator().ValidateRegister(req)
		if !hasViolation(errs, "role") {
			t.Errorf("expected role violation, got %v", errs)
		}
	})

	t.Run("short password rejected", func(t *testing.T) {
		req := &RegisterRequest{Username: "jdoe", Password: "tiny", Name: "J. Doe"}
		errs := v.GetBusinessValidator().ValidateRegister(req)
		if !hasViolation(errs, "password") {
			t.Errorf("expected password violation, got %v", errs)
		}
	})

	t.Run("all violations reported at once", func(t *testing.T) {
		req := &RegisterRequest{Username: "ab", Password: "tiny", Name: ""}
		errs := v.GetBusinessValidator().ValidateRegister(req)
		if len(errs) < 3 {
			t.Errorf("expected username, password and name violations, got %v", errs)
		}
	})
}

func TestValidateEventCreate_DateOrder(t *testing.T) {
	v := New()

	base := EventCreateRequest{
		Title:       "Sports Day",
		Description: "Annual sports day",
	}

	t.Run("end after start passes", func(t *testing.T) {
		req := base
		req.StartDate = ts("2026-09-01T09:00:00Z")
		req.EndDate = ts("2026-09-01T15:00:00Z")
		if errs := v.GetBusinessValidator().ValidateEventCreate(&req); len(errs) != 0 {
			t.Errorf("unexpected violations: %v", errs)
		}
	})

	t.Run("end equal to start passes", func(t *testing.T) {
		req := base
		req.StartDate = ts("2026-09-01T09:00:00Z")
		req.EndDate = ts("2026-09-01T09:00:00Z")
		if errs := v.GetBusinessValidator().ValidateEventCreate(&req); len(errs) != 0 {
			t.Errorf("point-in-time event should pass: %v", errs)
		}
	})

	t.Run("end before start rejected", func(t *testing.T) {
		req := base
		req.StartDate = ts("2026-09-01T09:00:00Z")
		req.EndDate = ts("2026-08-31T09:00:00Z")
		errs := v.GetBusinessValidator().ValidateEventCreate(&req)
		if !hasViolation(errs, "endDate") {
			t.Errorf("expected endDate violation, got %v", errs)
		}
	})

	t.Run("missing dates rejected", func(t *testing.T) {
		req := base
		errs := v.GetBusinessValidator().ValidateEventCreate(&req)
		if !hasViolation(errs, "startDate") || !hasViolation(errs, "endDate") {
			t.Errorf("expected startDate and endDate violations, got %v", errs)
		}
	})
}

func TestValidateMaterialCreate(t *testing.T) {
	v := New()

	t.Run("missing file url rejected", func(t *testing.T) {
		req := &MaterialCreateRequest{Title: "Algebra Notes", Description: "Chapter 3"}
		errs := v.GetBusinessValidator().ValidateMaterialCreate(req)
		if !hasViolation(errs, "fileUrl") {
			t.Errorf("expected fileUrl violation, got %v", errs)
		}
	})

	t.Run("whitespace file url rejected", func(t *testing.T) {
		req := &MaterialCreateRequest{Title: "Algebra Notes", Description: "Chapter 3", FileURL: "   "}
		errs := v.GetBusinessValidator().ValidateMaterialCreate(req)
		if !hasViolation(errs, "fileUrl") {
			t.Errorf("expected fileUrl violation, got %v", errs)
		}
	})

	t.Run("valid request passes", func(t *testing.T) {
		req := &MaterialCreateRequest{Title: "Algebra Notes", Description: "Chapter 3", FileURL: "/fileuploads/abc.pdf"}
		if errs := v.GetBusinessValidator().ValidateMaterialCreate(req); len(errs) != 0 {
			t.Errorf("unexpected violations: %v", errs)
		}
	})
}

func TestValidateAssignmentCreate(t *testing.T) {
	v := New()

	t.Run("unknown status rejected", func(t *testing.T) {
		req := &AssignmentCreateRequest{
			Title:       "Essay",
			Description: "Write an essay",
			DueDate:     ts("2026-09-15"),
			Status:      "overdue",
		}
		errs := v.GetBusinessValidator().ValidateAssignmentCreate(req)
		if !hasViolation(errs, "status") {
			t.Errorf("expected status violation, got %v", errs)
		}
	})

	t.Run("missing due date rejected", func(t *testing.T) {
		req := &AssignmentCreateRequest{Title: "Essay", Description: "Write an essay"}
		errs := v.GetBusinessValidator().ValidateAssignmentCreate(req)
		if !hasViolation(errs, "dueDate") {
			t.Errorf("expected dueDate violation, got %v", errs)
		}
	})
}

func TestParseTimestamp_AcceptedLayouts(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2026-09-01T09:30:00.500Z", time.Date(2026, 9, 1, 9, 30, 0, 500000000, time.UTC)},
		{"2026-09-01T09:30:00Z", time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)},
		{"2026-09-01T09:30:00", time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)},
		{"2026-09-01", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := models.ParseTimestamp(tc.raw)
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) failed: %v", tc.raw, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}

	if _, err := models.ParseTimestamp("next tuesday"); err == nil {
		t.Error("nonsense timestamp should fail to parse")
	}
}
