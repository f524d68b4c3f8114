package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusboard/noticeboard-service/internal/auth"
	"github.com/campusboard/noticeboard-service/internal/events"
	"github.com/campusboard/noticeboard-service/internal/files"
	"github.com/campusboard/noticeboard-service/internal/repositories/memory"
	"github.com/campusboard/noticeboard-service/internal/services"
	"github.com/campusboard/noticeboard-service/internal/utils"
	"github.com/campusboard/noticeboard-service/internal/validator"
)

type testServer struct {
	router    *gin.Engine
	uploadDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	slogLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	logger := utils.NewSlogLogger(slogLogger)

	storage := memory.NewMemoryStorage()
	sessionStore := auth.NewMemorySessionStore()
	t.Cleanup(func() { sessionStore.Close() })
	sessionManager := auth.NewManager(sessionStore, "test-secret", time.Hour)

	uploadDir := t.TempDir()
	fileStore := files.NewLocalStore(uploadDir)
	publisher := events.NewMockEventPublisher(slogLogger)

	serviceManager := services.NewServiceManager(storage, slogLogger, validator.New(), publisher, fileStore)
	if err := serviceManager.Initialize(context.Background()); err != nil {
		t.Fatalf("failed to initialize service manager: %v", err)
	}

	handlerManager := NewHandlerManager(serviceManager, sessionManager, fileStore, logger, false)

	router := gin.New()
	SetupMiddleware(router, logger)
	handlerManager.SetupRoutes(router)

	return &testServer{router: router, uploadDir: uploadDir}
}

func (ts *testServer) do(t *testing.T, method, path, cookie string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// login authenticates a seeded account and returns the session cookie.
func (ts *testServer) login(t *testing.T, username, password string) string {
	t.Helper()

	w := ts.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d, body %s", username, w.Code, w.Body.String())
	}

	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("login response carried no session cookie")
	return ""
}

func TestRoleGate_Announcements(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]interface{}{
		"title":   "Fire Drill",
		"content": "Drill at 10am on Friday",
	}

	t.Run("student is forbidden", func(t *testing.T) {
		cookie := ts.login(t, "student", "password")
		w := ts.do(t, http.MethodPost, "/api/announcements", cookie, body)
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403; body %s", w.Code, w.Body.String())
		}
	})

	t.Run("teacher may create", func(t *testing.T) {
		cookie := ts.login(t, "teacher", "password")
		w := ts.do(t, http.MethodPost, "/api/announcements", cookie, body)
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body.String())
		}

		var created struct {
			ID        uint      `json:"id"`
			Title     string    `json:"title"`
			CreatedAt time.Time `json:"createdAt"`
			AuthorID  uint      `json:"authorId"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if created.ID == 0 {
			t.Error("created announcement should carry a server-assigned id")
		}
		if created.CreatedAt.IsZero() {
			t.Error("created announcement should carry createdAt")
		}
		if created.AuthorID == 0 {
			t.Error("authorId should be stamped from the session")
		}
	})

	t.Run("anonymous is unauthenticated", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/announcements", "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}

func TestSessionContinuity(t *testing.T) {
	ts := newTestServer(t)

	cookie := ts.login(t, "teacher", "password")

	for i := 0; i < 3; i++ {
		w := ts.do(t, http.MethodGet, "/api/user", cookie, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, w.Code)
		}

		var identity struct {
			Username string `json:"username"`
			Role     string `json:"role"`
			Password string `json:"password"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &identity); err != nil {
			t.Fatalf("failed to decode identity: %v", err)
		}
		if identity.Username != "teacher" || identity.Role != "teacher" {
			t.Errorf("identity = %+v, want teacher/teacher", identity)
		}
		if identity.Password != "" {
			t.Error("password must never be serialized")
		}
	}

	if w := ts.do(t, http.MethodPost, "/api/logout", cookie, nil); w.Code != http.StatusOK {
		t.Fatalf("logout: status = %d, want 200", w.Code)
	}

	if w := ts.do(t, http.MethodGet, "/api/user", cookie, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("after logout: status = %d, want 401", w.Code)
	}

	// Logout is idempotent.
	if w := ts.do(t, http.MethodPost, "/api/logout", cookie, nil); w.Code != http.StatusOK {
		t.Errorf("second logout: status = %d, want 200", w.Code)
	}
}

func TestRegister_Conflict(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{
		"username": "newkid",
		"password": "secret1",
		"name":     "New Kid",
	}

	first := ts.do(t, http.MethodPost, "/api/register", "", body)
	if first.Code != http.StatusCreated {
		t.Fatalf("first register: status = %d, body %s", first.Code, first.Body.String())
	}

	// Registration auto-logs in.
	var sessionIssued bool
	for _, c := range first.Result().Cookies() {
		if c.Name == SessionCookieName && c.Value != "" {
			sessionIssued = true
		}
	}
	if !sessionIssued {
		t.Error("register should establish a session")
	}

	second := ts.do(t, http.MethodPost, "/api/register", "", body)
	if second.Code != http.StatusConflict {
		t.Errorf("duplicate register: status = %d, want 409; body %s", second.Code, second.Body.String())
	}
}

func TestAdminOnlyUserRoutes(t *testing.T) {
	ts := newTestServer(t)

	t.Run("teacher forbidden", func(t *testing.T) {
		cookie := ts.login(t, "teacher", "password")
		if w := ts.do(t, http.MethodGet, "/api/users", cookie, nil); w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("admin allowed", func(t *testing.T) {
		cookie := ts.login(t, "admin", "password")
		w := ts.do(t, http.MethodGet, "/api/users", cookie, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}

		var users []map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &users); err != nil {
			t.Fatalf("failed to decode users: %v", err)
		}
		if len(users) != 3 {
			t.Errorf("expected 3 seeded users, got %d", len(users))
		}
		for _, u := range users {
			if _, leaked := u["password"]; leaked {
				t.Error("user listing must not serialize passwords")
			}
		}
	})

	t.Run("self-deletion blocked", func(t *testing.T) {
		cookie := ts.login(t, "admin", "password")

		w := ts.do(t, http.MethodGet, "/api/user", cookie, nil)
		var me struct {
			ID uint `json:"id"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil {
			t.Fatalf("failed to decode identity: %v", err)
		}

		del := ts.do(t, http.MethodDelete, "/api/users/"+strconv.FormatUint(uint64(me.ID), 10), cookie, nil)
		if del.Code != http.StatusBadRequest {
			t.Errorf("self delete: status = %d, want 400; body %s", del.Code, del.Body.String())
		}
	})

	t.Run("roster export streams xlsx", func(t *testing.T) {
		cookie := ts.login(t, "admin", "password")
		w := ts.do(t, http.MethodGet, "/api/users/export", cookie, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
			t.Errorf("unexpected content type %q", ct)
		}
		if w.Body.Len() == 0 {
			t.Error("export body should not be empty")
		}
	})
}

func TestEventDateValidation(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(t, "teacher", "password")

	t.Run("end before start rejected", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/events", cookie, map[string]interface{}{
			"title":       "Open Day",
			"description": "School open day",
			"startDate":   "2026-09-10T09:00:00Z",
			"endDate":     "2026-09-09T09:00:00Z",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400; body %s", w.Code, w.Body.String())
		}
	})

	t.Run("equal dates accepted", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/events", cookie, map[string]interface{}{
			"title":       "Photo Day",
			"description": "Class photos",
			"startDate":   "2026-09-10T09:00:00Z",
			"endDate":     "2026-09-10T09:00:00Z",
		})
		if w.Code != http.StatusCreated {
			t.Errorf("status = %d, want 201; body %s", w.Code, w.Body.String())
		}
	})

	t.Run("bare date accepted", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/events", cookie, map[string]interface{}{
			"title":       "Holiday",
			"description": "No school",
			"startDate":   "2026-12-20",
			"endDate":     "2027-01-03",
		})
		if w.Code != http.StatusCreated {
			t.Errorf("status = %d, want 201; body %s", w.Code, w.Body.String())
		}
	})
}

func TestMaterialUpload(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(t, "teacher", "password")

	buildUpload := func(t *testing.T, fields map[string]string, filename string) (*bytes.Buffer, string) {
		t.Helper()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		for k, v := range fields {
			if err := mw.WriteField(k, v); err != nil {
				t.Fatalf("WriteField failed: %v", err)
			}
		}
		if filename != "" {
			part, err := mw.CreateFormFile("file", filename)
			if err != nil {
				t.Fatalf("CreateFormFile failed: %v", err)
			}
			if _, err := part.Write([]byte("pdf bytes")); err != nil {
				t.Fatalf("file write failed: %v", err)
			}
		}
		if err := mw.Close(); err != nil {
			t.Fatalf("multipart close failed: %v", err)
		}
		return &buf, mw.FormDataContentType()
	}

	uploadedFiles := func(t *testing.T) []string {
		t.Helper()
		entries, err := os.ReadDir(ts.uploadDir)
		if err != nil {
			t.Fatalf("ReadDir failed: %v", err)
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		return names
	}

	t.Run("upload stores file and row", func(t *testing.T) {
		buf, contentType := buildUpload(t, map[string]string{
			"title":       "Lab Safety",
			"description": "Read before the first lab",
		}, "safety.pdf")

		req := httptest.NewRequest(http.MethodPost, "/api/materials", buf)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Cookie", cookie)
		w := httptest.NewRecorder()
		ts.router.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body.String())
		}

		var created struct {
			FileURL string `json:"fileUrl"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if created.FileURL == "" {
			t.Error("created material should carry a fileUrl")
		}
		if len(uploadedFiles(t)) != 1 {
			t.Errorf("expected exactly one stored file, got %v", uploadedFiles(t))
		}
	})

	t.Run("validation failure cleans up the stored file", func(t *testing.T) {
		before := len(uploadedFiles(t))

		// Missing title fails validation after the file was written.
		buf, contentType := buildUpload(t, map[string]string{
			"description": "Orphan candidate",
		}, "orphan.pdf")

		req := httptest.NewRequest(http.MethodPost, "/api/materials", buf)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Cookie", cookie)
		w := httptest.NewRecorder()
		ts.router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400; body %s", w.Code, w.Body.String())
		}
		if got := len(uploadedFiles(t)); got != before {
			t.Errorf("stored file count = %d, want %d (orphan should be removed)", got, before)
		}
	})
}
