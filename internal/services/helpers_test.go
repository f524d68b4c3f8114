package services

import (
	"context"
	"log/slog"
	"mime/multipart"
	"os"
	"testing"

	"github.com/campusboard/noticeboard-service/internal/events"
	"github.com/campusboard/noticeboard-service/internal/models"
	"github.com/campusboard/noticeboard-service/internal/repositories"
	"github.com/campusboard/noticeboard-service/internal/repositories/memory"
	"github.com/campusboard/noticeboard-service/internal/validator"
)

func ts(value string) models.Timestamp {
	parsed, err := models.ParseTimestamp(value)
	if err != nil {
		panic(err)
	}
	return models.Timestamp{Time: parsed}
}

// fakeFileStore records removals instead of touching the filesystem.
type fakeFileStore struct {
	saved   []string
	removed []string
}

func (f *fakeFileStore) Save(file *multipart.FileHeader) (string, error) {
	url := "/fileuploads/" + file.Filename
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeFileStore) Remove(fileURL string) error {
	f.removed = append(f.removed, fileURL)
	return nil
}

func (f *fakeFileStore) Dir() string { return "testdata" }

type testEnv struct {
	manager   ServiceManager
	storage   repositories.Storage
	publisher *events.MockEventPublisher
	files     *fakeFileStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	storage := memory.NewMemoryStorage()
	publisher := events.NewMockEventPublisher(logger)
	fileStore := &fakeFileStore{}

	manager := NewServiceManager(storage, logger, validator.New(), publisher, fileStore)
	if err := manager.Initialize(context.Background()); err != nil {
		t.Fatalf("failed to initialize service manager: %v", err)
	}

	return &testEnv{
		manager:   manager,
		storage:   storage,
		publisher: publisher,
		files:     fileStore,
	}
}
