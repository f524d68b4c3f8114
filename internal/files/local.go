package files

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PublicPrefix is the URL path uploads are served under.
const PublicPrefix = "/fileuploads"

// Store abstracts uploaded-file persistence so services and tests can swap
// the backing directory.
type Store interface {
	// Save writes an uploaded file under a collision-resistant name and
	// returns its public reference path.
	Save(file *multipart.FileHeader) (string, error)
	// Remove deletes the file behind a previously returned reference.
	// A missing file is not an error.
	Remove(fileURL string) error
	// Dir returns the backing directory for static serving.
	Dir() string
}

// LocalStore writes uploads to a single local directory. Stored filenames
// are generated server-side; the client-supplied name contributes only its
// extension.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Save(file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uuid.New().String() + sanitizeExtension(file.Filename)
	dst := filepath.Join(s.dir, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create stored file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to write stored file: %w", err)
	}

	return path.Join(PublicPrefix, name), nil
}

func (s *LocalStore) Remove(fileURL string) error {
	name := path.Base(fileURL)
	if name == "." || name == "/" || name == "" {
		return fmt.Errorf("invalid file reference %q", fileURL)
	}

	// Base() confines removal to the upload directory regardless of what
	// the stored reference contains.
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stored file: %w", err)
	}
	return nil
}

func sanitizeExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if ext == "" || len(ext) > 10 {
		return ""
	}
	for _, r := range ext[1:] {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return ""
		}
	}
	return ext
}
