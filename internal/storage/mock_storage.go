package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MockStorageService implements file storage on the local filesystem.
// This is for demo/testing without Cloudinary credentials.
type MockStorageService struct {
	baseURL    string // Server URL (e.g., "http://localhost:8080")
	uploadsDir string // Local directory for uploads (e.g., "./uploads")
}

func NewMockStorageService(baseURL, uploadsDir string) (*MockStorageService, error) {
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &MockStorageService{baseURL: baseURL, uploadsDir: uploadsDir}, nil
}

// Upload writes the file under a uuid-prefixed name and returns a URL served
// by the files handler.
func (m *MockStorageService) Upload(ctx context.Context, filename, contentType string, content []byte, folder string) (*UploadedFile, error) {
	key := folder + "/" + uuid.New().String() + "-" + sanitizeFilename(filename)

	path := filepath.Join(m.uploadsDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &UploadedFile{
		URL:      fmt.Sprintf("%s/api/v1/files/%s", m.baseURL, key),
		PublicID: key,
	}, nil
}

func (m *MockStorageService) Delete(ctx context.Context, publicID string) error {
	path, err := m.resolve(publicID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Open reads a stored file back; used by the file-serving HTTP handler.
func (m *MockStorageService) Open(publicID string) (io.ReadCloser, error) {
	path, err := m.resolve(publicID)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// resolve maps a public ID to a path inside uploadsDir, rejecting traversal.
func (m *MockStorageService) resolve(publicID string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(publicID))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid file key: %s", publicID)
	}
	return filepath.Join(m.uploadsDir, clean), nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
}
