package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockStorageService_UploadAndOpen(t *testing.T) {
	svc, err := NewMockStorageService("http://localhost:8080", t.TempDir())
	require.NoError(t, err)

	uploaded, err := svc.Upload(context.Background(), "aadhaar card.pdf", "application/pdf", []byte("pdf-bytes"), "rentals")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(uploaded.URL, "http://localhost:8080/api/v1/files/rentals/"))
	assert.True(t, strings.HasSuffix(uploaded.PublicID, "-aadhaar-card.pdf"))

	file, err := svc.Open(uploaded.PublicID)
	require.NoError(t, err)
	defer file.Close()
	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf-bytes"), content)
}

func TestMockStorageService_Delete(t *testing.T) {
	svc, err := NewMockStorageService("http://localhost:8080", t.TempDir())
	require.NoError(t, err)

	uploaded, err := svc.Upload(context.Background(), "photo.jpg", "image/jpeg", []byte("jpeg"), "rentals")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), uploaded.PublicID))

	_, err = svc.Open(uploaded.PublicID)
	assert.Error(t, err)

	// Deleting again is a no-op.
	assert.NoError(t, svc.Delete(context.Background(), uploaded.PublicID))
}

func TestMockStorageService_RejectsTraversal(t *testing.T) {
	svc, err := NewMockStorageService("http://localhost:8080", t.TempDir())
	require.NoError(t, err)

	_, err = svc.Open("../../etc/passwd")
	assert.Error(t, err)

	err = svc.Delete(context.Background(), "/etc/passwd")
	assert.Error(t, err)
}
