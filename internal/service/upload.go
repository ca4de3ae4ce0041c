package service

import (
	"context"
	"errors"
	"fmt"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/storage"
)

// Files larger than this are rejected before touching the blob store.
const maxUploadBytes = 10 << 20 // 10 MiB

var allowedUploadTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

type uploadService struct {
	uploader storage.Uploader
}

func NewUploadService(uploader storage.Uploader) UploadService {
	return &uploadService{uploader: uploader}
}

func (s *uploadService) Upload(ctx context.Context, filename, contentType string, size int64, content []byte, folder string) (*UploadResult, error) {
	if size <= 0 || len(content) == 0 {
		return nil, errors.New("upload is empty")
	}
	if size > maxUploadBytes {
		return nil, fmt.Errorf("file exceeds the %d byte upload limit", maxUploadBytes)
	}
	if contentType != "" && !allowedUploadTypes[contentType] {
		return nil, fmt.Errorf("unsupported file type %q", contentType)
	}
	if folder == "" {
		folder = "rentals"
	}

	uploaded, err := s.uploader.Upload(ctx, filename, contentType, content, folder)
	if err != nil {
		logger.Error("Upload failed", "filename", filename, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	logger.Info("File uploaded", "filename", filename, "public_id", uploaded.PublicID)
	return &UploadResult{URL: uploaded.URL, PublicID: uploaded.PublicID}, nil
}
