package storage

import "context"

// UploadedFile is what a backend hands back for a stored blob. PublicID is
// the backend's handle for later deletion.
type UploadedFile struct {
	URL      string
	PublicID string
}

// Uploader abstracts the blob store behind the upload endpoint.
// Supports Cloudinary in production and local filesystem for demo/testing.
type Uploader interface {
	// Upload stores the file content under the given folder and returns its
	// public URL.
	Upload(ctx context.Context, filename, contentType string, content []byte, folder string) (*UploadedFile, error)

	// Delete removes a previously uploaded file by its public ID.
	Delete(ctx context.Context, publicID string) error
}
