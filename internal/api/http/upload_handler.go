package http

import (
	"io"
	"net/http"
	"path/filepath"

	"rentdesk-backend/internal/service"
	"rentdesk-backend/internal/storage"

	"github.com/gorilla/mux"
)

// UploadHandler receives multipart uploads and pushes them to the blob store.
type UploadHandler struct {
	uploads service.UploadService
}

func NewUploadHandler(uploads service.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

const maxMultipartMemory = 12 << 20

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respondError(w, http.StatusBadRequest, "expected a multipart form upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	result, err := h.uploads.Upload(
		r.Context(),
		header.Filename,
		header.Header.Get("Content-Type"),
		header.Size,
		content,
		r.FormValue("folder"),
	)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// FilesHandler serves files stored by the mock storage backend.
type FilesHandler struct {
	mockStorage *storage.MockStorageService
}

func NewFilesHandler(mockStorage *storage.MockStorageService) *FilesHandler {
	return &FilesHandler{mockStorage: mockStorage}
}

func (h *FilesHandler) Serve(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if key == "" {
		respondError(w, http.StatusBadRequest, "missing file key")
		return
	}

	file, err := h.mockStorage.Open(key)
	if err != nil {
		respondError(w, http.StatusNotFound, "file not found")
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".webp":
		contentType = "image/webp"
	case ".pdf":
		contentType = "application/pdf"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	io.Copy(w, file)
}
