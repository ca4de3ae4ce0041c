package storage

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"time"
)

const defaultCloudinaryBaseURL = "https://api.cloudinary.com/v1_1"

// CloudinaryService uploads files through Cloudinary's signed upload API.
type CloudinaryService struct {
	cloudName string
	apiKey    string
	apiSecret string
	baseURL   string
	client    *http.Client
	now       func() time.Time
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string) *CloudinaryService {
	return &CloudinaryService{
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		baseURL:   defaultCloudinaryBaseURL,
		client:    &http.Client{Timeout: 30 * time.Second},
		now:       time.Now,
	}
}

type cloudinaryUploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// sign computes the SHA-1 signature Cloudinary expects: the sorted
// parameter string with the API secret appended.
func (s *CloudinaryService) sign(paramString string) string {
	sum := sha1.Sum([]byte(paramString + s.apiSecret))
	return hex.EncodeToString(sum[:])
}

func (s *CloudinaryService) Upload(ctx context.Context, filename, contentType string, content []byte, folder string) (*UploadedFile, error) {
	timestamp := strconv.FormatInt(s.now().Unix(), 10)
	signature := s.sign("folder=" + folder + "&timestamp=" + timestamp)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"api_key":   s.apiKey,
		"timestamp": timestamp,
		"folder":    folder,
		"signature": signature,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s/auto/upload", s.baseURL, s.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload request failed: %w", err)
	}
	defer resp.Body.Close()

	var result cloudinaryUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode cloudinary response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("cloudinary upload failed with status %d: %s", resp.StatusCode, result.Error.Message)
	}

	return &UploadedFile{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

func (s *CloudinaryService) Delete(ctx context.Context, publicID string) error {
	timestamp := strconv.FormatInt(s.now().Unix(), 10)
	signature := s.sign("public_id=" + publicID + "&timestamp=" + timestamp)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	fields := map[string]string{
		"public_id": publicID,
		"api_key":   s.apiKey,
		"timestamp": timestamp,
		"signature": signature,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/image/destroy", s.baseURL, s.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("cloudinary destroy request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		payload, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("cloudinary destroy failed with status %d: %s", resp.StatusCode, payload)
	}
	return nil
}
