// Package geo resolves coordinates to human-readable place names using the
// OpenStreetMap Nominatim API.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultUserAgent = "rentdesk-backend/1.0"

type NominatimClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewNominatimClient(baseURL, userAgent string) *NominatimClient {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &NominatimClient{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// Reverse looks up the place name for a coordinate pair. Callers should treat
// errors as non-fatal and fall back to FormatCoordinates.
func (c *NominatimClient) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	params.Set("lon", strconv.FormatFloat(lng, 'f', 6, 64))
	params.Set("format", "jsonv2")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocode returned status %d", resp.StatusCode)
	}

	var result reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode reverse geocode response: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("reverse geocode error: %s", result.Error)
	}
	return result.DisplayName, nil
}

// FormatCoordinates renders a coordinate pair the way the dashboard shows a
// location when no place name could be resolved.
func FormatCoordinates(lat, lng float64) string {
	return fmt.Sprintf("%.6f, %.6f", lat, lng)
}
