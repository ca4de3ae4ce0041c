package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatimClient_Reverse(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/reverse", r.URL.Path)
			assert.Equal(t, "18.520400", r.URL.Query().Get("lat"))
			assert.Equal(t, "73.856700", r.URL.Query().Get("lon"))
			assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
			assert.NotEmpty(t, r.Header.Get("User-Agent"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"display_name": "Shivajinagar, Pune, Maharashtra, India"}`))
		}))
		defer server.Close()

		client := NewNominatimClient(server.URL, "rentdesk-test")
		name, err := client.Reverse(context.Background(), 18.5204, 73.8567)
		require.NoError(t, err)
		assert.Equal(t, "Shivajinagar, Pune, Maharashtra, India", name)
	})

	t.Run("UnableToGeocode", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"error": "Unable to geocode"}`))
		}))
		defer server.Close()

		client := NewNominatimClient(server.URL, "rentdesk-test")
		_, err := client.Reverse(context.Background(), 0, 0)
		assert.Error(t, err)
	})

	t.Run("ServerError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewNominatimClient(server.URL, "rentdesk-test")
		_, err := client.Reverse(context.Background(), 18.5204, 73.8567)
		assert.Error(t, err)
	})
}

func TestFormatCoordinates(t *testing.T) {
	assert.Equal(t, "18.520400, 73.856700", FormatCoordinates(18.5204, 73.8567))
	assert.Equal(t, "-33.868800, 151.209300", FormatCoordinates(-33.8688, 151.2093))
}
