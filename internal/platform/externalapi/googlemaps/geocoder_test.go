package googlemaps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"places_backend/internal/feature/places/domain/entity"
)

func newTestGeocoder(t *testing.T, handler http.HandlerFunc) *Geocoder {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewGeocoder(Config{APIKey: "test-key", BaseURL: server.URL + "/"}, server.Client(), nil)
}

func TestNewGeocoder_DefaultBaseURL(t *testing.T) {
	t.Parallel()

	g := NewGeocoder(Config{APIKey: "k"}, &http.Client{}, nil)

	assert.Equal(t, DefaultBaseURL, g.cfg.BaseURL)
}

func TestGeocoder_Geocode_Success(t *testing.T) {
	t.Parallel()

	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json", r.URL.Path)
		assert.Equal(t, "350 5th Ave, NYC", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [
				{"formatted_address": "20 W 34th St", "geometry": {"location": {"lat": 40.7484405, "lng": -73.9878584}}},
				{"formatted_address": "elsewhere", "geometry": {"location": {"lat": 1, "lng": 2}}}
			]
		}`))
	})

	loc, err := g.Geocode(context.Background(), "350 5th Ave, NYC")

	require.NoError(t, err)
	assert.Equal(t, entity.Location{Lat: 40.7484405, Lng: -73.9878584}, loc)
}

func TestGeocoder_Geocode_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		wantErr  error
		contains string
	}{
		{"zero results", http.StatusOK, `{"status":"ZERO_RESULTS","results":[]}`, ErrZeroResults, ""},
		{"ok without results", http.StatusOK, `{"status":"OK","results":[]}`, ErrZeroResults, ""},
		{"request denied", http.StatusOK, `{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid."}`, nil, "REQUEST_DENIED"},
		{"upstream 500", http.StatusInternalServerError, `oops`, nil, "http 500"},
		{"invalid json", http.StatusOK, `{`, nil, "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := newTestGeocoder(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := g.Geocode(context.Background(), "nowhere")

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestGeocoder_Geocode_Timeout(t *testing.T) {
	t.Parallel()

	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := g.Geocode(ctx, "slow")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type deniedLimiter struct{}

func (deniedLimiter) Wait(context.Context) error { return errors.New("limited") }

func TestGeocoder_Geocode_LimiterError(t *testing.T) {
	t.Parallel()

	called := false
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	t.Cleanup(server.Close)

	g := NewGeocoder(Config{BaseURL: server.URL}, server.Client(), deniedLimiter{})
	_, err := g.Geocode(context.Background(), "x")

	assert.EqualError(t, err, "limited")
	assert.False(t, called, "no request may be sent when the limiter refuses")
}
