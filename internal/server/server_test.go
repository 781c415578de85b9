package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildtrack/wildtrack/internal/server/middleware"
	"github.com/wildtrack/wildtrack/pkg/errors"
	"github.com/wildtrack/wildtrack/pkg/geo"
	"github.com/wildtrack/wildtrack/pkg/models"
)

// fakeBackend is a minimal Backend for routing tests.
type fakeBackend struct{}

func (fakeBackend) Ping(context.Context) error { return nil }
func (fakeBackend) DatabaseName() string       { return "wildtrack_test" }
func (fakeBackend) UpsertUser(context.Context, models.User) (string, error) {
	return "u1", nil
}
func (fakeBackend) UpsertAnimal(context.Context, models.Animal) (string, error) {
	return "a1", nil
}
func (fakeBackend) UpsertDevice(context.Context, models.Device) (string, error) {
	return "d1", nil
}
func (fakeBackend) UpsertGeofence(context.Context, models.Geofence) (string, error) {
	return "g1", nil
}
func (fakeBackend) InsertTelemetry(context.Context, models.TelemetryPoint) (string, error) {
	return "t1", nil
}
func (fakeBackend) InsertAlert(context.Context, models.Alert) (string, error) {
	return "al1", nil
}
func (fakeBackend) InsertSighting(context.Context, models.Sighting) (string, error) {
	return "s1", nil
}
func (fakeBackend) Count(context.Context, string) (int64, error) { return 1, nil }
func (fakeBackend) LatestTelemetry(context.Context) (*models.TelemetryPoint, error) {
	return nil, errors.NewNotFoundError("telemetry", "")
}
func (fakeBackend) TelemetryNear(context.Context, geo.Point, float64, int64) ([]models.TelemetryPoint, error) {
	return nil, nil
}
func (fakeBackend) SightingsNear(context.Context, geo.Point, float64, int64) ([]models.Sighting, error) {
	return nil, nil
}
func (fakeBackend) GeofencesContaining(context.Context, geo.Point) ([]models.Geofence, error) {
	return nil, nil
}
func (fakeBackend) ActiveGeofences(context.Context) ([]models.Geofence, error) {
	return nil, nil
}
func (fakeBackend) ListAlerts(context.Context, models.AlertStatus) ([]models.Alert, error) {
	return nil, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := zerolog.Nop()
	return New(fakeBackend{}, nil, &logger, DefaultConfig(), true)
}

func TestServerAddr(t *testing.T) {
	srv := newTestServer(t)
	assert.Equal(t, "0.0.0.0:8080", srv.Addr())
}

func TestRoutes(t *testing.T) {
	handler := newTestServer(t).Handler()

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/no/such/path", http.StatusNotFound},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/v1/health", http.StatusOK},
		{http.MethodGet, "/health/db", http.StatusOK},
		{http.MethodGet, "/info", http.StatusOK},
		{http.MethodGet, "/api/v1/info", http.StatusOK},
		{http.MethodPost, "/api/v1/sample/seed", http.StatusOK},
		{http.MethodGet, "/api/v1/sample/verify", http.StatusOK},
		{http.MethodGet, "/api/v1/telemetry/latest", http.StatusNotFound},
		{http.MethodGet, "/api/v1/telemetry/near?lon=76.65&lat=11.66", http.StatusOK},
		{http.MethodGet, "/api/v1/sightings/near?lon=76.65&lat=11.66", http.StatusOK},
		{http.MethodGet, "/api/v1/geofences/containing?lon=76.65&lat=11.66", http.StatusOK},
		{http.MethodGet, "/api/v1/alerts", http.StatusOK},
		{http.MethodGet, "/favicon.ico", http.StatusNoContent},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.status, rec.Code, "%s %s", tt.method, tt.path)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	handler := newTestServer(t).Handler()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/health"},
		{http.MethodGet, "/api/v1/sample/seed"},
		{http.MethodDelete, "/api/v1/alerts"},
		{http.MethodPut, "/api/v1/telemetry"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, "%s %s", tt.method, tt.path)
	}
}

func TestRequestIDHeader(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.NotEmpty(t, rec.Header().Get(middleware.HeaderRequestID))
}

func TestCORSPreflight(t *testing.T) {
	handler := newTestServer(t).Handler()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/alerts", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRunStopsOnContextCancel(t *testing.T) {
	logger := zerolog.Nop()
	cfg := DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	srv := New(fakeBackend{}, nil, &logger, cfg, true)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()
	require.NoError(t, <-done)
}
