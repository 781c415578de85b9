// Package handlers implements the HTTP handlers for the wildtrack API.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/wildtrack/wildtrack/internal/events"
	"github.com/wildtrack/wildtrack/internal/sample"
	"github.com/wildtrack/wildtrack/pkg/errors"
	"github.com/wildtrack/wildtrack/pkg/geo"
	"github.com/wildtrack/wildtrack/pkg/models"
)

// Default and maximum result counts for proximity queries.
const (
	defaultLimit     = 100
	maxLimit         = 1000
	defaultMaxMeters = 5000
)

// Backend is the persistence surface the API handlers depend on. The
// concrete *store.Store implements it; tests substitute an in-memory stub.
type Backend interface {
	sample.Store

	Ping(ctx context.Context) error
	DatabaseName() string
	TelemetryNear(ctx context.Context, point geo.Point, maxMeters float64, limit int64) ([]models.TelemetryPoint, error)
	SightingsNear(ctx context.Context, point geo.Point, maxMeters float64, limit int64) ([]models.Sighting, error)
	GeofencesContaining(ctx context.Context, point geo.Point) ([]models.Geofence, error)
	ActiveGeofences(ctx context.Context) ([]models.Geofence, error)
	ListAlerts(ctx context.Context, status models.AlertStatus) ([]models.Alert, error)
}

// Handlers holds dependencies for all HTTP handlers.
type Handlers struct {
	backend   Backend
	sampler   *sample.Sampler
	publisher events.Publisher
	logger    *zerolog.Logger
	version   string
	dbName    string
	uriSet    bool
}

// New creates a Handlers instance.
func New(backend Backend, publisher events.Publisher, logger *zerolog.Logger, version string, uriSet bool) *Handlers {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Handlers{
		backend:   backend,
		sampler:   sample.New(backend, publisher),
		publisher: publisher,
		logger:    logger,
		version:   version,
		dbName:    backend.DatabaseName(),
		uriSet:    uriSet,
	}
}

// parsePointQuery reads lon/lat query parameters into a validated point.
func parsePointQuery(r *http.Request) (geo.Point, error) {
	lonStr := r.URL.Query().Get("lon")
	latStr := r.URL.Query().Get("lat")
	if lonStr == "" || latStr == "" {
		return geo.Point{}, errors.NewValidationError("lon/lat", nil, "lon and lat query parameters are required")
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return geo.Point{}, errors.NewValidationError("lon", lonStr, "must be a number")
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return geo.Point{}, errors.NewValidationError("lat", latStr, "must be a number")
	}

	point := geo.NewPoint(lon, lat)
	if err := point.Validate(); err != nil {
		return geo.Point{}, err
	}
	return point, nil
}

// parseMaxMeters reads the max_meters query parameter.
func parseMaxMeters(r *http.Request) (float64, error) {
	raw := r.URL.Query().Get("max_meters")
	if raw == "" {
		return defaultMaxMeters, nil
	}
	meters, err := strconv.ParseFloat(raw, 64)
	if err != nil || meters <= 0 {
		return 0, errors.NewValidationError("max_meters", raw, "must be a positive number")
	}
	return meters, nil
}

// parseLimit reads the limit query parameter, clamped to maxLimit.
func parseLimit(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit, nil
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit <= 0 {
		return 0, errors.NewValidationError("limit", raw, "must be a positive integer")
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit, nil
}
