package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/wildtrack/wildtrack/internal/server/response"
	"github.com/wildtrack/wildtrack/pkg/models"
)

// HandleIngestTelemetry handles POST /api/v1/telemetry. Validates and
// stores one telemetry point, then evaluates active geofences: a point
// outside every active geofence raises a geofence_breach alert for the
// linked animal.
func (h *Handlers) HandleIngestTelemetry(w http.ResponseWriter, r *http.Request) {
	var point models.TelemetryPoint
	if err := json.NewDecoder(r.Body).Decode(&point); err != nil {
		response.BadRequest(w, "Invalid request body", err.Error())
		return
	}

	if point.Timestamp.IsZero() {
		point.Timestamp = time.Now().UTC()
	}
	if err := point.Validate(); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	id, err := h.backend.InsertTelemetry(r.Context(), point)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to insert telemetry point")
		response.ErrorFromType(w, err)
		return
	}

	alertID, err := h.evaluateGeofences(r, point)
	if err != nil {
		// The point is stored; report the breach evaluation failure but
		// don't fail the ingest.
		h.logger.Error().Err(err).Str("telemetry_id", id).Msg("Geofence evaluation failed")
	}

	result := map[string]any{"id": id}
	if alertID != "" {
		result["alert_id"] = alertID
	}
	response.Created(w, result)
}

// evaluateGeofences checks the point against all active geofences and
// creates a breach alert when the animal is outside every one of them.
// Containment runs locally so evaluation works even before the 2dsphere
// index build finishes.
func (h *Handlers) evaluateGeofences(r *http.Request, point models.TelemetryPoint) (string, error) {
	if point.AnimalID == "" {
		return "", nil
	}

	fences, err := h.backend.ActiveGeofences(r.Context())
	if err != nil {
		return "", err
	}
	if len(fences) == 0 {
		return "", nil
	}

	for _, fence := range fences {
		if fence.Contains(point.Location) {
			return "", nil
		}
	}

	now := time.Now().UTC()
	alert := models.Alert{
		AnimalID:  point.AnimalID,
		Type:      models.AlertGeofenceBreach,
		Message:   fmt.Sprintf("Animal %s reported outside all active geofences.", point.AnimalID),
		Status:    models.AlertOpen,
		CreatedAt: now,
		UpdatedAt: now,
		Metadata: map[string]any{
			"location":  point.Location,
			"device_id": point.DeviceID,
		},
	}

	alertID, err := h.backend.InsertAlert(r.Context(), alert)
	if err != nil {
		return "", err
	}

	if err := h.publisher.PublishAlert(alert); err != nil {
		h.logger.Warn().Err(err).Str("alert_id", alertID).Msg("Failed to publish alert event")
	}

	h.logger.Info().
		Str("animal_id", point.AnimalID).
		Str("alert_id", alertID).
		Msg("Geofence breach alert created")

	return alertID, nil
}

// HandleLatestTelemetry handles GET /api/v1/telemetry/latest. Returns the
// most recent telemetry point by timestamp.
func (h *Handlers) HandleLatestTelemetry(w http.ResponseWriter, r *http.Request) {
	point, err := h.backend.LatestTelemetry(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, point)
}

// HandleTelemetryNear handles GET /api/v1/telemetry/near. Returns telemetry
// points within max_meters of lon/lat, nearest first.
func (h *Handlers) HandleTelemetryNear(w http.ResponseWriter, r *http.Request) {
	point, err := parsePointQuery(r)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	maxMeters, err := parseMaxMeters(r)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	points, err := h.backend.TelemetryNear(r.Context(), point, maxMeters, limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Telemetry proximity query failed")
		response.ErrorFromType(w, err)
		return
	}

	response.OK(w, map[string]any{
		"points": points,
		"count":  len(points),
	})
}
