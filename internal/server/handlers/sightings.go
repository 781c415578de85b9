package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/wildtrack/wildtrack/internal/server/response"
	"github.com/wildtrack/wildtrack/pkg/models"
)

// HandleReportSighting handles POST /api/v1/sightings. Stores a
// user-submitted wildlife sighting with a normalized species name.
func (h *Handlers) HandleReportSighting(w http.ResponseWriter, r *http.Request) {
	var sighting models.Sighting
	if err := json.NewDecoder(r.Body).Decode(&sighting); err != nil {
		response.BadRequest(w, "Invalid request body", err.Error())
		return
	}

	sighting.Species = models.NormalizeSpecies(sighting.Species)
	if sighting.Timestamp.IsZero() {
		sighting.Timestamp = time.Now().UTC()
	}
	if err := sighting.Validate(); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	id, err := h.backend.InsertSighting(r.Context(), sighting)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to insert sighting")
		response.ErrorFromType(w, err)
		return
	}

	response.Created(w, map[string]any{
		"id":      id,
		"species": sighting.Species,
	})
}

// HandleSightingsNear handles GET /api/v1/sightings/near. Returns sightings
// within max_meters of lon/lat, nearest first.
func (h *Handlers) HandleSightingsNear(w http.ResponseWriter, r *http.Request) {
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

	sightings, err := h.backend.SightingsNear(r.Context(), point, maxMeters, limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Sighting proximity query failed")
		response.ErrorFromType(w, err)
		return
	}

	response.OK(w, map[string]any{
		"sightings": sightings,
		"count":     len(sightings),
	})
}
