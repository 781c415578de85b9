package handlers

import (
	"net/http"

	"github.com/wildtrack/wildtrack/internal/server/response"
)

// HandleGeofencesContaining handles GET /api/v1/geofences/containing.
// Returns geofences whose geometry contains the lon/lat point.
func (h *Handlers) HandleGeofencesContaining(w http.ResponseWriter, r *http.Request) {
	point, err := parsePointQuery(r)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	fences, err := h.backend.GeofencesContaining(r.Context(), point)
	if err != nil {
		h.logger.Error().Err(err).Msg("Geofence containment query failed")
		response.ErrorFromType(w, err)
		return
	}

	response.OK(w, map[string]any{
		"geofences": fences,
		"count":     len(fences),
	})
}
