package handlers

import (
	"net/http"

	"github.com/wildtrack/wildtrack/internal/server/response"
)

// HandleHealth handles GET /health. Basic service liveness check.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"message": "Healthy",
		"service": "wildtrack-api",
		"version": h.version,
	})
}

// HandleDBHealth handles GET /health/db. Pings MongoDB and reports the
// configured database name.
func (h *Handlers) HandleDBHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.Ping(r.Context()); err != nil {
		h.logger.Error().Err(err).Msg("Database ping failed")
		response.ServiceUnavailable(w, "Database unreachable")
		return
	}

	response.OK(w, map[string]any{
		"status":  "ok",
		"db_name": h.dbName,
	})
}

// HandleInfo handles GET /info. Non-sensitive service information for
// diagnostics.
func (h *Handlers) HandleInfo(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"name": "wildtrack",
		"database": map[string]any{
			"type":    "mongodb",
			"db_name": h.dbName,
			"uri_set": h.uriSet,
		},
		"version": h.version,
	})
}
