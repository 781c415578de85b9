package handlers

import (
	"net/http"

	"github.com/wildtrack/wildtrack/internal/server/response"
	"github.com/wildtrack/wildtrack/pkg/models"
)

// HandleListAlerts handles GET /api/v1/alerts. Returns alerts newest first,
// optionally filtered by status.
func (h *Handlers) HandleListAlerts(w http.ResponseWriter, r *http.Request) {
	status := models.AlertStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		response.BadRequest(w, "Unknown alert status", string(status))
		return
	}

	alerts, err := h.backend.ListAlerts(r.Context(), status)
	if err != nil {
		h.logger.Error().Err(err).Msg("Alert listing failed")
		response.ErrorFromType(w, err)
		return
	}

	response.OK(w, map[string]any{
		"alerts": alerts,
		"count":  len(alerts),
	})
}
