package handlers

import (
	"net/http"

	"github.com/wildtrack/wildtrack/internal/server/response"
)

// HandleSeed handles POST /api/v1/sample/seed. Inserts one realistic record
// into each core collection, including a three-point telemetry route.
func (h *Handlers) HandleSeed(w http.ResponseWriter, r *http.Request) {
	result, err := h.sampler.Seed(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Seed failed")
		response.ErrorFromType(w, err)
		return
	}

	response.OK(w, result)
}

// HandleVerify handles GET /api/v1/sample/verify. Counts documents per
// collection and fetches the latest telemetry point; ok is true only when
// every collection is non-empty and no errors occurred.
func (h *Handlers) HandleVerify(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.sampler.Verify(r.Context()))
}
