package server

import (
	"net/http"

	"github.com/wildtrack/wildtrack/internal/server/handlers"
	"github.com/wildtrack/wildtrack/internal/server/middleware"
	"github.com/wildtrack/wildtrack/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(s.backend, s.publisher, s.logger, s.config.Version, s.uriSet)

	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Root serves the liveness body; the "/" pattern is ServeMux's
	// catch-all, so unmatched paths get a JSON 404 here.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			response.NotFound(w, "Resource not found", r.URL.Path)
			return
		}
		get(h.HandleHealth)(w, r)
	})

	// Health and info endpoints, reachable with and without the API prefix
	mux.HandleFunc("/health", get(h.HandleHealth))
	mux.HandleFunc(prefix+"/health", get(h.HandleHealth))
	mux.HandleFunc("/health/db", get(h.HandleDBHealth))
	mux.HandleFunc(prefix+"/health/db", get(h.HandleDBHealth))
	mux.HandleFunc("/info", get(h.HandleInfo))
	mux.HandleFunc(prefix+"/info", get(h.HandleInfo))

	// Sample data endpoints
	mux.HandleFunc(prefix+"/sample/seed", post(h.HandleSeed))
	mux.HandleFunc(prefix+"/sample/verify", get(h.HandleVerify))

	// Telemetry endpoints
	mux.HandleFunc(prefix+"/telemetry", post(h.HandleIngestTelemetry))
	mux.HandleFunc(prefix+"/telemetry/latest", get(h.HandleLatestTelemetry))
	mux.HandleFunc(prefix+"/telemetry/near", get(h.HandleTelemetryNear))

	// Sighting endpoints
	mux.HandleFunc(prefix+"/sightings", post(h.HandleReportSighting))
	mux.HandleFunc(prefix+"/sightings/near", get(h.HandleSightingsNear))

	// Geofence and alert endpoints
	mux.HandleFunc(prefix+"/geofences/containing", get(h.HandleGeofencesContaining))
	mux.HandleFunc(prefix+"/alerts", get(h.HandleListAlerts))
}

// applyMiddleware wraps handler with the middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	if s.config.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(s.config.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = s.config.CORSOrigins
			corsConfig.AllowAll = false
		}
		handler = middleware.CORS(corsConfig)(handler)
	}

	// Logging, request IDs, and recovery (always enabled)
	handler = middleware.Logger(s.logger)(handler)
	handler = middleware.RequestID()(handler)
	handler = middleware.Recovery(s.logger)(handler)

	return handler
}

// get restricts a handler to the GET method.
func get(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		fn(w, r)
	}
}

// post restricts a handler to the POST method.
func post(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		fn(w, r)
	}
}
