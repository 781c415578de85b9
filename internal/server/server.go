// Package server provides the HTTP server implementation for the wildtrack API.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/wildtrack/wildtrack/internal/events"
	"github.com/wildtrack/wildtrack/internal/server/handlers"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	backend   handlers.Backend
	publisher events.Publisher
	logger    *zerolog.Logger
	config    Config
	uriSet    bool
	httpSrv   *http.Server
}

// New creates a new server instance with the given configuration.
func New(backend handlers.Backend, publisher events.Publisher, logger *zerolog.Logger, cfg Config, uriSet bool) *Server {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	s := &Server{
		backend:   backend,
		publisher: publisher,
		logger:    logger,
		config:    cfg,
		uriSet:    uriSet,
	}

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.httpSrv.Addr
}

// Run starts the HTTP server and blocks until the context is canceled or
// the listener fails. Shutdown is graceful.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info().
			Str("addr", s.httpSrv.Addr).
			Str("prefix", s.config.PathPrefix).
			Msg("HTTP server listening")
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info().Msg("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.WriteTimeout)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	}
}
