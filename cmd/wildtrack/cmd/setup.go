package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/wildtrack/wildtrack/internal/config"
	"github.com/wildtrack/wildtrack/internal/store"
	"github.com/wildtrack/wildtrack/pkg/logging"
)

// connectStore loads settings, connects to MongoDB, and provisions indexes.
// The caller owns the returned store and must Close it.
func connectStore(ctx context.Context) (*store.Store, *config.Settings, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	defer cancel()

	s, err := store.Connect(connectCtx, cfg)
	if err != nil {
		return nil, nil, err
	}

	indexCtx, cancelIdx := context.WithTimeout(ctx, cfg.StoreTimeout)
	defer cancelIdx()

	if err := s.EnsureIndexes(indexCtx); err != nil {
		closeCtx, cancelClose := context.WithTimeout(context.Background(), cfg.StoreTimeout)
		defer cancelClose()
		_ = s.Close(closeCtx)
		return nil, nil, err
	}

	logging.Debug().
		Str("database", s.DatabaseName()).
		Msg("Connected to MongoDB with indexes provisioned")

	return s, cfg, nil
}

// closeStore disconnects the store, logging rather than failing on error.
func closeStore(s *store.Store, cfg *config.Settings) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout)
	defer cancel()
	if err := s.Close(ctx); err != nil {
		logging.Warn().Err(err).Msg("Error closing MongoDB connection")
	}
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}
