// Package store implements the MongoDB persistence layer for wildtrack.
// It owns the client lifecycle, provisions collections and indexes, and
// exposes typed operations over the seven domain collections.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/wildtrack/wildtrack/internal/config"
	"github.com/wildtrack/wildtrack/pkg/errors"
	"github.com/wildtrack/wildtrack/pkg/logging"
)

// Collection names. Collections are provisioned lazily by MongoDB on first
// insert; indexes are provisioned explicitly via EnsureIndexes.
const (
	CollUsers     = "users"
	CollAnimals   = "animals"
	CollDevices   = "devices"
	CollTelemetry = "telemetry"
	CollGeofences = "geofences"
	CollAlerts    = "alerts"
	CollSightings = "sightings"
)

// Collections lists all domain collections in seed/verify order.
var Collections = []string{
	CollUsers,
	CollAnimals,
	CollDevices,
	CollTelemetry,
	CollGeofences,
	CollAlerts,
	CollSightings,
}

// Store wraps a shared MongoDB client and database handle.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, cfg *config.Settings) (*Store, error) {
	clientOptions := options.Client().ApplyURI(cfg.MongoURI)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, errors.NewStoreError("connect", "", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.NewStoreError("ping", "", err)
	}

	logging.Info().
		Str("database", cfg.DatabaseName).
		Msg("Connected to MongoDB")

	return &Store{
		client: client,
		db:     client.Database(cfg.DatabaseName),
	}, nil
}

// Ping verifies connectivity to the primary.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return errors.NewStoreError("ping", "", err)
	}
	return nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return errors.NewStoreError("disconnect", "", err)
	}
	return nil
}

// DatabaseName returns the configured database name.
func (s *Store) DatabaseName() string {
	return s.db.Name()
}

// Collection returns a handle for the named collection.
func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}
