package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wildtrack/wildtrack/pkg/errors"
	"github.com/wildtrack/wildtrack/pkg/logging"
)

// indexSpecs returns the index models for each collection. Geo queries
// against telemetry, geofences, and sightings require the 2dsphere indexes;
// the unique indexes back the upsert-by-natural-key semantics of seeding.
func indexSpecs() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		CollUsers: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("email_unique").SetUnique(true),
			},
		},
		CollAnimals: {
			{
				Keys:    bson.D{{Key: "tag_id", Value: 1}},
				Options: options.Index().SetName("tag_id_unique").SetUnique(true),
			},
		},
		CollDevices: {
			{
				Keys:    bson.D{{Key: "device_id", Value: 1}},
				Options: options.Index().SetName("device_id_unique").SetUnique(true),
			},
		},
		CollTelemetry: {
			{
				Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
				Options: options.Index().SetName("location_2dsphere"),
			},
			{
				Keys:    bson.D{{Key: "timestamp", Value: -1}},
				Options: options.Index().SetName("timestamp_desc"),
			},
		},
		CollGeofences: {
			{
				Keys:    bson.D{{Key: "geometry", Value: "2dsphere"}},
				Options: options.Index().SetName("geometry_2dsphere"),
			},
			{
				Keys:    bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetName("name_unique").SetUnique(true),
			},
		},
		CollAlerts: {
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("status_created_at"),
			},
		},
		CollSightings: {
			{
				Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
				Options: options.Index().SetName("location_2dsphere"),
			},
		},
	}
}

// EnsureIndexes creates all indexes at startup. CreateMany is a no-op for
// indexes that already exist with the same specification, so repeated calls
// are safe.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	for collection, specs := range indexSpecs() {
		if _, err := s.db.Collection(collection).Indexes().CreateMany(ctx, specs); err != nil {
			return errors.NewStoreError("index", collection, err)
		}
		logging.Debug().
			Str("collection", collection).
			Int("indexes", len(specs)).
			Msg("Indexes ensured")
	}

	logging.Info().Msg("All indexes ensured")
	return nil
}
