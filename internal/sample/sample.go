// Package sample seeds and verifies demo data across the seven domain
// collections. Seeding is safe to repeat: records with natural keys (user
// email, animal tag, device id, geofence name) are upserted, while
// telemetry, alerts, and sightings are plain inserts.
package sample

import (
	"context"
	"time"

	"github.com/wildtrack/wildtrack/internal/events"
	"github.com/wildtrack/wildtrack/internal/store"
	"github.com/wildtrack/wildtrack/pkg/errors"
	"github.com/wildtrack/wildtrack/pkg/geo"
	"github.com/wildtrack/wildtrack/pkg/logging"
	"github.com/wildtrack/wildtrack/pkg/models"
)

// Store is the subset of the persistence layer used by seed and verify.
type Store interface {
	UpsertUser(ctx context.Context, user models.User) (string, error)
	UpsertAnimal(ctx context.Context, animal models.Animal) (string, error)
	UpsertDevice(ctx context.Context, device models.Device) (string, error)
	UpsertGeofence(ctx context.Context, fence models.Geofence) (string, error)
	InsertTelemetry(ctx context.Context, point models.TelemetryPoint) (string, error)
	InsertAlert(ctx context.Context, alert models.Alert) (string, error)
	InsertSighting(ctx context.Context, sighting models.Sighting) (string, error)
	Count(ctx context.Context, collection string) (int64, error)
	LatestTelemetry(ctx context.Context) (*models.TelemetryPoint, error)
}

// SeedResult holds the ids of the seeded documents.
type SeedResult struct {
	UsersID      string   `json:"users_id"`
	AnimalsID    string   `json:"animals_id"`
	DevicesID    string   `json:"devices_id"`
	TelemetryIDs []string `json:"telemetry_ids"`
	GeofenceID   string   `json:"geofence_id"`
	AlertID      string   `json:"alert_id"`
	SightingID   string   `json:"sighting_id"`
}

// VerifyResult reports whether seeded data is present and queryable.
type VerifyResult struct {
	OK              bool                   `json:"ok"`
	Counts          map[string]int64       `json:"counts"`
	LatestTelemetry *models.TelemetryPoint `json:"latest_telemetry,omitempty"`
	Errors          []string               `json:"errors,omitempty"`
}

// SeedVerifyResult bundles a seed and a subsequent verify for CLI use.
type SeedVerifyResult struct {
	Seed   *SeedResult   `json:"seed"`
	Verify *VerifyResult `json:"verify"`
}

// Sampler runs seed and verify operations against a store.
type Sampler struct {
	store     Store
	publisher events.Publisher
}

// New creates a Sampler. A nil publisher disables alert events.
func New(s Store, publisher events.Publisher) *Sampler {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Sampler{store: s, publisher: publisher}
}

// Seed inserts one representative record into each core collection, plus a
// three-point telemetry route inside the seeded geofence.
func (s *Sampler) Seed(ctx context.Context) (*SeedResult, error) {
	now := time.Now().UTC()

	user := models.User{
		Email:     "researcher@example.org",
		Name:      "Dr. Asha Rao",
		Role:      models.RoleResearcher,
		CreatedAt: now,
		UpdatedAt: now,
	}
	userID, err := s.store.UpsertUser(ctx, user)
	if err != nil {
		return nil, err
	}
	logging.Info().Str("id", userID).Msg("Seeded user")

	age := 7.5
	animal := models.Animal{
		Species:   models.NormalizeSpecies("Sloth Bear"),
		TagID:     "SB-001",
		Sex:       models.SexFemale,
		AgeYears:  &age,
		Name:      "Tara",
		CreatedAt: now,
		UpdatedAt: now,
	}
	animalID, err := s.store.UpsertAnimal(ctx, animal)
	if err != nil {
		return nil, err
	}
	logging.Info().Str("id", animalID).Msg("Seeded animal")

	battery := 88.5
	device := models.Device{
		DeviceID:     "DEV-ALPHA-001",
		AnimalID:     animalID,
		Status:       models.DeviceActive,
		BatteryLevel: &battery,
		LastSeenAt:   &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	deviceID, err := s.store.UpsertDevice(ctx, device)
	if err != nil {
		return nil, err
	}
	logging.Info().Str("id", deviceID).Msg("Seeded device")

	// Square polygon near the Bandipur Tiger Reserve area.
	fence := models.Geofence{
		Name:        "Bandipur Zone A",
		Description: "Core monitoring area for sloth bears.",
		Active:      true,
		Geometry: geo.NewPolygon([][][]float64{
			{
				{76.62, 11.64},
				{76.72, 11.64},
				{76.72, 11.72},
				{76.62, 11.72},
				{76.62, 11.64},
			},
		}),
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	geofenceID, err := s.store.UpsertGeofence(ctx, fence)
	if err != nil {
		return nil, err
	}
	logging.Info().Str("id", geofenceID).Msg("Seeded geofence")

	// A short route of three points within the geofence.
	route := []struct {
		minutesAgo time.Duration
		lon, lat   float64
		speed      float64
		heartRate  float64
		temp       float64
	}{
		{10 * time.Minute, 76.65, 11.66, 3.1, 55.0, 36.8},
		{5 * time.Minute, 76.67, 11.68, 4.2, 58.0, 36.9},
		{1 * time.Minute, 76.69, 11.70, 2.5, 54.0, 36.7},
	}

	telemetryIDs := make([]string, 0, len(route))
	for _, leg := range route {
		speed, heartRate, temp := leg.speed, leg.heartRate, leg.temp
		point := models.TelemetryPoint{
			AnimalID:     animalID,
			DeviceID:     deviceID,
			Timestamp:    now.Add(-leg.minutesAgo),
			Location:     geo.NewPoint(leg.lon, leg.lat),
			SpeedKmh:     &speed,
			HeartRateBpm: &heartRate,
			TemperatureC: &temp,
		}
		id, err := s.store.InsertTelemetry(ctx, point)
		if err != nil {
			return nil, err
		}
		telemetryIDs = append(telemetryIDs, id)
	}
	logging.Info().Strs("ids", telemetryIDs).Msg("Seeded telemetry")

	alert := models.Alert{
		AnimalID:  animalID,
		Type:      models.AlertGeofenceBreach,
		Message:   "Animal Tara crossed the northern boundary of Bandipur Zone A.",
		Status:    models.AlertOpen,
		CreatedAt: now,
		UpdatedAt: now,
		Metadata: map[string]any{
			"geofence_id": geofenceID,
			"severity":    "medium",
		},
	}
	alertID, err := s.store.InsertAlert(ctx, alert)
	if err != nil {
		return nil, err
	}
	logging.Info().Str("id", alertID).Msg("Seeded alert")

	if err := s.publisher.PublishAlert(alert); err != nil {
		// Event delivery is best effort; the alert is already persisted.
		logging.Warn().Err(err).Msg("Failed to publish seeded alert event")
	}

	confidence := 0.9
	sighting := models.Sighting{
		Species:    models.NormalizeSpecies("Sloth Bear"),
		ReporterID: userID,
		Timestamp:  now.Add(-time.Hour),
		Location:   geo.NewPoint(76.68, 11.69),
		Notes:      "Observed foraging near termite mound. No cubs observed.",
		MediaURLs:  []string{"https://example.org/media/sighting1.jpg"},
		Confidence: &confidence,
	}
	sightingID, err := s.store.InsertSighting(ctx, sighting)
	if err != nil {
		return nil, err
	}
	logging.Info().Str("id", sightingID).Msg("Seeded sighting")

	return &SeedResult{
		UsersID:      userID,
		AnimalsID:    animalID,
		DevicesID:    deviceID,
		TelemetryIDs: telemetryIDs,
		GeofenceID:   geofenceID,
		AlertID:      alertID,
		SightingID:   sightingID,
	}, nil
}

// Verify counts documents in each collection and fetches the latest
// telemetry point. OK is true only when every collection has at least one
// document, the latest telemetry is retrievable, and no errors occurred.
func (s *Sampler) Verify(ctx context.Context) *VerifyResult {
	result := &VerifyResult{
		Counts: make(map[string]int64, len(store.Collections)),
	}

	for _, collection := range store.Collections {
		n, err := s.store.Count(ctx, collection)
		if err != nil {
			logging.Error().Err(err).Str("collection", collection).Msg("Error counting documents")
			result.Errors = append(result.Errors, "count_error: "+err.Error())
			continue
		}
		result.Counts[collection] = n
		logging.Info().Str("collection", collection).Int64("count", n).Msg("Counted documents")
	}

	latest, err := s.store.LatestTelemetry(ctx)
	switch {
	case err == nil:
		result.LatestTelemetry = latest
	case errors.IsNotFound(err):
		// Empty telemetry collection is a verification miss, not an error.
	default:
		logging.Error().Err(err).Msg("Error fetching latest telemetry")
		result.Errors = append(result.Errors, "telemetry_fetch_error: "+err.Error())
	}

	ok := result.LatestTelemetry != nil && len(result.Errors) == 0
	for _, collection := range store.Collections {
		if result.Counts[collection] < 1 {
			ok = false
		}
	}
	result.OK = ok

	return result
}

// SeedAndVerify seeds the database and then verifies it in one call.
func (s *Sampler) SeedAndVerify(ctx context.Context) (*SeedVerifyResult, error) {
	seed, err := s.Seed(ctx)
	if err != nil {
		return nil, err
	}
	return &SeedVerifyResult{Seed: seed, Verify: s.Verify(ctx)}, nil
}
