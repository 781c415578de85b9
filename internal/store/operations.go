package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wildtrack/wildtrack/pkg/errors"
	"github.com/wildtrack/wildtrack/pkg/geo"
	"github.com/wildtrack/wildtrack/pkg/models"
)

// insertOne inserts a document and returns its stringified ObjectId.
func (s *Store) insertOne(ctx context.Context, collection string, doc any) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", errors.NewStoreError("insert", collection, err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return "", errors.NewStoreError("insert", collection, errors.New("inserted id is not an ObjectId"))
}

// upsertOne inserts the document if no document matches the query, and in
// either case returns the stringified id of the matching document.
func (s *Store) upsertOne(ctx context.Context, collection string, query, doc bson.M) (string, error) {
	coll := s.db.Collection(collection)

	res, err := coll.UpdateOne(ctx, query, bson.M{"$setOnInsert": doc}, options.Update().SetUpsert(true))
	if err != nil {
		return "", errors.NewStoreError("upsert", collection, err)
	}
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}

	// Not inserted; fetch the existing id.
	var existing struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := coll.FindOne(ctx, query, options.FindOne().SetProjection(bson.M{"_id": 1})).Decode(&existing); err != nil {
		return "", errors.NewStoreError("upsert", collection, err)
	}
	return existing.ID.Hex(), nil
}

// UpsertUser upserts a user by email and returns its id.
func (s *Store) UpsertUser(ctx context.Context, user models.User) (string, error) {
	return s.upsertOne(ctx, CollUsers, bson.M{"email": user.Email}, toDoc(user))
}

// UpsertAnimal upserts an animal by tag_id and returns its id.
func (s *Store) UpsertAnimal(ctx context.Context, animal models.Animal) (string, error) {
	return s.upsertOne(ctx, CollAnimals, bson.M{"tag_id": animal.TagID}, toDoc(animal))
}

// UpsertDevice upserts a device by device_id and returns its id.
func (s *Store) UpsertDevice(ctx context.Context, device models.Device) (string, error) {
	return s.upsertOne(ctx, CollDevices, bson.M{"device_id": device.DeviceID}, toDoc(device))
}

// UpsertGeofence upserts a geofence by name and returns its id.
func (s *Store) UpsertGeofence(ctx context.Context, fence models.Geofence) (string, error) {
	return s.upsertOne(ctx, CollGeofences, bson.M{"name": fence.Name}, toDoc(fence))
}

// InsertTelemetry inserts a telemetry point and returns its id.
func (s *Store) InsertTelemetry(ctx context.Context, point models.TelemetryPoint) (string, error) {
	return s.insertOne(ctx, CollTelemetry, point)
}

// InsertAlert inserts an alert and returns its id.
func (s *Store) InsertAlert(ctx context.Context, alert models.Alert) (string, error) {
	return s.insertOne(ctx, CollAlerts, alert)
}

// InsertSighting inserts a sighting and returns its id.
func (s *Store) InsertSighting(ctx context.Context, sighting models.Sighting) (string, error) {
	return s.insertOne(ctx, CollSightings, sighting)
}

// Count returns the number of documents in the named collection.
func (s *Store) Count(ctx context.Context, collection string) (int64, error) {
	n, err := s.db.Collection(collection).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, errors.NewStoreError("count", collection, err)
	}
	return n, nil
}

// LatestTelemetry returns the most recent telemetry point by timestamp,
// or ErrNotFound when the collection is empty.
func (s *Store) LatestTelemetry(ctx context.Context) (*models.TelemetryPoint, error) {
	var point models.TelemetryPoint
	err := s.db.Collection(CollTelemetry).
		FindOne(ctx, bson.D{}, options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})).
		Decode(&point)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NewNotFoundError("telemetry", "")
		}
		return nil, errors.NewStoreError("find", CollTelemetry, err)
	}
	return &point, nil
}

// TelemetryNear returns telemetry points within maxMeters of the given
// point, nearest first. Requires the location 2dsphere index.
func (s *Store) TelemetryNear(ctx context.Context, point geo.Point, maxMeters float64, limit int64) ([]models.TelemetryPoint, error) {
	out := []models.TelemetryPoint{}
	if err := s.findNear(ctx, CollTelemetry, "location", point, maxMeters, limit, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SightingsNear returns sightings within maxMeters of the given point,
// nearest first. Requires the location 2dsphere index.
func (s *Store) SightingsNear(ctx context.Context, point geo.Point, maxMeters float64, limit int64) ([]models.Sighting, error) {
	out := []models.Sighting{}
	if err := s.findNear(ctx, CollSightings, "location", point, maxMeters, limit, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// findNear runs a $nearSphere query against the named geo field.
func (s *Store) findNear(ctx context.Context, collection, field string, point geo.Point, maxMeters float64, limit int64, out any) error {
	filter := bson.M{
		field: bson.M{
			"$nearSphere": bson.M{
				"$geometry":    point,
				"$maxDistance": maxMeters,
			},
		},
	}

	cursor, err := s.db.Collection(collection).Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return errors.NewStoreError("find", collection, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return errors.NewStoreError("find", collection, err)
	}
	return nil
}

// GeofencesContaining returns geofences whose geometry intersects the given
// point. Requires the geometry 2dsphere index.
func (s *Store) GeofencesContaining(ctx context.Context, point geo.Point) ([]models.Geofence, error) {
	filter := bson.M{
		"geometry": bson.M{
			"$geoIntersects": bson.M{
				"$geometry": point,
			},
		},
	}

	out := []models.Geofence{}
	cursor, err := s.db.Collection(CollGeofences).Find(ctx, filter)
	if err != nil {
		return nil, errors.NewStoreError("find", CollGeofences, err)
	}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.NewStoreError("find", CollGeofences, err)
	}
	return out, nil
}

// ActiveGeofences returns all active geofences.
func (s *Store) ActiveGeofences(ctx context.Context) ([]models.Geofence, error) {
	out := []models.Geofence{}
	cursor, err := s.db.Collection(CollGeofences).Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, errors.NewStoreError("find", CollGeofences, err)
	}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.NewStoreError("find", CollGeofences, err)
	}
	return out, nil
}

// ListAlerts returns alerts, optionally filtered by status, newest first.
func (s *Store) ListAlerts(ctx context.Context, status models.AlertStatus) ([]models.Alert, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	out := []models.Alert{}
	cursor, err := s.db.Collection(CollAlerts).
		Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, errors.NewStoreError("find", CollAlerts, err)
	}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.NewStoreError("find", CollAlerts, err)
	}
	return out, nil
}

// toDoc converts a model to a bson.M for $setOnInsert, dropping the zero
// ObjectId so MongoDB assigns one.
func toDoc(v any) bson.M {
	data, err := bson.Marshal(v)
	if err != nil {
		return bson.M{}
	}
	var doc bson.M
	if err := bson.Unmarshal(data, &doc); err != nil {
		return bson.M{}
	}
	delete(doc, "_id")
	return doc
}
