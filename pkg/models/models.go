// Package models defines the domain records persisted by the wildtrack
// system. Each type maps to one MongoDB collection; location-bearing
// records carry GeoJSON geometry served by 2dsphere indexes.
package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wildtrack/wildtrack/pkg/errors"
	"github.com/wildtrack/wildtrack/pkg/geo"
)

// Role is a user's access role.
type Role string

// Access roles.
const (
	RoleAdmin      Role = "admin"
	RoleResearcher Role = "researcher"
	RoleRanger     Role = "ranger"
	RoleViewer     Role = "viewer"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleResearcher, RoleRanger, RoleViewer:
		return true
	}
	return false
}

// Sex is an animal's recorded sex.
type Sex string

// Recorded sexes.
const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Valid reports whether the sex is one of the known values.
func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale, SexUnknown:
		return true
	}
	return false
}

// DeviceStatus is a tracking device's lifecycle state.
type DeviceStatus string

// Device lifecycle states.
const (
	DeviceActive      DeviceStatus = "active"
	DeviceInactive    DeviceStatus = "inactive"
	DeviceMaintenance DeviceStatus = "maintenance"
	DeviceRetired     DeviceStatus = "retired"
)

// Valid reports whether the status is one of the known values.
func (s DeviceStatus) Valid() bool {
	switch s {
	case DeviceActive, DeviceInactive, DeviceMaintenance, DeviceRetired:
		return true
	}
	return false
}

// AlertType classifies what triggered an alert.
type AlertType string

// Alert trigger kinds.
const (
	AlertGeofenceBreach AlertType = "geofence_breach"
	AlertInactivity     AlertType = "inactivity"
	AlertLowBattery     AlertType = "low_battery"
	AlertCustom         AlertType = "custom"
)

// Valid reports whether the alert type is one of the known values.
func (t AlertType) Valid() bool {
	switch t {
	case AlertGeofenceBreach, AlertInactivity, AlertLowBattery, AlertCustom:
		return true
	}
	return false
}

// AlertStatus is an alert's handling state.
type AlertStatus string

// Alert handling states.
const (
	AlertOpen         AlertStatus = "open"
	AlertAcknowledged AlertStatus = "acknowledged"
	AlertResolved     AlertStatus = "resolved"
)

// Valid reports whether the alert status is one of the known values.
func (s AlertStatus) Valid() bool {
	switch s {
	case AlertOpen, AlertAcknowledged, AlertResolved:
		return true
	}
	return false
}

// User represents a user of the system.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name" json:"name"`
	Role      Role               `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Validate checks required fields and enumerations.
func (u *User) Validate() error {
	if !strings.Contains(u.Email, "@") {
		return errors.NewValidationError("email", u.Email, "valid email address required")
	}
	if u.Name == "" {
		return errors.NewValidationError("name", u.Name, "name is required")
	}
	if u.Role != "" && !u.Role.Valid() {
		return errors.NewValidationError("role", u.Role, "unknown role")
	}
	return nil
}

// Animal represents a tracked animal.
type Animal struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Species   string             `bson:"species" json:"species"`
	TagID     string             `bson:"tag_id" json:"tag_id"`
	Sex       Sex                `bson:"sex,omitempty" json:"sex,omitempty"`
	AgeYears  *float64           `bson:"age_years,omitempty" json:"age_years,omitempty"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Validate checks required fields and enumerations.
func (a *Animal) Validate() error {
	if a.Species == "" {
		return errors.NewValidationError("species", a.Species, "species is required")
	}
	if a.TagID == "" {
		return errors.NewValidationError("tag_id", a.TagID, "tag_id is required")
	}
	if a.Sex != "" && !a.Sex.Valid() {
		return errors.NewValidationError("sex", a.Sex, "unknown sex")
	}
	return nil
}

// Device represents a tracking device.
type Device struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	DeviceID     string             `bson:"device_id" json:"device_id"`
	AnimalID     string             `bson:"animal_id,omitempty" json:"animal_id,omitempty"`
	Status       DeviceStatus       `bson:"status" json:"status"`
	BatteryLevel *float64           `bson:"battery_level,omitempty" json:"battery_level,omitempty"`
	LastSeenAt   *time.Time         `bson:"last_seen_at,omitempty" json:"last_seen_at,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// Validate checks required fields and enumerations.
func (d *Device) Validate() error {
	if d.DeviceID == "" {
		return errors.NewValidationError("device_id", d.DeviceID, "device_id is required")
	}
	if d.Status != "" && !d.Status.Valid() {
		return errors.NewValidationError("status", d.Status, "unknown device status")
	}
	return nil
}

// TelemetryPoint is a single telemetry datapoint for an animal/device.
type TelemetryPoint struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	AnimalID     string             `bson:"animal_id,omitempty" json:"animal_id,omitempty"`
	DeviceID     string             `bson:"device_id,omitempty" json:"device_id,omitempty"`
	Timestamp    time.Time          `bson:"timestamp" json:"timestamp"`
	Location     geo.Point          `bson:"location" json:"location"`
	SpeedKmh     *float64           `bson:"speed_kmh,omitempty" json:"speed_kmh,omitempty"`
	HeartRateBpm *float64           `bson:"heart_rate_bpm,omitempty" json:"heart_rate_bpm,omitempty"`
	TemperatureC *float64           `bson:"temperature_c,omitempty" json:"temperature_c,omitempty"`
	Extra        map[string]any     `bson:"extra,omitempty" json:"extra,omitempty"`
}

// Validate checks the location geometry.
func (t *TelemetryPoint) Validate() error {
	return t.Location.Validate()
}

// Geofence is a named geofence polygon.
type Geofence struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Active      bool               `bson:"active" json:"active"`
	Geometry    geo.Polygon        `bson:"geometry" json:"geometry"`
	CreatedBy   string             `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Validate checks required fields and the polygon geometry.
func (g *Geofence) Validate() error {
	if g.Name == "" {
		return errors.NewValidationError("name", g.Name, "name is required")
	}
	return g.Geometry.Validate()
}

// Contains reports whether the geofence contains the given point.
func (g *Geofence) Contains(p geo.Point) bool {
	return geo.Contains(g.Geometry, p)
}

// Alert is an alert triggered by system rules.
type Alert struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	AnimalID  string             `bson:"animal_id,omitempty" json:"animal_id,omitempty"`
	Type      AlertType          `bson:"type" json:"type"`
	Message   string             `bson:"message" json:"message"`
	Status    AlertStatus        `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
	Metadata  map[string]any     `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// Validate checks required fields and enumerations.
func (a *Alert) Validate() error {
	if a.Message == "" {
		return errors.NewValidationError("message", a.Message, "message is required")
	}
	if a.Type != "" && !a.Type.Valid() {
		return errors.NewValidationError("type", a.Type, "unknown alert type")
	}
	if a.Status != "" && !a.Status.Valid() {
		return errors.NewValidationError("status", a.Status, "unknown alert status")
	}
	return nil
}

// Sighting is a user-submitted wildlife sighting.
type Sighting struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Species    string             `bson:"species" json:"species"`
	ReporterID string             `bson:"reporter_id,omitempty" json:"reporter_id,omitempty"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
	Location   geo.Point          `bson:"location" json:"location"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	MediaURLs  []string           `bson:"media_urls,omitempty" json:"media_urls,omitempty"`
	Confidence *float64           `bson:"confidence,omitempty" json:"confidence,omitempty"`
}

// Validate checks required fields and the location geometry.
func (s *Sighting) Validate() error {
	if s.Species == "" {
		return errors.NewValidationError("species", s.Species, "species is required")
	}
	if s.Confidence != nil && (*s.Confidence < 0 || *s.Confidence > 1) {
		return errors.NewValidationError("confidence", *s.Confidence, "confidence must be between 0 and 1")
	}
	return s.Location.Validate()
}
