package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildtrack/wildtrack/pkg/errors"
	"github.com/wildtrack/wildtrack/pkg/geo"
)

func floatPtr(f float64) *float64 { return &f }

func TestUserValidate(t *testing.T) {
	user := User{
		Email: "researcher@example.org",
		Name:  "Dr. Asha Rao",
		Role:  RoleResearcher,
	}
	require.NoError(t, user.Validate())

	user.Email = "not-an-email"
	assert.True(t, errors.IsValidationError(user.Validate()))

	user.Email = "researcher@example.org"
	user.Name = ""
	assert.True(t, errors.IsValidationError(user.Validate()))

	user.Name = "Dr. Asha Rao"
	user.Role = Role("superuser")
	assert.True(t, errors.IsValidationError(user.Validate()))
}

func TestAnimalValidate(t *testing.T) {
	animal := Animal{
		Species:  "Sloth Bear",
		TagID:    "SB-001",
		Sex:      SexFemale,
		AgeYears: floatPtr(7.5),
		Name:     "Tara",
	}
	require.NoError(t, animal.Validate())

	animal.TagID = ""
	assert.Error(t, animal.Validate())

	animal.TagID = "SB-001"
	animal.Species = ""
	assert.Error(t, animal.Validate())

	animal.Species = "Sloth Bear"
	animal.Sex = Sex("other")
	assert.Error(t, animal.Validate())
}

func TestDeviceValidate(t *testing.T) {
	device := Device{
		DeviceID:     "DEV-ALPHA-001",
		Status:       DeviceActive,
		BatteryLevel: floatPtr(88.5),
	}
	require.NoError(t, device.Validate())

	device.Status = DeviceStatus("broken")
	assert.Error(t, device.Validate())

	device.Status = DeviceActive
	device.DeviceID = ""
	assert.Error(t, device.Validate())
}

func TestTelemetryPointValidate(t *testing.T) {
	point := TelemetryPoint{
		AnimalID:  "abc",
		DeviceID:  "DEV-ALPHA-001",
		Timestamp: time.Now().UTC(),
		Location:  geo.NewPoint(76.65, 11.66),
		SpeedKmh:  floatPtr(3.1),
	}
	require.NoError(t, point.Validate())

	point.Location = geo.NewPoint(200, 0)
	assert.True(t, errors.IsValidationError(point.Validate()))
}

func TestGeofenceValidateAndContains(t *testing.T) {
	fence := Geofence{
		Name:   "Bandipur Zone A",
		Active: true,
		Geometry: geo.NewPolygon([][][]float64{
			{
				{76.62, 11.64},
				{76.72, 11.64},
				{76.72, 11.72},
				{76.62, 11.72},
				{76.62, 11.64},
			},
		}),
	}
	require.NoError(t, fence.Validate())

	assert.True(t, fence.Contains(geo.NewPoint(76.67, 11.68)))
	assert.False(t, fence.Contains(geo.NewPoint(76.50, 11.68)))

	fence.Name = ""
	assert.Error(t, fence.Validate())

	fence.Name = "Bandipur Zone A"
	fence.Geometry = geo.NewPolygon(nil)
	assert.Error(t, fence.Validate())
}

func TestAlertValidate(t *testing.T) {
	alert := Alert{
		Type:    AlertGeofenceBreach,
		Message: "Animal Tara crossed the northern boundary of Bandipur Zone A.",
		Status:  AlertOpen,
	}
	require.NoError(t, alert.Validate())

	alert.Message = ""
	assert.Error(t, alert.Validate())

	alert.Message = "msg"
	alert.Type = AlertType("earthquake")
	assert.Error(t, alert.Validate())

	alert.Type = AlertCustom
	alert.Status = AlertStatus("ignored")
	assert.Error(t, alert.Validate())
}

func TestSightingValidate(t *testing.T) {
	sighting := Sighting{
		Species:    "Sloth Bear",
		Timestamp:  time.Now().UTC(),
		Location:   geo.NewPoint(76.68, 11.69),
		Confidence: floatPtr(0.9),
	}
	require.NoError(t, sighting.Validate())

	sighting.Confidence = floatPtr(1.5)
	assert.Error(t, sighting.Validate())

	sighting.Confidence = floatPtr(0.9)
	sighting.Species = ""
	assert.Error(t, sighting.Validate())
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, RoleViewer.Valid())
	assert.False(t, Role("guest").Valid())
	assert.True(t, DeviceRetired.Valid())
	assert.False(t, DeviceStatus("lost").Valid())
	assert.True(t, AlertLowBattery.Valid())
	assert.False(t, AlertType("flood").Valid())
	assert.True(t, AlertResolved.Valid())
	assert.False(t, AlertStatus("muted").Valid())
	assert.True(t, SexUnknown.Valid())
	assert.False(t, Sex("n/a").Valid())
}
