// Package geo provides GeoJSON types and geometry helpers for the wildtrack
// system. Points and polygons are stored in MongoDB as GeoJSON documents so
// they can be served by 2dsphere indexes; containment math for local geofence
// evaluation is delegated to the orb library.
package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/wildtrack/wildtrack/pkg/errors"
)

// GeoJSON geometry type names.
const (
	TypePoint   = "Point"
	TypePolygon = "Polygon"
)

// Point is a GeoJSON point. Coordinates are [longitude, latitude].
type Point struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// Polygon is a GeoJSON polygon. The first ring is the exterior boundary;
// subsequent rings are holes. Each ring must be closed.
type Polygon struct {
	Type        string        `bson:"type" json:"type"`
	Coordinates [][][]float64 `bson:"coordinates" json:"coordinates"`
}

// NewPoint creates a GeoJSON point from a longitude/latitude pair.
func NewPoint(lon, lat float64) Point {
	return Point{
		Type:        TypePoint,
		Coordinates: []float64{lon, lat},
	}
}

// NewPolygon creates a GeoJSON polygon from rings of [lon, lat] positions.
func NewPolygon(rings [][][]float64) Polygon {
	return Polygon{
		Type:        TypePolygon,
		Coordinates: rings,
	}
}

// Lon returns the point's longitude.
func (p Point) Lon() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[0]
}

// Lat returns the point's latitude.
func (p Point) Lat() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[1]
}

// Validate checks that the point is a well-formed GeoJSON point with
// in-range coordinates.
func (p Point) Validate() error {
	if p.Type != TypePoint {
		return errors.NewValidationError("type", p.Type, "geometry type must be Point")
	}
	if len(p.Coordinates) != 2 {
		return errors.NewValidationError("coordinates", p.Coordinates, "point requires exactly [lon, lat]")
	}
	return validatePosition(p.Coordinates[0], p.Coordinates[1])
}

// Validate checks that the polygon is a well-formed GeoJSON polygon: at
// least one ring, each ring closed with at least four positions, all
// coordinates in range.
func (p Polygon) Validate() error {
	if p.Type != TypePolygon {
		return errors.NewValidationError("type", p.Type, "geometry type must be Polygon")
	}
	if len(p.Coordinates) == 0 {
		return errors.NewValidationError("coordinates", nil, "polygon requires at least one ring")
	}
	for _, ring := range p.Coordinates {
		if len(ring) < 4 {
			return errors.NewValidationError("coordinates", nil, "polygon ring requires at least four positions")
		}
		first, last := ring[0], ring[len(ring)-1]
		if len(first) != 2 || len(last) != 2 {
			return errors.NewValidationError("coordinates", nil, "polygon positions must be [lon, lat]")
		}
		if first[0] != last[0] || first[1] != last[1] {
			return errors.NewValidationError("coordinates", nil, "polygon ring must be closed")
		}
		for _, pos := range ring {
			if len(pos) != 2 {
				return errors.NewValidationError("coordinates", pos, "polygon positions must be [lon, lat]")
			}
			if err := validatePosition(pos[0], pos[1]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Orb converts the point to an orb.Point.
func (p Point) Orb() orb.Point {
	return orb.Point{p.Lon(), p.Lat()}
}

// Orb converts the polygon to an orb.Polygon.
func (p Polygon) Orb() orb.Polygon {
	polygon := make(orb.Polygon, 0, len(p.Coordinates))
	for _, ring := range p.Coordinates {
		r := make(orb.Ring, 0, len(ring))
		for _, pos := range ring {
			if len(pos) < 2 {
				continue
			}
			r = append(r, orb.Point{pos[0], pos[1]})
		}
		polygon = append(polygon, r)
	}
	return polygon
}

// Contains reports whether the polygon contains the given point.
func Contains(polygon Polygon, point Point) bool {
	return planar.PolygonContains(polygon.Orb(), point.Orb())
}

func validatePosition(lon, lat float64) error {
	if lon < -180 || lon > 180 {
		return errors.NewValidationError("longitude", lon, "longitude must be between -180 and 180")
	}
	if lat < -90 || lat > 90 {
		return errors.NewValidationError("latitude", lat, "latitude must be between -90 and 90")
	}
	return nil
}
