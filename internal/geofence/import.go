// Package geofence loads geofence definitions from YAML files and writes
// them to the store, upserting by name.
package geofence

import (
	"context"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/wildtrack/wildtrack/pkg/errors"
	"github.com/wildtrack/wildtrack/pkg/geo"
	"github.com/wildtrack/wildtrack/pkg/models"
)

// Store is the subset of store operations the importer needs.
type Store interface {
	UpsertGeofence(ctx context.Context, g models.Geofence) (string, error)
}

// Definition is a single geofence entry in an import file. The polygon is
// given as the outer ring only, as a list of [lon, lat] pairs. The ring is
// closed automatically when the last vertex differs from the first.
type Definition struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Active      *bool       `yaml:"active"`
	CreatedBy   string      `yaml:"created_by"`
	Polygon     [][]float64 `yaml:"polygon"`
}

// File is the top-level structure of a geofence import file.
type File struct {
	Geofences []Definition `yaml:"geofences"`
}

// Result describes one imported geofence.
type Result struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Parse decodes an import file and converts each definition into a
// validated geofence record. Fences default to active unless the file
// says otherwise.
func Parse(data []byte) ([]models.Geofence, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapValidation("yaml", err)
	}
	if len(file.Geofences) == 0 {
		return nil, errors.NewValidationError("geofences", nil, "file defines no geofences")
	}

	now := time.Now().UTC()
	fences := make([]models.Geofence, 0, len(file.Geofences))
	for _, def := range file.Geofences {
		fence, err := def.toModel(now)
		if err != nil {
			return nil, err
		}
		fences = append(fences, fence)
	}
	return fences, nil
}

func (d Definition) toModel(now time.Time) (models.Geofence, error) {
	ring := make([][]float64, 0, len(d.Polygon)+1)
	ring = append(ring, d.Polygon...)
	if len(ring) >= 3 {
		first, last := ring[0], ring[len(ring)-1]
		if len(first) == 2 && len(last) == 2 && (first[0] != last[0] || first[1] != last[1]) {
			ring = append(ring, []float64{first[0], first[1]})
		}
	}

	active := true
	if d.Active != nil {
		active = *d.Active
	}

	fence := models.Geofence{
		Name:        d.Name,
		Description: d.Description,
		Active:      active,
		Geometry:    geo.NewPolygon([][][]float64{ring}),
		CreatedBy:   d.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := fence.Validate(); err != nil {
		return models.Geofence{}, err
	}
	return fence, nil
}

// ImportFile reads, parses, and upserts all geofences from a YAML file.
func ImportFile(ctx context.Context, s Store, path string) ([]Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("geofence import", "reading "+path, err)
	}
	return Import(ctx, s, data)
}

// Import parses the YAML data and upserts all geofences it defines.
// The import is all-or-nothing at parse time: a single invalid fence
// rejects the whole file before any writes happen.
func Import(ctx context.Context, s Store, data []byte) ([]Result, error) {
	fences, err := Parse(data)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(fences))
	for _, fence := range fences {
		id, err := s.UpsertGeofence(ctx, fence)
		if err != nil {
			return results, err
		}
		results = append(results, Result{ID: id, Name: fence.Name})
	}
	return results, nil
}
