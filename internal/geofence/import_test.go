package geofence

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildtrack/wildtrack/pkg/errors"
	"github.com/wildtrack/wildtrack/pkg/geo"
	"github.com/wildtrack/wildtrack/pkg/models"
)

type fakeStore struct {
	fences []models.Geofence
	err    error
}

func (f *fakeStore) UpsertGeofence(_ context.Context, g models.Geofence) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.fences = append(f.fences, g)
	return fmt.Sprintf("fence-%d", len(f.fences)), nil
}

const validYAML = `
geofences:
  - name: Bandipur Zone A
    description: Core tiger habitat
    created_by: ranger@example.org
    polygon:
      - [76.62, 11.64]
      - [76.72, 11.64]
      - [76.72, 11.72]
      - [76.62, 11.72]
      - [76.62, 11.64]
  - name: Buffer Zone B
    active: false
    polygon:
      - [76.50, 11.50]
      - [76.60, 11.50]
      - [76.60, 11.60]
`

func TestParse(t *testing.T) {
	fences, err := Parse([]byte(validYAML))
	require.NoError(t, err)
	require.Len(t, fences, 2)

	assert.Equal(t, "Bandipur Zone A", fences[0].Name)
	assert.True(t, fences[0].Active, "active should default to true")
	assert.Equal(t, "ranger@example.org", fences[0].CreatedBy)
	assert.False(t, fences[0].CreatedAt.IsZero())

	assert.False(t, fences[1].Active)
}

func TestParseClosesOpenRing(t *testing.T) {
	fences, err := Parse([]byte(validYAML))
	require.NoError(t, err)

	ring := fences[1].Geometry.Coordinates[0]
	require.Len(t, ring, 4, "open ring should gain a closing vertex")
	assert.Equal(t, ring[0], ring[len(ring)-1])
	require.NoError(t, fences[1].Geometry.Validate())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "geofences: ["},
		{"empty file", "geofences: []"},
		{"missing name", `
geofences:
  - polygon:
      - [76.62, 11.64]
      - [76.72, 11.64]
      - [76.72, 11.72]
`},
		{"too few vertices", `
geofences:
  - name: Degenerate
    polygon:
      - [76.62, 11.64]
      - [76.72, 11.64]
`},
		{"longitude out of range", `
geofences:
  - name: Bad Coord
    polygon:
      - [196.62, 11.64]
      - [76.72, 11.64]
      - [76.72, 11.72]
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestImport(t *testing.T) {
	store := &fakeStore{}
	results, err := Import(context.Background(), store, []byte(validYAML))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Bandipur Zone A", results[0].Name)
	assert.NotEmpty(t, results[0].ID)
	assert.Len(t, store.fences, 2)
}

func TestImportStoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.NewStoreError("upsert", "geofences", errors.New("down"))}
	results, err := Import(context.Background(), store, []byte(validYAML))
	assert.Error(t, err)
	assert.Empty(t, results)
}

func TestImportRejectsBeforeWriting(t *testing.T) {
	bad := `
geofences:
  - name: Good Fence
    polygon:
      - [76.62, 11.64]
      - [76.72, 11.64]
      - [76.72, 11.72]
  - name: Bad Fence
    polygon:
      - [76.62, 11.64]
`
	store := &fakeStore{}
	_, err := Import(context.Background(), store, []byte(bad))
	require.Error(t, err)
	assert.Empty(t, store.fences, "invalid file must not write anything")
}

func TestImportFileMissing(t *testing.T) {
	_, err := ImportFile(context.Background(), &fakeStore{}, "/nonexistent/fences.yaml")
	require.Error(t, err)
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestParsedFenceContainment(t *testing.T) {
	fences, err := Parse([]byte(validYAML))
	require.NoError(t, err)

	assert.True(t, fences[0].Contains(geo.NewPoint(76.67, 11.68)))
	assert.False(t, fences[0].Contains(geo.NewPoint(77.50, 12.50)))
}
