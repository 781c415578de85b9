package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandWiring(t *testing.T) {
	expected := []string{"serve", "seed", "verify", "seed-verify", "geofence", "version"}

	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, names[name], "missing subcommand %q", name)
	}
}

func TestGeofenceImportRequiresFile(t *testing.T) {
	err := geofenceImportCmd.Args(geofenceImportCmd, []string{})
	assert.Error(t, err)

	err = geofenceImportCmd.Args(geofenceImportCmd, []string{"fences.yaml"})
	assert.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	Version = "1.2.3"
	Commit = "abc1234"
	Date = "2026-08-29"

	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)

	out := buf.String()
	require.Contains(t, out, "wildtrack 1.2.3")
	assert.Contains(t, out, "abc1234")
}

func TestGlobalFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("quiet"))
}
