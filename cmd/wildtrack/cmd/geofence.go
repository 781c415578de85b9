package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wildtrack/wildtrack/internal/geofence"
)

var geofenceCmd = &cobra.Command{
	Use:   "geofence",
	Short: "Manage geofences",
}

var geofenceImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Import geofences from a YAML file",
	Long: `Import geofence definitions from a YAML file, upserting by name.

Each entry gives a name and the outer polygon ring as [lon, lat] pairs.
Open rings are closed automatically. The whole file is validated before
anything is written.`,
	Example: `  wildtrack geofence import fences.yaml`,
	Args:    cobra.ExactArgs(1),
	RunE:    runGeofenceImport,
}

func init() {
	geofenceCmd.AddCommand(geofenceImportCmd)
	rootCmd.AddCommand(geofenceCmd)
}

func runGeofenceImport(cmd *cobra.Command, args []string) error {
	s, cfg, err := connectStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore(s, cfg)

	results, err := geofence.ImportFile(cmd.Context(), s, args[0])
	if err != nil {
		return err
	}
	return printJSON(map[string]any{
		"imported":  results,
		"geofences": len(results),
	})
}
