package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/wildtrack/wildtrack/internal/events"
	"github.com/wildtrack/wildtrack/internal/server"
	"github.com/wildtrack/wildtrack/pkg/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the wildtrack REST API server.

The server connects to MongoDB, provisions the geospatial and uniqueness
indexes, and exposes telemetry ingest, proximity queries, geofence
containment, alerts, sightings, and sample data endpoints. When NATS_URL
is configured, geofence breach alerts are also published to the broker.`,
	Example: `  # Start on the configured host and port
  wildtrack serve

  # Start on a custom port without CORS
  wildtrack serve --port 3000 --cors=false`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 0, "server port (overrides SERVER_PORT)")
	serveCmd.Flags().String("host", "", "bind address (overrides SERVER_HOST)")
	serveCmd.Flags().String("prefix", "", "API path prefix (overrides PATH_PREFIX)")
	serveCmd.Flags().Bool("cors", true, "enable CORS")
	serveCmd.Flags().StringSlice("cors-origins", []string{}, "allowed CORS origins (comma-separated, empty allows all)")
	serveCmd.Flags().Duration("read-timeout", 10*time.Second, "HTTP read timeout")
	serveCmd.Flags().Duration("write-timeout", 10*time.Second, "HTTP write timeout")
	serveCmd.Flags().Duration("idle-timeout", 120*time.Second, "HTTP idle timeout")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	s, cfg, err := connectStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(s, cfg)

	publisher := events.New(cfg.NATSURL)
	defer publisher.Close()

	srvCfg := server.DefaultConfig()
	srvCfg.Host = cfg.ServerHost
	srvCfg.Port = cfg.ServerPort
	srvCfg.PathPrefix = cfg.PathPrefix
	srvCfg.Version = Version

	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		srvCfg.Port = port
	}
	if host, _ := cmd.Flags().GetString("host"); host != "" {
		srvCfg.Host = host
	}
	if prefix, _ := cmd.Flags().GetString("prefix"); prefix != "" {
		srvCfg.PathPrefix = prefix
	}
	srvCfg.CORSEnabled, _ = cmd.Flags().GetBool("cors")
	srvCfg.CORSOrigins, _ = cmd.Flags().GetStringSlice("cors-origins")
	srvCfg.ReadTimeout, _ = cmd.Flags().GetDuration("read-timeout")
	srvCfg.WriteTimeout, _ = cmd.Flags().GetDuration("write-timeout")
	srvCfg.IdleTimeout, _ = cmd.Flags().GetDuration("idle-timeout")

	logger := logging.Default()
	srv := server.New(s, publisher, logger, srvCfg, cfg.MongoURI != "")

	return srv.Run(ctx)
}
