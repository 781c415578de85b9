package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wildtrack/wildtrack/internal/events"
	"github.com/wildtrack/wildtrack/internal/sample"
	"github.com/wildtrack/wildtrack/pkg/errors"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample wildlife dataset",
	Long: `Insert a small, fixed sample dataset into MongoDB.

Users, animals, devices, and geofences are upserted by their natural
keys (email, tag ID, device ID, name), so repeated runs do not create
duplicates. Telemetry points, alerts, and sightings are appended on
each run. The resulting document IDs are printed as JSON.`,
	RunE: runSeed,
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify that all collections are populated and readable",
	Long: `Check that every wildtrack collection holds at least one document and
that the most recent telemetry point can be read back. The result is
printed as JSON; the command fails when verification does not pass.`,
	RunE: runVerify,
}

var seedVerifyCmd = &cobra.Command{
	Use:   "seed-verify",
	Short: "Seed the sample dataset, then verify it",
	RunE:  runSeedVerify,
}

func init() {
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(seedVerifyCmd)
}

func newSampler(cmd *cobra.Command) (*sample.Sampler, func(), error) {
	s, cfg, err := connectStore(cmd.Context())
	if err != nil {
		return nil, nil, err
	}

	publisher := events.New(cfg.NATSURL)
	cleanup := func() {
		publisher.Close()
		closeStore(s, cfg)
	}

	return sample.New(s, publisher), cleanup, nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	sampler, cleanup, err := newSampler(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := sampler.Seed(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runVerify(cmd *cobra.Command, _ []string) error {
	sampler, cleanup, err := newSampler(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	result := sampler.Verify(cmd.Context())
	if err := printJSON(result); err != nil {
		return err
	}
	if !result.OK {
		return errors.New("verification failed")
	}
	return nil
}

func runSeedVerify(cmd *cobra.Command, _ []string) error {
	sampler, cleanup, err := newSampler(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := sampler.SeedAndVerify(cmd.Context())
	if err != nil {
		return err
	}
	if err := printJSON(result); err != nil {
		return err
	}
	if !result.Verify.OK {
		return errors.New("verification failed")
	}
	return nil
}
