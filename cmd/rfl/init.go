package main

import (
	"fmt"

	"github.com/franz/royaltyflow/internal/platform"
	"github.com/franz/royaltyflow/internal/util"
	"github.com/franz/royaltyflow/internal/warehouse"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the warehouse database and seed dimensions",
	Long: `Create the warehouse database if it does not exist, apply the star
schema, and seed the platform and country dimensions. Running init against
an existing warehouse is a no-op.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dbPath := viper.GetString("db")
	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))

	store, err := warehouse.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize warehouse: %w", err)
	}
	defer store.Close()

	artists, _ := store.ArtistCount()
	tracks, _ := store.TrackCount()
	facts, _ := store.FactCount()

	util.SuccessLog("Warehouse ready: %s", dbPath)
	util.InfoLog("Seeded platforms: %d", len(platform.All()))
	util.InfoLog("Artists: %d, Tracks: %d, Fact records: %d", artists, tracks, facts)
	util.InfoLog("")
	util.InfoLog("Next step: rfl ingest --source <directory>")

	return nil
}
