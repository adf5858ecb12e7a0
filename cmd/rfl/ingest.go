package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/franz/royaltyflow/internal/pipeline"
	"github.com/franz/royaltyflow/internal/report"
	"github.com/franz/royaltyflow/internal/util"
	"github.com/franz/royaltyflow/internal/warehouse"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest usage reports from a source directory",
	Long: `Ingest every supported report file under the source directory.

For each file this command:
1. Analyzes identity: platform, report kind, date window, checksum
2. Sniffs encoding and delimiter, parses into a normalized table
3. Maps columns to the canonical schema and cleans field values
4. Loads dimension and fact rows into the warehouse

Each file loads inside its own transaction; a failure on one file is
recorded and the session continues with the next.`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringP("source", "s", "", "source directory containing report files")
	viper.BindPFlag("source", ingestCmd.Flags().Lookup("source"))
}

func runIngest(cmd *cobra.Command, args []string) error {
	source := viper.GetString("source")
	if source == "" {
		return fmt.Errorf("source directory is required (use --source/-s or set in config)")
	}

	dbPath := viper.GetString("db")
	verbose := viper.GetBool("verbose")
	quiet := viper.GetBool("quiet")

	util.SetVerbose(verbose)
	util.SetQuiet(quiet)

	if _, err := os.Stat(source); os.IsNotExist(err) {
		return fmt.Errorf("source directory does not exist: %s", source)
	}

	util.InfoLog("Opening warehouse: %s", dbPath)

	store, err := warehouse.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open warehouse: %w", err)
	}
	defer store.Close()

	logLevel := report.LevelInfo
	if quiet {
		logLevel = report.LevelWarning
	} else if verbose {
		logLevel = report.LevelDebug
	}

	logger, err := report.NewEventLogger("artifacts", logLevel)
	if err != nil {
		util.WarnLog("Failed to create event logger: %v", err)
		logger = report.NullLogger()
	}
	defer logger.Close()

	if logger.Path() != "" {
		util.InfoLog("Event log: %s", logger.Path())
	}

	// Ctrl-C finishes the current file, then stops
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := pipeline.New(&pipeline.Config{
		Store:       store,
		Logger:      logger,
		Environment: viper.GetString("env"),
	})

	summary, err := session.ProcessFolder(ctx, source)
	if err != nil {
		if ctx.Err() != nil {
			util.WarnLog("Interrupted after %d files", summary.FilesProcessed)
		} else {
			return fmt.Errorf("ingestion failed: %w", err)
		}
	}

	util.InfoLog("")
	summary.Print()

	artists, _ := store.ArtistCount()
	tracks, _ := store.TrackCount()
	facts, _ := store.FactCount()

	util.InfoLog("")
	util.InfoLog("Warehouse totals:")
	util.InfoLog("  Artists: %d", artists)
	util.InfoLog("  Tracks: %d", tracks)
	util.InfoLog("  Fact records: %d", facts)
	util.InfoLog("")
	util.InfoLog("Review recent runs with: rfl history")

	return nil
}
