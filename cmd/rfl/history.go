package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/franz/royaltyflow/internal/util"
	"github.com/franz/royaltyflow/internal/warehouse"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent file processing history",
	Long: `Display recent processing_history rows from the warehouse: which
files were ingested, when, under which batch, and with what outcome.`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "n", 20, "number of history rows to show")
	historyCmd.Flags().Bool("failed", false, "show only failed and skipped files")
}

func runHistory(cmd *cobra.Command, args []string) error {
	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))

	dbPath := viper.GetString("db")
	limit, _ := cmd.Flags().GetInt("limit")
	failedOnly, _ := cmd.Flags().GetBool("failed")

	store, err := warehouse.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open warehouse: %w", err)
	}
	defer store.Close()

	history, err := store.RecentHistory(limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(history) == 0 {
		util.WarnLog("No processing history. Run 'rfl ingest' first.")
		return nil
	}

	util.InfoLog("=== Processing History ===")
	util.InfoLog("Database: %s", dbPath)
	fmt.Println()

	shown := 0
	for _, h := range history {
		if failedOnly && h.Status == warehouse.StatusCompleted {
			continue
		}
		shown++

		switch h.Status {
		case warehouse.StatusCompleted:
			util.SuccessLog("%s [%s]", h.FileName, h.Status)
		case warehouse.StatusSkipped:
			util.WarnLog("%s [%s]", h.FileName, h.Status)
		default:
			util.ErrorLog("%s [%s]", h.FileName, h.Status)
		}

		fmt.Printf("     Batch:    %s\n", h.BatchID)
		fmt.Printf("     Platform: %s\n", h.PlatformID)
		fmt.Printf("     Size:     %s\n", humanize.Bytes(uint64(h.FileSizeBytes)))
		if h.Status == warehouse.StatusCompleted {
			fmt.Printf("     Rows:     %d processed, %d inserted, %d rejected\n",
				h.RecordsProcessed, h.RecordsInserted, h.RecordsRejected)
		}
		if h.ErrorMessage != "" {
			fmt.Printf("     Error:    %s\n", h.ErrorMessage)
		}
		fmt.Printf("     When:     %s (%v)\n",
			h.ProcessedAt.Format(time.RFC3339), h.Duration.Round(time.Millisecond))
		fmt.Println()
	}

	if failedOnly && shown == 0 {
		util.SuccessLog("No failed or skipped files in the last %d runs", len(history))
	}

	return nil
}
