package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/franz/royaltyflow/internal/catalog"
	"github.com/franz/royaltyflow/internal/schema"
	"github.com/franz/royaltyflow/internal/sniff"
	"github.com/franz/royaltyflow/internal/util"
	"github.com/franz/royaltyflow/internal/validate"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Inspect a report file without loading it",
	Long: `Parse one report file and show what ingestion would see: detected
platform and encoding, report kind, date window, schema mapping, structure
checks, and data quality assessment. Nothing is written to the warehouse.

Use this to debug a new platform's export format before ingesting it.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().Int("rows", 5, "number of sample rows to print")
}

func runInspect(cmd *cobra.Command, args []string) error {
	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))

	path := args[0]
	sampleRows, _ := cmd.Flags().GetInt("rows")

	sf, err := catalog.Analyze(path)
	if err != nil {
		return fmt.Errorf("failed to analyze file: %w", err)
	}

	util.InfoLog("=== File Identity ===")
	util.InfoLog("Name: %s", sf.Name)
	util.InfoLog("Size: %s", humanize.Bytes(uint64(sf.SizeBytes)))
	util.InfoLog("Checksum: %s", sf.Checksum)
	util.InfoLog("Platform: %s", sf.PlatformID)
	util.InfoLog("Kind: %s", sf.Kind)
	if sf.DateWindow != "" {
		util.InfoLog("Date window: %s", sf.DateWindow)
	}
	if sf.Encoding != "" {
		util.InfoLog("Encoding: %s", sf.Encoding)
	}

	table, err := sniff.Read(path)
	if err != nil {
		return fmt.Errorf("failed to parse file: %w", err)
	}

	util.InfoLog("")
	util.InfoLog("=== Parsed Table ===")
	util.InfoLog("Columns (%d): %s", table.NumColumns(), strings.Join(table.Columns, ", "))
	util.InfoLog("Rows: %d", table.NumRows())

	structure := validate.CheckStructure(table)
	for _, issue := range structure.Issues {
		util.ErrorLog("Structure: %s", issue)
	}
	for _, warning := range structure.Warnings {
		util.WarnLog("Structure: %s", warning)
	}

	util.InfoLog("")
	util.InfoLog("=== Schema Mapping ===")
	mapping := schema.Map(table)
	for _, role := range schema.Roles {
		match, ok := mapping.Lookup(role)
		if !ok {
			util.InfoLog("  %-12s -> (not found)", role)
			continue
		}
		util.InfoLog("  %-12s -> %s", role, match.Column)
	}
	for _, ambiguous := range mapping.Ambiguities() {
		util.WarnLog("Ambiguous mapping for %s: candidates %s",
			ambiguous.Role, strings.Join(ambiguous.Candidates, ", "))
	}

	quality := validate.AssessQuality(table)
	util.InfoLog("")
	util.InfoLog("=== Data Quality ===")
	util.InfoLog("Score: %.0f/100", quality.Score)
	for _, issue := range quality.Issues {
		util.ErrorLog("  %s", issue)
	}
	for _, warning := range quality.Warnings {
		util.WarnLog("  %s", warning)
	}

	if sampleRows > 0 && table.NumRows() > 0 {
		if sampleRows > table.NumRows() {
			sampleRows = table.NumRows()
		}
		util.InfoLog("")
		util.InfoLog("=== Sample Rows ===")
		for row := 0; row < sampleRows; row++ {
			fmt.Printf("  %v\n", table.Rows[row])
		}
	}

	return nil
}
