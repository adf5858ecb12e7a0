package validate

import (
	"fmt"
	"strings"

	"github.com/franz/royaltyflow/internal/schema"
	"github.com/franz/royaltyflow/internal/sniff"
)

// QualityReport is the dataset-level quality assessment for one file
type QualityReport struct {
	TotalRows        int
	TotalColumns     int
	MissingDataPct   float64
	DuplicateRows    int
	InvalidISRCs     int
	InvalidCountries int
	NegativeValues   int
	Score            float64
	Issues           []string
	Warnings         []string
}

// Deduction caps per category. The score can lose at most this much to any
// single class of problem, so one bad column cannot zero out a file.
const (
	maxMissingDeduction   = 20.0
	maxDuplicateDeduction = 10.0
	maxISRCDeduction      = 15.0
	maxCountryDeduction   = 10.0
	negativeDeduction     = 5.0
	missingIssueThreshold = 10.0
	missingWarnThreshold  = 50.0
)

// AssessQuality scores a parsed table from 100 down, deducting per problem
// category with caps, and collects categorized issue and warning strings.
func AssessQuality(table *sniff.Table) *QualityReport {
	if table == nil || table.IsEmpty() {
		return &QualityReport{
			Score:  0,
			Issues: []string{"Dataset is empty"},
		}
	}

	report := &QualityReport{
		TotalRows:    table.NumRows(),
		TotalColumns: table.NumColumns(),
	}

	totalCells := report.TotalRows * report.TotalColumns
	missing := 0
	seen := make(map[string]bool, report.TotalRows)
	for _, row := range table.Rows {
		for _, cell := range row {
			if cell == "" {
				missing++
			}
		}
		key := strings.Join(row, "\x1f")
		if seen[key] {
			report.DuplicateRows++
		}
		seen[key] = true
	}
	report.MissingDataPct = float64(missing) / float64(totalCells) * 100

	if m := schema.ResolveAll(table, schema.RoleISRC); m.Outcome != schema.NotFound {
		for row := range table.Rows {
			raw, _ := table.Cell(row, m.Index)
			if !IsValidISRC(raw) {
				report.InvalidISRCs++
			}
		}
	}

	if m := schema.ResolveAll(table, schema.RoleCountry); m.Outcome != schema.NotFound {
		for row := range table.Rows {
			raw, _ := table.Cell(row, m.Index)
			if !IsValidCountry(raw) {
				report.InvalidCountries++
			}
		}
	}

	if m := schema.ResolveAll(table, schema.RoleValue); m.Outcome != schema.NotFound {
		for row := range table.Rows {
			if raw, ok := table.Cell(row, m.Index); ok && IsNegativeNumeric(raw) {
				report.NegativeValues++
			}
		}
	}

	report.score()
	return report
}

func (r *QualityReport) score() {
	score := 100.0
	rows := float64(r.TotalRows)

	if r.MissingDataPct > missingIssueThreshold {
		score -= min(maxMissingDeduction, r.MissingDataPct)
		r.Issues = append(r.Issues, fmt.Sprintf("High missing data: %.1f%%", r.MissingDataPct))
	}
	if r.MissingDataPct > missingWarnThreshold {
		r.Warnings = append(r.Warnings, fmt.Sprintf("High missing data percentage: %.1f%%", r.MissingDataPct))
	}

	if r.DuplicateRows > 0 {
		dupPct := float64(r.DuplicateRows) / rows * 100
		score -= min(maxDuplicateDeduction, dupPct)
		r.Warnings = append(r.Warnings, fmt.Sprintf("Duplicate rows: %d", r.DuplicateRows))
	}

	if r.InvalidISRCs > 0 {
		invalidPct := float64(r.InvalidISRCs) / rows * 100
		score -= min(maxISRCDeduction, invalidPct)
		r.Issues = append(r.Issues, fmt.Sprintf("Invalid ISRCs: %d", r.InvalidISRCs))
	}

	if r.InvalidCountries > 0 {
		invalidPct := float64(r.InvalidCountries) / rows * 100
		score -= min(maxCountryDeduction, invalidPct)
		r.Warnings = append(r.Warnings, fmt.Sprintf("Invalid countries: %d", r.InvalidCountries))
	}

	if r.NegativeValues > 0 {
		score -= negativeDeduction
		r.Warnings = append(r.Warnings, fmt.Sprintf("Negative values: %d", r.NegativeValues))
	}

	r.Score = max(0, score)
}
