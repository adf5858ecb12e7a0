package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/franz/royaltyflow/internal/sniff"
)

// StructureReport is a cheap sanity check on a parsed file's shape,
// independent of the field-level content rules
type StructureReport struct {
	Valid    bool
	Issues   []string
	Warnings []string
}

// mojibakeRe matches the byte sequences that UTF-8 text shows when it was
// decoded with the wrong single-byte encoding somewhere upstream
var mojibakeRe = regexp.MustCompile(`â€™|â€œ|â€|Ã¡|Ã©`)

// CheckStructure validates basic file structure: enough columns, at least
// one data row, and heuristics for upstream encoding damage.
func CheckStructure(table *sniff.Table) *StructureReport {
	if table == nil || table.IsEmpty() {
		return &StructureReport{
			Valid:  false,
			Issues: []string{"File is empty or unreadable"},
		}
	}

	report := &StructureReport{}

	if table.NumColumns() < 2 {
		report.Issues = append(report.Issues, "File has too few columns")
	}
	if table.NumRows() < 1 {
		report.Issues = append(report.Issues, "File has no data rows")
	}

	for j, col := range table.Columns {
		damaged := false
		for _, row := range table.Rows {
			if j < len(row) && mojibakeRe.MatchString(row[j]) {
				damaged = true
				break
			}
		}
		if damaged {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("Potential encoding issues in column: %s", col))
		}
	}

	if strings.TrimSpace(strings.Join(table.Columns, "")) == "" {
		report.Issues = append(report.Issues, "File has no column headers")
	}

	report.Valid = len(report.Issues) == 0
	return report
}
