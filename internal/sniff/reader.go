// Package sniff turns heterogeneous third-party report files into a
// normalized tabular structure. Nothing here assumes a schema: delimiter,
// encoding, and sheet layout are all detected per file.
package sniff

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/franz/royaltyflow/internal/util"
)

// delimiterCandidates are tried in fixed order; the first delimiter that
// produces more than one column and at least one row wins.
var delimiterCandidates = []rune{',', '\t', ';', '|', '~'}

// spreadsheetExts are extensions handled by the spreadsheet branch
var spreadsheetExts = map[string]bool{
	".xlsx": true,
	".xls":  true,
}

// Read parses a source file into a normalized Table.
// Unreadable or empty-after-cleaning files return ErrUnreadable or
// ErrEmptyTable; both are recoverable and mean "skip this file".
func Read(path string) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var (
		table *Table
		err   error
	)
	if spreadsheetExts[ext] {
		table, err = readSpreadsheet(path)
	} else {
		table, err = readDelimited(path)
	}
	if err != nil {
		return nil, err
	}

	if table.IsEmpty() {
		return nil, fmt.Errorf("%s: %w", path, util.ErrEmptyTable)
	}
	return table, nil
}

// readDelimited parses CSV/TSV/TXT files with encoding and delimiter detection
func readDelimited(path string) (*Table, error) {
	enc := DetectEncoding(path)

	for _, sep := range delimiterCandidates {
		table, err := parseDelimited(path, enc, sep)
		if err != nil {
			util.DebugLog("Delimiter %q failed for %s: %v", sep, path, err)
			continue
		}
		if table.NumColumns() > 1 && table.NumRows() > 0 {
			return table, nil
		}
	}

	// Last resort: a plain comma parse, accepting single-column output
	table, err := parseDelimited(path, enc, ',')
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, util.ErrUnreadable, err)
	}
	return table, nil
}

func parseDelimited(path, encoding string, sep rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(decodeReader(f, encoding))
	reader.Comma = sep
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	table := &Table{
		Columns: records[0],
		Rows:    records[1:],
	}
	table.Normalize()
	return table, nil
}

// readSpreadsheet parses the first sheet of a workbook; if that sheet is
// empty, all sheets are parsed and concatenated in file order.
func readSpreadsheet(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, util.ErrUnreadable, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{}, nil
	}

	table, err := readSheet(f, sheets[0])
	if err != nil {
		return nil, err
	}
	if !table.IsEmpty() {
		return table, nil
	}

	combined := &Table{}
	for _, sheet := range sheets {
		st, err := readSheet(f, sheet)
		if err != nil {
			util.DebugLog("Skipping unreadable sheet %q in %s: %v", sheet, path, err)
			continue
		}
		combined.Merge(st)
	}
	return combined, nil
}

func readSheet(f *excelize.File, sheet string) (*Table, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w: %v", sheet, util.ErrUnreadable, err)
	}
	if len(rows) == 0 {
		return &Table{}, nil
	}

	table := &Table{
		Columns: rows[0],
		Rows:    rows[1:],
	}
	table.Normalize()
	return table, nil
}
