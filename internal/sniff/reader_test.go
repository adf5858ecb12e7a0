package sniff

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/franz/royaltyflow/internal/util"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestReadCommaDelimited(t *testing.T) {
	path := writeTestFile(t, "report.csv",
		"isrc,artist,streams\nUSRC17607839,Radiohead,100\nGBUM71507078,Adele,200\n")

	table, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if table.NumColumns() != 3 || table.NumRows() != 2 {
		t.Errorf("got %d columns, %d rows", table.NumColumns(), table.NumRows())
	}
	if table.Rows[1][1] != "Adele" {
		t.Errorf("cell = %q", table.Rows[1][1])
	}
}

func TestReadDelimiterDetection(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"tab", "isrc\tartist\tstreams\nUSRC17607839\tRadiohead\t100\n"},
		{"semicolon", "isrc;artist;streams\nUSRC17607839;Radiohead;100\n"},
		{"pipe", "isrc|artist|streams\nUSRC17607839|Radiohead|100\n"},
		{"tilde", "isrc~artist~streams\nUSRC17607839~Radiohead~100\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestFile(t, "report.txt", tt.content)
			table, err := Read(path)
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if table.NumColumns() != 3 {
				t.Errorf("expected 3 columns, got %v", table.Columns)
			}
			if table.Rows[0][2] != "100" {
				t.Errorf("streams cell = %q", table.Rows[0][2])
			}
		})
	}
}

func TestReadEmptyFile(t *testing.T) {
	path := writeTestFile(t, "empty.csv", "")

	_, err := Read(path)
	if !errors.Is(err, util.ErrEmptyTable) {
		t.Errorf("expected ErrEmptyTable, got %v", err)
	}
}

func TestReadHeaderOnly(t *testing.T) {
	path := writeTestFile(t, "headers.csv", "isrc,artist,streams\n")

	_, err := Read(path)
	if !errors.Is(err, util.ErrEmptyTable) {
		t.Errorf("expected ErrEmptyTable for header-only file, got %v", err)
	}
}

func TestReadNATokensBecomeAbsent(t *testing.T) {
	// One real artist value keeps the column from being dropped as empty
	path := writeTestFile(t, "na.csv",
		"isrc,artist,streams\nUSRC17607839,NaN,100\nGBUM71507078,Adele,200\nDEA450000123,null,300\n")

	table, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if table.NumColumns() != 3 {
		t.Fatalf("expected the artist column to survive, got %v", table.Columns)
	}
	if _, ok := table.Cell(0, 1); ok {
		t.Error("NaN should read as absent")
	}
	if got, ok := table.Cell(1, 1); !ok || got != "Adele" {
		t.Errorf("artist cell = %q, ok=%v", got, ok)
	}
	if _, ok := table.Cell(2, 1); ok {
		t.Error("null should read as absent")
	}
}

func TestReadLatin1Encoded(t *testing.T) {
	// "Café" with the é encoded as a single latin-1 byte
	content := []byte("isrc,artist\nUSRC17607839,Caf\xe9\n")
	path := filepath.Join(t.TempDir(), "latin1.csv")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	table, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got := table.Rows[0][1]; got != "Café" {
		t.Errorf("expected latin-1 decode to Café, got %q", got)
	}
}

func TestReadQuotedFields(t *testing.T) {
	path := writeTestFile(t, "quoted.csv",
		"isrc,track,streams\nUSRC17607839,\"Hello, World\",100\n")

	table, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got := table.Rows[0][1]; got != "Hello, World" {
		t.Errorf("quoted comma field = %q", got)
	}
}

func TestReadCorruptSpreadsheet(t *testing.T) {
	path := writeTestFile(t, "corrupt.xlsx", "not a workbook")

	_, err := Read(path)
	if !errors.Is(err, util.ErrUnreadable) {
		t.Errorf("expected ErrUnreadable, got %v", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.csv"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
