package sniff

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	table := &Table{
		Columns: []string{" isrc ", "artist", "streams "},
		Rows: [][]string{
			{" USRC17607839 ", "Radiohead", " 100 "},
			{"NaN", "null", "N/A"}, // all NA tokens: row dropped
			{"GBUM71507078", "Adele"},
			{"", "", ""},
		},
	}

	table.Normalize()

	if !reflect.DeepEqual(table.Columns, []string{"isrc", "artist", "streams"}) {
		t.Errorf("columns = %v", table.Columns)
	}
	if table.NumRows() != 2 {
		t.Fatalf("expected 2 rows after normalization, got %d", table.NumRows())
	}
	if table.Rows[0][0] != "USRC17607839" || table.Rows[0][2] != "100" {
		t.Errorf("cells not trimmed: %v", table.Rows[0])
	}
	// Ragged row was padded to header width
	if len(table.Rows[1]) != 3 || table.Rows[1][2] != "" {
		t.Errorf("ragged row not padded: %v", table.Rows[1])
	}
}

func TestNormalizeDropsEmptyColumns(t *testing.T) {
	table := &Table{
		Columns: []string{"isrc", "unused", "streams"},
		Rows: [][]string{
			{"USRC17607839", "", "100"},
			{"GBUM71507078", "none", "200"},
		},
	}

	table.Normalize()

	if !reflect.DeepEqual(table.Columns, []string{"isrc", "streams"}) {
		t.Errorf("empty column should be dropped, columns = %v", table.Columns)
	}
	if table.Rows[0][1] != "100" {
		t.Errorf("row cells not realigned: %v", table.Rows[0])
	}
}

func TestNormalizeTruncatesOverlongRows(t *testing.T) {
	table := &Table{
		Columns: []string{"a", "b"},
		Rows:    [][]string{{"1", "2", "3", "4"}},
	}

	table.Normalize()

	if len(table.Rows[0]) != 2 {
		t.Errorf("overlong row not truncated: %v", table.Rows[0])
	}
}

func TestCell(t *testing.T) {
	table := &Table{
		Columns: []string{"a", "b"},
		Rows:    [][]string{{"1", ""}},
	}

	if v, ok := table.Cell(0, 0); !ok || v != "1" {
		t.Errorf("Cell(0,0) = %q, %v", v, ok)
	}
	if _, ok := table.Cell(0, 1); ok {
		t.Error("empty cell should report absent")
	}
	if _, ok := table.Cell(5, 0); ok {
		t.Error("out-of-range row should report absent")
	}
	if _, ok := table.Cell(0, -1); ok {
		t.Error("negative column should report absent")
	}
}

func TestMerge(t *testing.T) {
	base := &Table{
		Columns: []string{"isrc", "streams"},
		Rows:    [][]string{{"USRC17607839", "100"}},
	}
	other := &Table{
		Columns: []string{"streams", "country"},
		Rows:    [][]string{{"200", "US"}},
	}

	base.Merge(other)

	if !reflect.DeepEqual(base.Columns, []string{"isrc", "streams", "country"}) {
		t.Fatalf("merged columns = %v", base.Columns)
	}
	if base.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", base.NumRows())
	}
	// Existing row padded with the new column
	if base.Rows[0][2] != "" {
		t.Errorf("existing row should pad new column: %v", base.Rows[0])
	}
	// New row aligned by column name, missing columns empty
	if !reflect.DeepEqual(base.Rows[1], []string{"", "200", "US"}) {
		t.Errorf("merged row misaligned: %v", base.Rows[1])
	}
}

func TestMergeEmptyOther(t *testing.T) {
	base := &Table{
		Columns: []string{"a"},
		Rows:    [][]string{{"1"}},
	}
	base.Merge(&Table{})
	base.Merge(nil)

	if base.NumRows() != 1 || base.NumColumns() != 1 {
		t.Errorf("merging empty tables should be a no-op: %+v", base)
	}
}
