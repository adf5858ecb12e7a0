package report

import (
	"bufio"
	"encoding/json"
	"os"
	"testing"
	"time"
)

func TestEventLoggerWritesJSONL(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewEventLogger(dir, LevelDebug)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	logger.LogRead("/data/spotify.csv", "spo-spotify", "usage", 100)
	logger.LogLoad("/data/spotify.csv", "batch-1", 100, 95, 5, 2*time.Second)
	logger.LogSkip("/data/empty.csv", "empty table")

	if err := logger.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	f, err := os.Open(logger.Path())
	if err != nil {
		t.Fatalf("failed to open event log: %v", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Event
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("invalid JSONL line: %v", err)
		}
		events = append(events, e)
	}

	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Event != EventRead || events[0].Rows != 100 {
		t.Errorf("unexpected read event: %+v", events[0])
	}
	if events[1].Event != EventLoad || events[1].Inserted != 95 || events[1].BatchID != "batch-1" {
		t.Errorf("unexpected load event: %+v", events[1])
	}
	if events[2].Event != EventSkip || events[2].Reason != "empty table" {
		t.Errorf("unexpected skip event: %+v", events[2])
	}
	for _, e := range events {
		if e.Timestamp.IsZero() {
			t.Error("event timestamp should be set")
		}
	}
}

func TestEventLoggerMinLevel(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewEventLogger(dir, LevelWarning)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	logger.LogRead("/data/a.csv", "spo-spotify", "usage", 10) // debug, filtered
	logger.LogSkip("/data/b.csv", "empty")                    // warning, kept

	if err := logger.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	data, err := os.ReadFile(logger.Path())
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		t.Fatalf("expected exactly one JSON line, got %q", data)
	}
	if e.Event != EventSkip {
		t.Errorf("expected only the skip event, got %+v", e)
	}
}

func TestNullLogger(t *testing.T) {
	logger := NullLogger()

	// Must be safe to use without a backing file
	logger.LogRead("/x", "p", "usage", 1)
	if err := logger.Log(&Event{Level: LevelError, Event: EventError}); err != nil {
		t.Errorf("null logger Log returned %v", err)
	}
	if logger.Path() != "" {
		t.Errorf("null logger path = %q", logger.Path())
	}
	if err := logger.Close(); err != nil {
		t.Errorf("null logger close returned %v", err)
	}
}
