package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EventType represents the type of event
type EventType string

const (
	EventDiscover  EventType = "discover"
	EventRead      EventType = "read"
	EventClean     EventType = "clean"
	EventTransform EventType = "transform"
	EventLoad      EventType = "load"
	EventSkip      EventType = "skip"
	EventError     EventType = "error"
)

// EventLevel represents the severity level
type EventLevel string

const (
	LevelDebug   EventLevel = "debug"
	LevelInfo    EventLevel = "info"
	LevelWarning EventLevel = "warning"
	LevelError   EventLevel = "error"
)

// levelPriority maps event levels to numeric priorities for comparison
var levelPriority = map[EventLevel]int{
	LevelDebug:   0,
	LevelInfo:    1,
	LevelWarning: 2,
	LevelError:   3,
}

// Event represents a single event in the ingestion pipeline
type Event struct {
	Timestamp    time.Time  `json:"ts"`
	Level        EventLevel `json:"level"`
	Event        EventType  `json:"event"`
	SrcPath      string     `json:"src_path,omitempty"`
	Checksum     string     `json:"checksum,omitempty"`
	Platform     string     `json:"platform,omitempty"`
	Kind         string     `json:"kind,omitempty"`
	BatchID      string     `json:"batch_id,omitempty"`
	Rows         int        `json:"rows,omitempty"`
	Inserted     int        `json:"inserted,omitempty"`
	Rejected     int        `json:"rejected,omitempty"`
	QualityScore float64    `json:"quality_score,omitempty"`
	Reason       string     `json:"reason,omitempty"`
	Duration     int64      `json:"duration_ms,omitempty"`
	Error        string     `json:"error,omitempty"`
}

// EventLogger writes events to a JSONL file
type EventLogger struct {
	file     *os.File
	encoder  *json.Encoder
	mu       sync.Mutex
	path     string
	minLevel EventLevel
}

// NewEventLogger creates a new event logger with a minimum log level
func NewEventLogger(outputDir string, minLevel EventLevel) (*EventLogger, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	path := filepath.Join(outputDir, fmt.Sprintf("ingest-%s.jsonl", timestamp))

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create event log: %w", err)
	}

	return &EventLogger{
		file:     file,
		encoder:  json.NewEncoder(file),
		path:     path,
		minLevel: minLevel,
	}, nil
}

// NullLogger returns a logger that discards everything
func NullLogger() *EventLogger {
	return &EventLogger{}
}

// Path returns the event log file path, or "" for a null logger
func (l *EventLogger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Log writes an event to the JSONL file
func (l *EventLogger) Log(event *Event) error {
	if l == nil || l.file == nil {
		return nil
	}

	if levelPriority[event.Level] < levelPriority[l.minLevel] {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if err := l.encoder.Encode(event); err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	return nil
}

// Close closes the event log file
func (l *EventLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// LogRead records a successfully parsed file
func (l *EventLogger) LogRead(path, platform, kind string, rows int) {
	l.Log(&Event{
		Level:    LevelDebug,
		Event:    EventRead,
		SrcPath:  path,
		Platform: platform,
		Kind:     kind,
		Rows:     rows,
	})
}

// LogLoad records a completed load for one file
func (l *EventLogger) LogLoad(path, batchID string, rows, inserted, rejected int, duration time.Duration) {
	l.Log(&Event{
		Level:    LevelInfo,
		Event:    EventLoad,
		SrcPath:  path,
		BatchID:  batchID,
		Rows:     rows,
		Inserted: inserted,
		Rejected: rejected,
		Duration: duration.Milliseconds(),
	})
}

// LogSkip records a file skipped for a recoverable reason
func (l *EventLogger) LogSkip(path, reason string) {
	l.Log(&Event{
		Level:   LevelWarning,
		Event:   EventSkip,
		SrcPath: path,
		Reason:  reason,
	})
}

// LogError records a per-file processing failure
func (l *EventLogger) LogError(path string, err error) {
	l.Log(&Event{
		Level:   LevelError,
		Event:   EventError,
		SrcPath: path,
		Error:   err.Error(),
	})
}
