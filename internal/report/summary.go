package report

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/franz/royaltyflow/internal/util"
)

// FileError is one per-file failure surfaced in the session summary
type FileError struct {
	Path  string
	Error string
}

// SessionSummary is the final accounting for one ingestion session
type SessionSummary struct {
	GeneratedAt     time.Time
	Duration        time.Duration
	SourcePath      string
	FilesDiscovered int
	FilesProcessed  int
	FilesSkipped    int
	RecordsInserted int
	RecordsRejected int
	ArtistsAdded    int
	TracksAdded     int
	BytesRead       int64
	Errors          []FileError
}

// SuccessRate is (files processed - errors) / max(1, files processed)
func (s *SessionSummary) SuccessRate() float64 {
	return float64(s.FilesProcessed-len(s.Errors)) / float64(max(1, s.FilesProcessed))
}

// Print writes the session summary through the standard logger
func (s *SessionSummary) Print() {
	util.InfoLog("=== Ingestion Summary ===")
	util.InfoLog("Source: %s", s.SourcePath)
	util.InfoLog("Duration: %v", s.Duration.Round(time.Millisecond))
	util.InfoLog("Files discovered: %d", s.FilesDiscovered)
	util.InfoLog("Files processed: %d (skipped: %d)", s.FilesProcessed, s.FilesSkipped)
	util.InfoLog("Data read: %s", humanize.Bytes(uint64(s.BytesRead)))
	util.InfoLog("Fact records inserted: %d (rejected: %d)", s.RecordsInserted, s.RecordsRejected)
	if s.ArtistsAdded > 0 || s.TracksAdded > 0 {
		util.InfoLog("Dimensions added: %d artists, %d tracks", s.ArtistsAdded, s.TracksAdded)
	}

	if len(s.Errors) > 0 {
		util.WarnLog("Errors: %d", len(s.Errors))
		for _, e := range s.Errors {
			util.WarnLog("  %s: %s", e.Path, e.Error)
		}
	}

	util.SuccessLog("Success rate: %.1f%%", s.SuccessRate()*100)
}
