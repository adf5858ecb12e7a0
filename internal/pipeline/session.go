// Package pipeline orchestrates ingestion: discovery, sniffing, cleaning,
// platform transforms, and loading, with per-file failure isolation.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/franz/royaltyflow/internal/catalog"
	"github.com/franz/royaltyflow/internal/report"
	"github.com/franz/royaltyflow/internal/sniff"
	"github.com/franz/royaltyflow/internal/util"
	"github.com/franz/royaltyflow/internal/validate"
	"github.com/franz/royaltyflow/internal/warehouse"
)

// Session runs the ingestion pipeline against one warehouse.
// All dependencies are passed in explicitly; there is no shared global state.
type Session struct {
	store       *warehouse.Store
	logger      *report.EventLogger
	environment string
	retryCfg    *util.RetryConfig
}

// Config holds session configuration
type Config struct {
	Store       *warehouse.Store
	Logger      *report.EventLogger
	Environment string
}

// New creates a new ingestion session
func New(cfg *Config) *Session {
	env := cfg.Environment
	if env == "" {
		env = "prod"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = report.NullLogger()
	}
	return &Session{
		store:       cfg.Store,
		logger:      logger,
		environment: env,
		retryCfg:    util.DefaultRetryConfig(),
	}
}

// FileResult is what one file contributed to the session
type FileResult struct {
	RowsProcessed int
	Inserted      int
	Rejected      int
	ArtistsAdded  int
	TracksAdded   int
}

// ProcessFolder ingests every supported file under root.
// A failure on one file is recorded and processing continues with the next;
// only a cancelled context stops the session early.
func (s *Session) ProcessFolder(ctx context.Context, root string) (*report.SessionSummary, error) {
	util.InfoLog("Processing folder: %s", root)
	started := time.Now()

	files := catalog.Discover(root)

	summary := &report.SessionSummary{
		GeneratedAt:     started,
		SourcePath:      root,
		FilesDiscovered: len(files),
	}

	var bar *progressbar.ProgressBar
	if util.IsTerminal(os.Stdout.Fd()) && !util.IsQuiet() && len(files) > 0 {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("Ingesting"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(200*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}

	for _, path := range files {
		select {
		case <-ctx.Done():
			summary.Duration = time.Since(started)
			return summary, ctx.Err()
		default:
		}

		summary.FilesProcessed++

		result, err := s.ProcessFile(path)
		if err != nil {
			if isSkip(err) {
				util.WarnLog("Skipping %s: %v", path, err)
				s.logger.LogSkip(path, err.Error())
				summary.FilesSkipped++
			} else {
				util.ErrorLog("Failed to process %s: %v", path, err)
				s.logger.LogError(path, err)
			}
			summary.Errors = append(summary.Errors, report.FileError{Path: path, Error: err.Error()})
		} else {
			summary.RecordsInserted += result.Inserted
			summary.RecordsRejected += result.Rejected
			summary.ArtistsAdded += result.ArtistsAdded
			summary.TracksAdded += result.TracksAdded
			if size, _, err := util.FileMetadata(path); err == nil {
				summary.BytesRead += size
			}
		}

		if bar != nil {
			bar.Add(1)
		}
	}

	if bar != nil {
		bar.Finish()
	}

	summary.Duration = time.Since(started)
	return summary, nil
}

// ProcessFile runs the full per-file pipeline: analyze, sniff, clean,
// transform, load. Each file's inserts happen inside one transaction, so a
// mid-file failure leaves no partial dimension or fact state.
func (s *Session) ProcessFile(path string) (*FileResult, error) {
	started := time.Now()

	sf, err := catalog.Analyze(path)
	if err != nil {
		return nil, err
	}

	util.DebugLog("Processing %s (platform=%s kind=%s window=%s)",
		sf.Name, sf.PlatformID, sf.Kind, sf.DateWindow)

	table, err := sniff.Read(path)
	if err != nil {
		status := warehouse.StatusFailed
		if isSkip(err) {
			status = warehouse.StatusSkipped
		}
		s.recordHistory(sf, nil, status, err, time.Since(started))
		return nil, err
	}
	s.logger.LogRead(path, sf.PlatformID, string(sf.Kind), table.NumRows())

	structure := validate.CheckStructure(table)
	for _, warning := range structure.Warnings {
		util.WarnLog("Structure warning in %s: %s", sf.Name, warning)
	}
	if !structure.Valid {
		util.WarnLog("Structure issues in %s: %v", sf.Name, structure.Issues)
	}

	quality := validate.AssessQuality(table)
	if len(quality.Issues) > 0 {
		util.WarnLog("Quality issues in %s (score %.0f): %v", sf.Name, quality.Score, quality.Issues)
	}
	s.logger.Log(&report.Event{
		Level:        report.LevelDebug,
		Event:        report.EventClean,
		SrcPath:      path,
		QualityScore: quality.Score,
		Rows:         table.NumRows(),
	})

	batchID := uuid.New().String()

	var result *FileResult
	load := func() (*FileResult, error) {
		switch sf.Kind {
		case catalog.KindMetadata:
			return s.loadMetadata(table, sf)
		case catalog.KindAppleStreaming:
			return s.loadAppleStreaming(table, sf, batchID)
		default:
			return s.loadUsage(table, sf, batchID)
		}
	}

	// SQLite can reject a writer transiently when another process holds the
	// database; retry with backoff before declaring the file failed.
	result, err = util.RetryWithBackoff(s.retryCfg, load, fmt.Sprintf("load(%s)", sf.Name))
	if err != nil {
		status := warehouse.StatusFailed
		if isSkip(err) {
			status = warehouse.StatusSkipped
		}
		s.recordHistory(sf, nil, status, err, time.Since(started))
		return nil, err
	}
	result.RowsProcessed = table.NumRows()

	duration := time.Since(started)
	s.recordHistoryWithBatch(sf, result, batchID, warehouse.StatusCompleted, nil, duration)
	s.logger.LogLoad(path, batchID, result.RowsProcessed, result.Inserted, result.Rejected, duration)

	util.DebugLog("Loaded %s: %d rows, %d inserted, %d rejected",
		sf.Name, result.RowsProcessed, result.Inserted, result.Rejected)

	return result, nil
}

// isSkip classifies recoverable skip-this-file conditions, as opposed to
// genuine processing failures
func isSkip(err error) bool {
	return errors.Is(err, util.ErrEmptyTable) ||
		errors.Is(err, util.ErrUnreadable) ||
		errors.Is(err, util.ErrNoUsableRows)
}

func (s *Session) recordHistory(sf *catalog.SourceFile, result *FileResult, status string, cause error, duration time.Duration) {
	s.recordHistoryWithBatch(sf, result, uuid.New().String(), status, cause, duration)
}

func (s *Session) recordHistoryWithBatch(sf *catalog.SourceFile, result *FileResult, batchID, status string, cause error, duration time.Duration) {
	h := &warehouse.HistoryRecord{
		BatchID:       batchID,
		FilePath:      sf.Path,
		FileName:      sf.Name,
		PlatformID:    sf.PlatformID,
		FileSizeBytes: sf.SizeBytes,
		FileChecksum:  sf.Checksum,
		Status:        status,
		Duration:      duration,
	}
	if result != nil {
		h.RecordsProcessed = result.RowsProcessed
		h.RecordsInserted = result.Inserted
		h.RecordsRejected = result.Rejected
	}
	if cause != nil {
		h.ErrorMessage = cause.Error()
	}

	if err := s.store.InsertHistory(h); err != nil {
		util.WarnLog("Failed to record processing history for %s: %v", sf.Name, err)
	}
}
