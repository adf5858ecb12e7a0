package warehouse

import (
	"fmt"
	"time"
)

// Processing statuses recorded in processing_history
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// HistoryRecord is one processing_history row
type HistoryRecord struct {
	BatchID          string
	FilePath         string
	FileName         string
	PlatformID       string
	RecordsProcessed int
	RecordsInserted  int
	RecordsRejected  int
	FileSizeBytes    int64
	FileChecksum     string
	Status           string
	ErrorMessage     string
	Duration         time.Duration
	ProcessedAt      time.Time
}

// InsertHistory records the outcome of processing one file
func (s *Store) InsertHistory(h *HistoryRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO processing_history
		(batch_id, file_path, file_name, platform_id, records_processed,
		 records_inserted, records_rejected, file_size_bytes, file_checksum,
		 processing_status, error_message, processing_duration_seconds)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, h.BatchID, h.FilePath, h.FileName, h.PlatformID, h.RecordsProcessed,
		h.RecordsInserted, h.RecordsRejected, h.FileSizeBytes, h.FileChecksum,
		h.Status, nullable(h.ErrorMessage), h.Duration.Seconds())
	if err != nil {
		return fmt.Errorf("failed to insert processing history: %w", err)
	}

	return nil
}

// RecentHistory returns the most recent processing_history rows
func (s *Store) RecentHistory(limit int) ([]*HistoryRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT batch_id, COALESCE(file_path, ''), COALESCE(file_name, ''),
		       COALESCE(platform_id, ''), COALESCE(records_processed, 0),
		       COALESCE(records_inserted, 0), COALESCE(records_rejected, 0),
		       COALESCE(file_size_bytes, 0), COALESCE(file_checksum, ''),
		       COALESCE(processing_status, ''), COALESCE(error_message, ''),
		       COALESCE(processing_duration_seconds, 0), processing_date
		FROM processing_history
		ORDER BY processing_date DESC, processing_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query processing history: %w", err)
	}
	defer rows.Close()

	var history []*HistoryRecord
	for rows.Next() {
		h := &HistoryRecord{}
		var durationSec float64
		if err := rows.Scan(&h.BatchID, &h.FilePath, &h.FileName, &h.PlatformID,
			&h.RecordsProcessed, &h.RecordsInserted, &h.RecordsRejected,
			&h.FileSizeBytes, &h.FileChecksum, &h.Status, &h.ErrorMessage,
			&durationSec, &h.ProcessedAt); err != nil {
			return nil, fmt.Errorf("failed to scan processing history: %w", err)
		}
		h.Duration = time.Duration(durationSec * float64(time.Second))
		history = append(history, h)
	}

	return history, rows.Err()
}
