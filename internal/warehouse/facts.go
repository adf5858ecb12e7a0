package warehouse

import (
	"database/sql"
	"fmt"
	"strings"
)

// factBatchSize bounds how many fact rows go into one multi-row INSERT,
// capping peak statement size for large files
const factBatchSize = 500

// MetricRecord is one fact_music_metrics row
type MetricRecord struct {
	ISRC        string
	PlatformID  string
	CountryCode string
	DateID      int // YYYYMMDD, 0 when the file carried no usable date
	MetricValue float64
	MetricType  string
	ProductType string
	UserType    string
	SourceFile  string
	BatchID     string
	Environment string
}

// InsertMetrics appends fact rows unconditionally in bounded-size batches.
// The returned count is the number of rows submitted, never derived from
// table-count deltas, so it stays correct under concurrent writers.
func InsertMetrics(tx *sql.Tx, records []MetricRecord) (int, error) {
	inserted := 0

	for start := 0; start < len(records); start += factBatchSize {
		end := start + factBatchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		placeholders := make([]string, 0, len(batch))
		args := make([]interface{}, 0, len(batch)*11)
		for _, r := range batch {
			placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				nullable(r.ISRC), r.PlatformID, nullable(r.CountryCode), nullableInt(r.DateID),
				r.MetricValue, nullable(r.MetricType), nullable(r.ProductType), nullable(r.UserType),
				nullable(r.SourceFile), nullable(r.BatchID), nullable(r.Environment))
		}

		query := fmt.Sprintf(`
			INSERT INTO fact_music_metrics
			(isrc, platform_id, country_code, date_id, metric_value, metric_type,
			 product_type, user_type, source_file, batch_id, environment)
			VALUES %s
		`, strings.Join(placeholders, ", "))

		if _, err := tx.Exec(query, args...); err != nil {
			return inserted, fmt.Errorf("failed to insert metric batch: %w", err)
		}
		inserted += len(batch)
	}

	return inserted, nil
}

// FactCount returns the total number of fact rows
func (s *Store) FactCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM fact_music_metrics").Scan(&count)
	return count, err
}
