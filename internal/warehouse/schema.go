package warehouse

import (
	"database/sql"

	"github.com/franz/royaltyflow/internal/platform"
)

// Schema v1 - star schema: dimension tables around one append-only fact table
const schemaV1 = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
  version INTEGER PRIMARY KEY,
  applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Artist dimension; artist_id is deterministic (platform prefix + name hash)
CREATE TABLE IF NOT EXISTS dim_artists (
  artist_id TEXT PRIMARY KEY,
  artist_name TEXT NOT NULL,
  artist_name_normalized TEXT,
  source_platform TEXT,
  is_auto_generated INTEGER DEFAULT 0,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_artists_name ON dim_artists(artist_name_normalized);

-- Track dimension keyed by ISRC (or synthesized pseudo-ISRC)
CREATE TABLE IF NOT EXISTS dim_tracks (
  isrc TEXT PRIMARY KEY,
  track_name TEXT,
  artist_id TEXT REFERENCES dim_artists(artist_id),
  album_name TEXT,
  label TEXT,
  duration_seconds INTEGER,
  genre TEXT,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_tracks_artist ON dim_tracks(artist_id);

-- Platform dimension, seeded from the static registry
CREATE TABLE IF NOT EXISTS dim_platforms (
  platform_id TEXT PRIMARY KEY,
  platform_name TEXT NOT NULL,
  platform_category TEXT,
  metric_type TEXT,
  is_active INTEGER DEFAULT 1
);

-- Country dimension, seeded with the common markets
CREATE TABLE IF NOT EXISTS dim_countries (
  country_code TEXT PRIMARY KEY,
  country_name TEXT,
  region TEXT,
  continent TEXT
);

-- Date dimension; date_id is the YYYYMMDD integer key
CREATE TABLE IF NOT EXISTS dim_dates (
  date_id INTEGER PRIMARY KEY,
  full_date DATE UNIQUE NOT NULL,
  year INTEGER,
  month INTEGER,
  quarter INTEGER,
  day_of_week INTEGER,
  is_weekend INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_dates_full ON dim_dates(full_date);

-- Append-only usage metrics fact table.
-- No natural key: re-ingesting the same file duplicates rows.
CREATE TABLE IF NOT EXISTS fact_music_metrics (
  metric_id INTEGER PRIMARY KEY AUTOINCREMENT,
  isrc TEXT REFERENCES dim_tracks(isrc),
  platform_id TEXT NOT NULL REFERENCES dim_platforms(platform_id),
  country_code TEXT REFERENCES dim_countries(country_code),
  date_id INTEGER REFERENCES dim_dates(date_id),
  metric_value REAL NOT NULL,
  metric_type TEXT,
  product_type TEXT,
  user_type TEXT,
  source_file TEXT,
  batch_id TEXT,
  environment TEXT DEFAULT 'prod',
  processing_date DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_metrics_platform ON fact_music_metrics(platform_id);
CREATE INDEX IF NOT EXISTS idx_metrics_date ON fact_music_metrics(date_id);
CREATE INDEX IF NOT EXISTS idx_metrics_country ON fact_music_metrics(country_code);
CREATE INDEX IF NOT EXISTS idx_metrics_isrc ON fact_music_metrics(isrc);

-- Read-only lookup of Apple's opaque identifiers to real ISRCs
CREATE TABLE IF NOT EXISTS apple_identifier_mapping (
  apple_identifier TEXT PRIMARY KEY,
  isrc TEXT,
  track_name TEXT,
  artist_name TEXT,
  confidence_score REAL DEFAULT 1.0,
  is_active INTEGER DEFAULT 1
);

-- One row per ingested file per run
CREATE TABLE IF NOT EXISTS processing_history (
  processing_id INTEGER PRIMARY KEY AUTOINCREMENT,
  batch_id TEXT UNIQUE,
  file_path TEXT,
  file_name TEXT,
  platform_id TEXT,
  records_processed INTEGER,
  records_inserted INTEGER,
  records_rejected INTEGER,
  file_size_bytes INTEGER,
  file_checksum TEXT,
  processing_status TEXT,
  error_message TEXT,
  processing_duration_seconds REAL,
  processing_date DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_processing_status ON processing_history(processing_status);
CREATE INDEX IF NOT EXISTS idx_processing_date ON processing_history(processing_date);
`

// seedCountries are the markets that appear in virtually every report
var seedCountries = [][4]string{
	{"US", "United States", "North America", "Americas"},
	{"GB", "United Kingdom", "Europe", "Europe"},
	{"CA", "Canada", "North America", "Americas"},
	{"AU", "Australia", "Oceania", "Oceania"},
	{"DE", "Germany", "Europe", "Europe"},
	{"FR", "France", "Europe", "Europe"},
	{"JP", "Japan", "Asia", "Asia"},
	{"BR", "Brazil", "South America", "Americas"},
	{"MX", "Mexico", "North America", "Americas"},
	{"IN", "India", "Asia", "Asia"},
	{"KR", "South Korea", "Asia", "Asia"},
	{"ES", "Spain", "Europe", "Europe"},
	{"IT", "Italy", "Europe", "Europe"},
	{"NL", "Netherlands", "Europe", "Europe"},
	{"SE", "Sweden", "Europe", "Europe"},
	{"NO", "Norway", "Europe", "Europe"},
	{"DK", "Denmark", "Europe", "Europe"},
	{"FI", "Finland", "Europe", "Europe"},
	{"CH", "Switzerland", "Europe", "Europe"},
	{"AT", "Austria", "Europe", "Europe"},
	{"XX", "Unknown", "", ""},
}

// seedDimensions populates dim_platforms and dim_countries with the static
// reference rows the fact table references
func seedDimensions(tx *sql.Tx) error {
	for _, p := range platform.All() {
		_, err := tx.Exec(`
			INSERT OR IGNORE INTO dim_platforms
			(platform_id, platform_name, platform_category, metric_type)
			VALUES (?, ?, ?, ?)
		`, p.ID, p.Name, p.Category, p.DefaultMetric)
		if err != nil {
			return err
		}
	}

	for _, c := range seedCountries {
		_, err := tx.Exec(`
			INSERT OR IGNORE INTO dim_countries
			(country_code, country_name, region, continent)
			VALUES (?, ?, ?, ?)
		`, c[0], c[1], c[2], c[3])
		if err != nil {
			return err
		}
	}

	return nil
}
