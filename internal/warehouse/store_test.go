package warehouse

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenAndMigrate(t *testing.T) {
	store := openTestStore(t)

	version, err := store.getSchemaVersion()
	if err != nil {
		t.Fatalf("failed to get schema version: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("expected schema version %d, got %d", currentSchemaVersion, version)
	}

	tables := []string{
		"dim_artists", "dim_tracks", "dim_platforms", "dim_countries",
		"dim_dates", "fact_music_metrics", "apple_identifier_mapping",
		"processing_history", "schema_version",
	}
	for _, table := range tables {
		var count int
		err := store.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil {
			t.Fatalf("failed to query table %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("expected table %s to exist", table)
		}
	}
}

func TestMigrateSeedsDimensions(t *testing.T) {
	store := openTestStore(t)

	var platforms int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM dim_platforms").Scan(&platforms); err != nil {
		t.Fatalf("failed to count platforms: %v", err)
	}
	if platforms == 0 {
		t.Error("expected platform dimension to be seeded")
	}

	// The unknown-country sentinel must be seeded
	var xx int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM dim_countries WHERE country_code = 'XX'").Scan(&xx); err != nil {
		t.Fatalf("failed to query countries: %v", err)
	}
	if xx != 1 {
		t.Error("expected XX sentinel country to be seeded")
	}
}

func TestGenerateArtistID(t *testing.T) {
	id := GenerateArtistID("Radiohead", "spo-spotify")

	if id != GenerateArtistID("Radiohead", "spo-spotify") {
		t.Error("artist id must be deterministic")
	}
	if len(id) != len("SPO-SPOTIFY_")+12 {
		t.Errorf("unexpected id shape: %q", id)
	}
	if id[:12] != "SPO-SPOTIFY_" {
		t.Errorf("expected uppercased platform prefix, got %q", id)
	}

	if GenerateArtistID("Radiohead", "dzr-deezer") == id {
		t.Error("same artist on another platform must get a different id")
	}
	if GenerateArtistID("radiohead", "spo-spotify") != id {
		t.Error("case variants must map to the same id")
	}
	if GenerateArtistID("  Radiohead  ", "spo-spotify") != id {
		t.Error("spacing variants must map to the same id")
	}
	if GenerateArtistID("", "spo-spotify") != "" {
		t.Error("empty name yields empty id")
	}
	if GenerateArtistID("   ", "spo-spotify") != "" {
		t.Error("whitespace-only name yields empty id")
	}
}

func TestUpsertArtistsIdempotent(t *testing.T) {
	store := openTestStore(t)

	artists := []ArtistRecord{
		{ArtistID: "SPO-SPOTIFY_AAAA0000BBBB", Name: "Radiohead", NameNormalized: "radiohead", SourcePlatform: "spo-spotify"},
		{ArtistID: "SPO-SPOTIFY_CCCC1111DDDD", Name: "Adele", NameNormalized: "adele", SourcePlatform: "spo-spotify"},
	}

	var first, second int
	err := store.Transaction(func(tx *sql.Tx) error {
		var err error
		first, err = UpsertArtists(tx, artists)
		return err
	})
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if first != 2 {
		t.Errorf("expected 2 inserted, got %d", first)
	}

	err = store.Transaction(func(tx *sql.Tx) error {
		var err error
		second, err = UpsertArtists(tx, artists)
		return err
	})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if second != 0 {
		t.Errorf("re-upsert should insert nothing, got %d", second)
	}

	count, err := store.ArtistCount()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 artists, got %d", count)
	}
}

func TestUpsertTracksIdempotent(t *testing.T) {
	store := openTestStore(t)

	tracks := []TrackRecord{
		{ISRC: "USRC17607839", Name: "Creep", ArtistID: "SPO-SPOTIFY_AAAA0000BBBB"},
		{ISRC: "GBUM71507078", Name: "Hello"},
	}

	err := store.Transaction(func(tx *sql.Tx) error {
		if _, err := UpsertTracks(tx, tracks); err != nil {
			return err
		}
		n, err := UpsertTracks(tx, tracks)
		if err != nil {
			return err
		}
		if n != 0 {
			t.Errorf("re-upsert should insert nothing, got %d", n)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	count, _ := store.TrackCount()
	if count != 2 {
		t.Errorf("expected 2 tracks, got %d", count)
	}
}

func TestInsertMetricsAppendOnly(t *testing.T) {
	store := openTestStore(t)

	records := []MetricRecord{
		{ISRC: "USRC17607839", PlatformID: "spo-spotify", CountryCode: "US", MetricValue: 100, MetricType: "streams", BatchID: "batch-1", Environment: "prod"},
		{PlatformID: "spo-spotify", MetricValue: 50, MetricType: "streams", BatchID: "batch-1", Environment: "prod"},
	}

	insert := func() int {
		var n int
		err := store.Transaction(func(tx *sql.Tx) error {
			var err error
			n, err = InsertMetrics(tx, records)
			return err
		})
		if err != nil {
			t.Fatalf("insert failed: %v", err)
		}
		return n
	}

	if n := insert(); n != 2 {
		t.Errorf("expected 2 submitted, got %d", n)
	}

	// Facts have no uniqueness key: re-inserting the same rows duplicates them
	if n := insert(); n != 2 {
		t.Errorf("expected 2 submitted on repeat, got %d", n)
	}

	count, err := store.FactCount()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 4 {
		t.Errorf("fact table is append-only, expected 4 rows, got %d", count)
	}
}

func TestInsertMetricsBatching(t *testing.T) {
	store := openTestStore(t)

	records := make([]MetricRecord, factBatchSize+25)
	for i := range records {
		records[i] = MetricRecord{PlatformID: "spo-spotify", MetricValue: float64(i + 1), MetricType: "streams"}
	}

	var n int
	err := store.Transaction(func(tx *sql.Tx) error {
		var err error
		n, err = InsertMetrics(tx, records)
		return err
	})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if n != len(records) {
		t.Errorf("expected %d submitted, got %d", len(records), n)
	}

	count, _ := store.FactCount()
	if count != len(records) {
		t.Errorf("expected %d rows, got %d", len(records), count)
	}
}

func TestEnsureDate(t *testing.T) {
	store := openTestStore(t)

	day := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC) // a Saturday
	if got := DateID(day); got != 20240316 {
		t.Errorf("DateID = %d, want 20240316", got)
	}

	err := store.Transaction(func(tx *sql.Tx) error {
		if err := EnsureDate(tx, day); err != nil {
			return err
		}
		return EnsureDate(tx, day) // second call is a no-op
	})
	if err != nil {
		t.Fatalf("EnsureDate failed: %v", err)
	}

	var count, isWeekend, quarter int
	err = store.db.QueryRow(
		"SELECT COUNT(*), MAX(is_weekend), MAX(quarter) FROM dim_dates WHERE date_id = 20240316").
		Scan(&count, &isWeekend, &quarter)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one date row, got %d", count)
	}
	if isWeekend != 1 {
		t.Error("2024-03-16 is a Saturday")
	}
	if quarter != 1 {
		t.Errorf("expected Q1, got %d", quarter)
	}
}

func TestAppleMappings(t *testing.T) {
	store := openTestStore(t)

	if err := store.InsertAppleMapping(&AppleMapping{AppleIdentifier: "111", ISRC: "USRC17607839", ConfidenceScore: 0.98}); err != nil {
		t.Fatalf("insert mapping failed: %v", err)
	}
	if err := store.InsertAppleMapping(&AppleMapping{AppleIdentifier: "222", ConfidenceScore: 0.5}); err != nil {
		t.Fatalf("insert mapping failed: %v", err)
	}

	mappings, err := store.AppleMappings()
	if err != nil {
		t.Fatalf("load mappings failed: %v", err)
	}
	if mappings["111"] != "USRC17607839" {
		t.Errorf("mapping for 111 = %q", mappings["111"])
	}
	if _, ok := mappings["222"]; ok {
		t.Error("mappings without an ISRC should be omitted")
	}
}

func TestProcessingHistory(t *testing.T) {
	store := openTestStore(t)

	records := []*HistoryRecord{
		{BatchID: "b1", FileName: "spotify_202403.csv", PlatformID: "spo-spotify", RecordsProcessed: 10, RecordsInserted: 9, RecordsRejected: 1, Status: StatusCompleted, Duration: 2 * time.Second},
		{BatchID: "b2", FileName: "broken.csv", PlatformID: "unknown", Status: StatusFailed, ErrorMessage: "parse failed"},
		{BatchID: "b3", FileName: "empty.csv", PlatformID: "unknown", Status: StatusSkipped},
	}
	for _, h := range records {
		if err := store.InsertHistory(h); err != nil {
			t.Fatalf("insert history failed: %v", err)
		}
	}

	history, err := store.RecentHistory(10)
	if err != nil {
		t.Fatalf("read history failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 history rows, got %d", len(history))
	}

	byBatch := make(map[string]*HistoryRecord, len(history))
	for _, h := range history {
		byBatch[h.BatchID] = h
	}
	if h := byBatch["b1"]; h == nil || h.RecordsInserted != 9 || h.Status != StatusCompleted {
		t.Errorf("unexpected b1 row: %+v", h)
	}
	if h := byBatch["b2"]; h == nil || h.ErrorMessage != "parse failed" {
		t.Errorf("unexpected b2 row: %+v", h)
	}
}
