package pipeline

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/franz/royaltyflow/internal/catalog"
	"github.com/franz/royaltyflow/internal/platform"
	"github.com/franz/royaltyflow/internal/schema"
	"github.com/franz/royaltyflow/internal/sniff"
	"github.com/franz/royaltyflow/internal/util"
	"github.com/franz/royaltyflow/internal/validate"
	"github.com/franz/royaltyflow/internal/warehouse"
)

// loadMetadata extracts artist and track dimension rows from a catalog
// export. Artist names are deduplicated within the file before IDs are
// generated; inserts are insert-if-absent, so re-ingesting the same
// metadata never duplicates dimension rows.
func (s *Session) loadMetadata(table *sniff.Table, sf *catalog.SourceFile) (*FileResult, error) {
	mapping := schema.Map(table)
	if _, ok := mapping.Lookup(schema.RoleISRC); !ok {
		return nil, fmt.Errorf("%s has no ISRC column: %w", sf.Name, util.ErrNoUsableRows)
	}

	durationIdx := findColumn(table, "duration")
	genreIdx := findColumn(table, "genre")
	labelIdx := findColumn(table, "label")

	seenArtists := make(map[string]bool)
	var artists []warehouse.ArtistRecord
	var tracks []warehouse.TrackRecord
	result := &FileResult{}

	for row := range table.Rows {
		artistID := ""
		if raw, ok := mapping.Value(table, row, schema.RoleArtist); ok {
			if name, ok := validate.CleanArtistName(raw); ok {
				artistID = warehouse.GenerateArtistID(name, sf.PlatformID)
				normalized := validate.NormalizeName(name)
				if !seenArtists[normalized] {
					seenArtists[normalized] = true
					artists = append(artists, warehouse.ArtistRecord{
						ArtistID:       artistID,
						Name:           name,
						NameNormalized: normalized,
						SourcePlatform: sf.PlatformID,
					})
				}
			}
		}

		raw, ok := mapping.Value(table, row, schema.RoleISRC)
		if !ok {
			result.Rejected++
			continue
		}
		isrc, ok := validate.CleanISRC(raw)
		if !ok {
			result.Rejected++
			continue
		}

		track := warehouse.TrackRecord{ISRC: isrc, ArtistID: artistID}
		if raw, ok := mapping.Value(table, row, schema.RoleTrack); ok {
			if name, ok := validate.CleanTrackName(raw); ok {
				track.Name = name
			}
		}
		if raw, ok := mapping.Value(table, row, schema.RoleAlbum); ok {
			track.AlbumName = strings.TrimSpace(raw)
		}
		if raw, ok := table.Cell(row, durationIdx); ok {
			if seconds, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && seconds > 0 {
				track.DurationSeconds = seconds
			}
		}
		if raw, ok := table.Cell(row, genreIdx); ok {
			track.Genre = strings.TrimSpace(raw)
		}
		if raw, ok := table.Cell(row, labelIdx); ok {
			track.Label = strings.TrimSpace(raw)
		}

		tracks = append(tracks, track)
	}

	err := s.store.Transaction(func(tx *sql.Tx) error {
		var err error
		if result.ArtistsAdded, err = warehouse.UpsertArtists(tx, artists); err != nil {
			return err
		}
		result.TracksAdded, err = warehouse.UpsertTracks(tx, tracks)
		return err
	})
	if err != nil {
		return nil, err
	}

	util.DebugLog("Metadata %s: %d artists, %d tracks added", sf.Name, result.ArtistsAdded, result.TracksAdded)
	return result, nil
}

// loadUsage transforms a usage export into fact rows.
// Rows without a usable positive metric value are dropped, never the whole
// file; a file with no resolvable value column rejects every row.
func (s *Session) loadUsage(table *sniff.Table, sf *catalog.SourceFile, batchID string) (*FileResult, error) {
	mapping := schema.Map(table)
	result := &FileResult{}

	valueMatch, ok := mapping.Lookup(schema.RoleValue)
	if !ok {
		util.WarnLog("No metric value column found in %s; dropping %d rows", sf.Name, table.NumRows())
		result.Rejected = table.NumRows()
		return result, nil
	}

	metricType := platform.InferMetricType(sf.PlatformID, table.Columns)
	productIdx := findColumn(table, "product", "subscription")
	userIdx := findColumn(table, "user type", "user_type", "customer type")

	fallbackDate, haveFallback := windowDate(sf.DateWindow)
	dates := make(map[int]time.Time)
	var records []warehouse.MetricRecord

	for row := range table.Rows {
		raw, _ := table.Cell(row, valueMatch.Index)
		value, ok := validate.CleanNumeric(raw)
		if !ok || value <= 0 {
			result.Rejected++
			continue
		}

		record := warehouse.MetricRecord{
			PlatformID:  sf.PlatformID,
			MetricValue: value,
			MetricType:  metricType,
			SourceFile:  sf.Name,
			BatchID:     batchID,
			Environment: s.environment,
		}

		if raw, ok := mapping.Value(table, row, schema.RoleISRC); ok {
			if isrc, ok := validate.CleanISRC(raw); ok {
				record.ISRC = isrc
			}
		}
		if raw, ok := mapping.Value(table, row, schema.RoleCountry); ok {
			record.CountryCode = validate.CleanCountry(raw)
		}

		when, haveDate := rowDate(mapping, table, row)
		if !haveDate && haveFallback {
			when, haveDate = fallbackDate, true
		}
		if haveDate {
			record.DateID = warehouse.DateID(when)
			dates[record.DateID] = when
		}

		if raw, ok := table.Cell(row, productIdx); ok {
			record.ProductType = strings.TrimSpace(raw)
		}
		if raw, ok := table.Cell(row, userIdx); ok {
			record.UserType = strings.TrimSpace(raw)
		}

		records = append(records, record)
	}

	if len(records) == 0 {
		util.WarnLog("No valid usage rows in %s (%d rejected)", sf.Name, result.Rejected)
		return result, nil
	}

	err := s.store.Transaction(func(tx *sql.Tx) error {
		for _, when := range dates {
			if err := warehouse.EnsureDate(tx, when); err != nil {
				return err
			}
		}
		var err error
		result.Inserted, err = warehouse.InsertMetrics(tx, records)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// loadAppleStreaming handles Apple's export shape: platform-specific column
// renames, then reconciliation of opaque identifiers against the mapping
// table, substituting pseudo-ISRCs where no mapping exists.
func (s *Session) loadAppleStreaming(table *sniff.Table, sf *catalog.SourceFile, batchID string) (*FileResult, error) {
	platform.RenameAppleColumns(table)

	appleIdx := table.ColumnIndex("apple_id")
	if appleIdx < 0 {
		// Not the identifier-bearing export after all; treat as plain usage
		return s.loadUsage(table, sf, batchID)
	}

	mappings, err := s.store.AppleMappings()
	resolver := platform.NewAppleResolver(mappings, err == nil)
	if err != nil {
		util.WarnLog("Apple identifier mapping unavailable (%v); synthesizing pseudo-ISRCs", err)
	}

	countryIdx := table.ColumnIndex("country")
	valueIdx := table.ColumnIndex("metric_value")
	productIdx := table.ColumnIndex("product_type")

	fallbackDate, haveFallback := windowDate(sf.DateWindow)
	dates := make(map[int]time.Time)
	result := &FileResult{}
	var records []warehouse.MetricRecord

	for row := range table.Rows {
		appleID, ok := table.Cell(row, appleIdx)
		if !ok {
			result.Rejected++
			continue
		}
		raw, _ := table.Cell(row, valueIdx)
		value, ok := validate.CleanNumeric(raw)
		if !ok || value <= 0 {
			result.Rejected++
			continue
		}

		record := warehouse.MetricRecord{
			ISRC:        resolver.Resolve(strings.TrimSpace(appleID)),
			PlatformID:  platform.AppleMusicID,
			MetricValue: value,
			MetricType:  "streams",
			SourceFile:  sf.Name,
			BatchID:     batchID,
			Environment: s.environment,
		}

		if raw, ok := table.Cell(row, countryIdx); ok {
			record.CountryCode = validate.CleanCountry(raw)
		}
		if raw, ok := table.Cell(row, productIdx); ok {
			record.ProductType = strings.TrimSpace(raw)
		}
		if haveFallback {
			record.DateID = warehouse.DateID(fallbackDate)
			dates[record.DateID] = fallbackDate
		}

		records = append(records, record)
	}

	if len(records) == 0 {
		util.WarnLog("No valid Apple streaming rows in %s (%d rejected)", sf.Name, result.Rejected)
		return result, nil
	}

	err = s.store.Transaction(func(tx *sql.Tx) error {
		for _, when := range dates {
			if err := warehouse.EnsureDate(tx, when); err != nil {
				return err
			}
		}
		var err error
		result.Inserted, err = warehouse.InsertMetrics(tx, records)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// findColumn returns the index of the first column whose lowercased name
// contains any of the given substrings, or -1
func findColumn(table *sniff.Table, substrings ...string) int {
	for i, col := range table.Columns {
		lower := strings.ToLower(col)
		for _, sub := range substrings {
			if strings.Contains(lower, sub) {
				return i
			}
		}
	}
	return -1
}

// rowDate parses the row's date column when one resolved
func rowDate(mapping *schema.Mapping, table *sniff.Table, row int) (time.Time, bool) {
	raw, ok := mapping.Value(table, row, schema.RoleDate)
	if !ok {
		return time.Time{}, false
	}
	return validate.CleanDate(raw)
}

// windowDate converts a YYYYMM date-window token into the first day of
// that reporting month
func windowDate(window string) (time.Time, bool) {
	if len(window) != 6 {
		return time.Time{}, false
	}
	t, err := time.Parse("200601", window)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
