package warehouse

import (
	"crypto/md5"
	"database/sql"
	"fmt"
	"strings"

	"github.com/franz/royaltyflow/internal/validate"
)

// ArtistRecord is one dim_artists row
type ArtistRecord struct {
	ArtistID       string
	Name           string
	NameNormalized string
	SourcePlatform string
	AutoGenerated  bool
}

// TrackRecord is one dim_tracks row
type TrackRecord struct {
	ISRC            string
	Name            string
	ArtistID        string
	AlbumName       string
	Label           string
	DurationSeconds int
	Genre           string
}

// GenerateArtistID derives the deterministic artist identity:
// uppercased platform prefix plus the first 12 hex digits of the hash of
// the normalized name. Case and spacing variants of one artist map to the
// same dimension key across runs and files.
func GenerateArtistID(artistName, platformID string) string {
	normalized := validate.NormalizeName(artistName)
	if normalized == "" {
		return ""
	}
	digest := md5.Sum([]byte(normalized))
	return fmt.Sprintf("%s_%s",
		strings.ToUpper(platformID),
		strings.ToUpper(fmt.Sprintf("%x", digest)[:12]))
}

// UpsertArtists inserts artist rows with insert-if-absent semantics keyed
// by artist_id. Returns the number of rows actually inserted.
func UpsertArtists(tx *sql.Tx, artists []ArtistRecord) (int, error) {
	if len(artists) == 0 {
		return 0, nil
	}

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO dim_artists
		(artist_id, artist_name, artist_name_normalized, source_platform, is_auto_generated)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare artist insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, a := range artists {
		result, err := stmt.Exec(a.ArtistID, a.Name, a.NameNormalized, a.SourcePlatform, boolToInt(a.AutoGenerated))
		if err != nil {
			return inserted, fmt.Errorf("failed to insert artist %s: %w", a.ArtistID, err)
		}
		if n, err := result.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	return inserted, nil
}

// UpsertTracks inserts track rows with insert-if-absent semantics keyed by
// isrc. Returns the number of rows actually inserted.
func UpsertTracks(tx *sql.Tx, tracks []TrackRecord) (int, error) {
	if len(tracks) == 0 {
		return 0, nil
	}

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO dim_tracks
		(isrc, track_name, artist_id, album_name, label, duration_seconds, genre)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare track insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, t := range tracks {
		result, err := stmt.Exec(t.ISRC, nullable(t.Name), nullable(t.ArtistID),
			nullable(t.AlbumName), nullable(t.Label), nullableInt(t.DurationSeconds), nullable(t.Genre))
		if err != nil {
			return inserted, fmt.Errorf("failed to insert track %s: %w", t.ISRC, err)
		}
		if n, err := result.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	return inserted, nil
}

// ArtistCount returns the number of artist dimension rows
func (s *Store) ArtistCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM dim_artists").Scan(&count)
	return count, err
}

// TrackCount returns the number of track dimension rows
func (s *Store) TrackCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM dim_tracks").Scan(&count)
	return count, err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(n int) interface{} {
	if n == 0 {
		return nil
	}
	return n
}
