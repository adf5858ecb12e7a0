// Package schema resolves semantic roles (isrc, artist, value, ...) to the
// physical column names a third-party file actually uses. Resolution is a
// pure function over a static alias dictionary; no schema is inferred.
package schema

import (
	"strings"

	"github.com/franz/royaltyflow/internal/sniff"
)

// Role identifies the semantic meaning of a column
type Role string

const (
	RoleISRC    Role = "isrc"
	RoleArtist  Role = "artist"
	RoleTrack   Role = "track"
	RoleAlbum   Role = "album"
	RoleCountry Role = "country"
	RoleValue   Role = "value"
	RoleDate    Role = "date"
)

// Roles lists every resolvable role in a stable order
var Roles = []Role{RoleISRC, RoleArtist, RoleTrack, RoleAlbum, RoleCountry, RoleValue, RoleDate}

// aliases maps each role to the column names platforms use for it.
// Order matters: earlier aliases take precedence.
var aliases = map[Role][]string{
	RoleISRC: {
		"isrc", "track_isrc", "recording_isrc", "track isrc",
		"isrc_code", "isrccode",
	},
	RoleArtist: {
		"artist", "artist name", "performer", "artist_name",
		"artistname", "main artist", "primary artist", "track artist",
	},
	RoleTrack: {
		"title", "track", "track name", "song", "track_name",
		"trackname", "song title", "recording", "track title",
	},
	RoleAlbum: {
		"album", "album name", "release", "album_name",
		"albumname", "release name", "album title",
	},
	RoleCountry: {
		"country", "country_code", "territory", "country code",
		"region", "storefront name", "storefront",
	},
	RoleValue: {
		"streams", "plays", "views", "events", "units", "sales", "revenue",
		"streams30s", "stream count", "play count", "view count", "event count",
	},
	RoleDate: {
		"date", "period", "month", "year", "timestamp",
		"reporting_date", "data_date", "datestamp",
	},
}

// Outcome classifies how a role resolved against a table
type Outcome int

const (
	// NotFound means no column matched any alias
	NotFound Outcome = iota
	// Exact means an alias matched a column name exactly (case-insensitive)
	Exact
	// Substring means an alias matched by containment in a column name
	Substring
	// Ambiguous means several columns tied on the substring pass
	Ambiguous
)

// Match is the result of resolving one role
type Match struct {
	Role       Role
	Column     string   // chosen physical column ("" when NotFound)
	Index      int      // column index in the table (-1 when NotFound)
	Outcome    Outcome
	Candidates []string // all tied columns when Outcome is Ambiguous
}

// Resolve finds the physical column for a role. Exact case-insensitive
// matches win over substring containment; within each pass the first alias
// hit in column order wins, even when several columns would match.
// Call ResolveAll to see ambiguity explicitly.
func Resolve(table *sniff.Table, role Role) (Match, bool) {
	m := ResolveAll(table, role)
	if m.Outcome == NotFound {
		return m, false
	}
	return m, true
}

// ResolveAll resolves a role and reports substring ties as Ambiguous while
// still nominating the first candidate in column order, preserving the
// historical tie-break.
func ResolveAll(table *sniff.Table, role Role) Match {
	miss := Match{Role: role, Index: -1, Outcome: NotFound}
	if table == nil || table.IsEmpty() {
		return miss
	}

	lowered := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		lowered[i] = strings.ToLower(strings.TrimSpace(col))
	}

	for _, alias := range aliases[role] {
		target := strings.ToLower(strings.TrimSpace(alias))

		// Exact match pass
		for i, col := range lowered {
			if col == target {
				return Match{Role: role, Column: table.Columns[i], Index: i, Outcome: Exact}
			}
		}

		// Substring containment pass
		var candidates []string
		first := -1
		for i, col := range lowered {
			if strings.Contains(col, target) {
				if first < 0 {
					first = i
				}
				candidates = append(candidates, table.Columns[i])
			}
		}
		if first >= 0 {
			outcome := Substring
			if len(candidates) > 1 {
				outcome = Ambiguous
			}
			return Match{
				Role:       role,
				Column:     table.Columns[first],
				Index:      first,
				Outcome:    outcome,
				Candidates: candidates,
			}
		}
	}

	return miss
}

// Mapping holds resolved role → column matches for one table
type Mapping struct {
	matches map[Role]Match
}

// Map resolves every role against a table
func Map(table *sniff.Table) *Mapping {
	m := &Mapping{matches: make(map[Role]Match, len(Roles))}
	for _, role := range Roles {
		m.matches[role] = ResolveAll(table, role)
	}
	return m
}

// Lookup returns the match for a role
func (m *Mapping) Lookup(role Role) (Match, bool) {
	match, ok := m.matches[role]
	if !ok || match.Outcome == NotFound {
		return match, false
	}
	return match, true
}

// Value returns the cell for a role in the given row of the table
func (m *Mapping) Value(table *sniff.Table, row int, role Role) (string, bool) {
	match, ok := m.Lookup(role)
	if !ok {
		return "", false
	}
	return table.Cell(row, match.Index)
}

// Ambiguities lists every role whose substring resolution tied across
// multiple physical columns
func (m *Mapping) Ambiguities() []Match {
	var out []Match
	for _, role := range Roles {
		if match := m.matches[role]; match.Outcome == Ambiguous {
			out = append(out, match)
		}
	}
	return out
}
