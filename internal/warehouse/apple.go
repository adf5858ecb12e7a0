package warehouse

import "fmt"

// AppleMapping is one apple_identifier_mapping row
type AppleMapping struct {
	AppleIdentifier string
	ISRC            string
	ConfidenceScore float64
}

// AppleMappings loads the opaque-identifier lookup table.
// Callers treat an error as "mapping table unavailable" and synthesize
// pseudo-ISRCs for every row instead.
func (s *Store) AppleMappings() (map[string]string, error) {
	rows, err := s.db.Query(`
		SELECT apple_identifier, COALESCE(isrc, '')
		FROM apple_identifier_mapping
		WHERE is_active = 1
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load apple mappings: %w", err)
	}
	defer rows.Close()

	mappings := make(map[string]string)
	for rows.Next() {
		var id, isrc string
		if err := rows.Scan(&id, &isrc); err != nil {
			return nil, fmt.Errorf("failed to scan apple mapping: %w", err)
		}
		if isrc != "" {
			mappings[id] = isrc
		}
	}

	return mappings, rows.Err()
}

// InsertAppleMapping adds or replaces one identifier mapping
func (s *Store) InsertAppleMapping(m *AppleMapping) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO apple_identifier_mapping
		(apple_identifier, isrc, confidence_score)
		VALUES (?, ?, ?)
	`, m.AppleIdentifier, nullable(m.ISRC), m.ConfidenceScore)
	if err != nil {
		return fmt.Errorf("failed to insert apple mapping: %w", err)
	}

	return nil
}
