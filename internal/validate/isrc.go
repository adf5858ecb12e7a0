// Package validate holds the field-level cleaning rules for royalty report
// data. Every cleaner is total: any input yields either a cleaned value or
// an explicit "absent" result, never an error.
package validate

import (
	"regexp"
	"strings"
)

// isrcPattern is the 12-character ISRC layout:
// country (2 letters), registrant (3 alphanumeric), year+designation (7 digits)
var isrcPattern = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{3}[0-9]{7}$`)

// CleanISRC normalizes and validates an ISRC. Labels ship these with
// prefixes and stray spacing; anything that does not reduce to the
// canonical 12-character form, or arrives dash-separated, is absent.
func CleanISRC(raw string) (string, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))

	s = strings.ReplaceAll(s, "ISRC:", "")
	s = strings.ReplaceAll(s, "ISRC", "")
	s = strings.TrimSpace(s)

	// Quality scoring validates the raw value, so dashed forms always count
	// as invalid there; the cleaner rejects them too instead of repairing
	// data that scoring penalizes.
	if strings.Contains(s, "-") {
		return "", false
	}
	s = strings.ReplaceAll(s, " ", "")

	if !isrcPattern.MatchString(s) {
		return "", false
	}
	return s, true
}

// IsValidISRC reports whether a raw value already matches the canonical
// form after upper/trim only. Used by quality scoring, which counts invalid
// inputs rather than repairing them.
func IsValidISRC(raw string) bool {
	return isrcPattern.MatchString(strings.ToUpper(strings.TrimSpace(raw)))
}
