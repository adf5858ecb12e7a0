package validate

import (
	"strconv"
	"strings"
)

// maxReasonableValue caps metric values; anything above is almost certainly
// a unit error in the source file and is dropped rather than clamped
const maxReasonableValue = 1e12

var numericReplacer = strings.NewReplacer(
	",", "", // thousands separator
	"$", "",
	"€", "",
	"£", "",
)

// CleanNumeric parses a metric value out of the formats platforms use
// ("1,234,567", "$12.50"). Negative results become 0; values above the
// plausibility ceiling are absent.
func CleanNumeric(raw string) (float64, bool) {
	s := strings.TrimSpace(numericReplacer.Replace(strings.TrimSpace(raw)))
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	if v < 0 {
		return 0, true
	}
	if v > maxReasonableValue {
		return 0, false
	}
	return v, true
}

// IsNegativeNumeric reports whether a raw cell parses to a negative number
// before cleaning. Quality scoring penalizes datasets containing these.
func IsNegativeNumeric(raw string) bool {
	s := strings.TrimSpace(numericReplacer.Replace(strings.TrimSpace(raw)))
	v, err := strconv.ParseFloat(s, 64)
	return err == nil && v < 0
}
