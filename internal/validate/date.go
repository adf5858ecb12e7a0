package validate

import (
	"strings"
	"time"
)

// dateLayouts is the fixed trial order for report dates. Day-first European
// layouts come before month-first, matching how the source platforms
// predominantly format periods.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"01/02/2006",
	"2006-01",
	"2006/01",
	"01/2006",
	"20060102",
	"200601",
	"02-01-2006",
	"02.01.2006",
}

// flexibleLayouts are the fallback formats tried when none of the fixed
// layouts match
var flexibleLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
}

// CleanDate parses a report date using the fixed layout list, then a
// flexible fallback. Unparseable values are absent.
func CleanDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range flexibleLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
