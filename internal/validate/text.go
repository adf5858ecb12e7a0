package validate

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	// permitted characters for name fields: letters, digits, whitespace, and
	// the punctuation that legitimately appears in artist/track names
	disallowedCharsRe = regexp.MustCompile(`[^\p{L}\p{N}_\s\-\.\(\)\&']`)

	// placeholder values platforms emit when they have no real name
	artistPlaceholders = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^nan$`),
		regexp.MustCompile(`(?i)^null$`),
		regexp.MustCompile(`(?i)^none$`),
		regexp.MustCompile(`(?i)^unknown$`),
		regexp.MustCompile(`(?i)^various$`),
		regexp.MustCompile(`(?i)^va$`),
		regexp.MustCompile(`(?i)^v\.a\.$`),
		regexp.MustCompile(`(?i)^compilation$`),
		regexp.MustCompile(`(?i)^n/a$`),
		regexp.MustCompile(`^\s*$`),
	}

	trackPlaceholders = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^nan$`),
		regexp.MustCompile(`(?i)^null$`),
		regexp.MustCompile(`(?i)^none$`),
		regexp.MustCompile(`(?i)^unknown$`),
		regexp.MustCompile(`(?i)^untitled$`),
		regexp.MustCompile(`(?i)^track \d+$`),
		regexp.MustCompile(`(?i)^n/a$`),
		regexp.MustCompile(`^\s*$`),
	}

	parentheticalRe = regexp.MustCompile(`(\([^)]*\))`)
)

// CleanArtistName trims, collapses whitespace, strips disallowed characters,
// and converts placeholder names ("Unknown", "Various", ...) to absent.
func CleanArtistName(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	for _, re := range artistPlaceholders {
		if re.MatchString(s) {
			return "", false
		}
	}

	s = whitespaceRe.ReplaceAllString(s, " ")
	s = disallowedCharsRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// CleanTrackName trims and collapses whitespace, converts placeholder titles
// to absent, and reduces excessive parenthetical suffixes: when the part
// before the first parenthetical is already substantial, only the first
// parenthetical group is kept.
func CleanTrackName(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	for _, re := range trackPlaceholders {
		if re.MatchString(s) {
			return "", false
		}
	}

	s = whitespaceRe.ReplaceAllString(s, " ")
	s = trimParentheticals(s)
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// minSubstantialTitle is the length the pre-parenthetical portion must reach
// before trailing parentheticals beyond the first are dropped
const minSubstantialTitle = 10

func trimParentheticals(title string) string {
	locs := parentheticalRe.FindAllStringIndex(title, -1)
	if len(locs) == 0 {
		return title
	}

	main := strings.TrimSpace(title[:locs[0][0]])
	if len(main) > minSubstantialTitle {
		first := title[locs[0][0]:locs[0][1]]
		return strings.TrimSpace(main + " " + first)
	}
	return title
}

// NormalizeName produces the canonical lowercase form used for
// deterministic identity: NFC normalization, lowercasing, whitespace
// collapse. Two spellings of the same artist across files must normalize
// identically or they become two dimension rows.
func NormalizeName(s string) string {
	s = norm.NFC.String(s)
	s = strings.ToLower(strings.TrimSpace(s))
	return whitespaceRe.ReplaceAllString(s, " ")
}
