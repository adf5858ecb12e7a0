package catalog

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/franz/royaltyflow/internal/platform"
	"github.com/franz/royaltyflow/internal/sniff"
	"github.com/franz/royaltyflow/internal/util"
)

// ReportKind classifies what a source file contains
type ReportKind string

const (
	// KindMetadata is a catalog export: artist, track, album attributes
	KindMetadata ReportKind = "metadata"
	// KindUsage is a per-platform usage/metrics export
	KindUsage ReportKind = "usage"
	// KindAppleStreaming is Apple's streaming export with opaque identifiers
	KindAppleStreaming ReportKind = "apple_streaming"
)

// SourceFile is the analyzed identity of one discovered file.
// Immutable after Analyze.
type SourceFile struct {
	Path       string
	Name       string
	SizeBytes  int64
	ModTime    time.Time
	Checksum   string
	Extension  string
	PlatformID string
	DateWindow string // YYYYMM token from the path, "" when none found
	Encoding   string // detected for text files only
	Kind       ReportKind
}

var (
	// Year+month digit patterns tried in order; within a pattern the last
	// match in the path wins (deepest path segment, usually the file itself)
	dateWindowPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d{4})(\d{2})`),      // YYYYMM
		regexp.MustCompile(`(\d{4})-(\d{2})`),     // YYYY-MM
		regexp.MustCompile(`(\d{4})_(\d{2})`),     // YYYY_MM
		regexp.MustCompile(`(\d{4})\.(\d{2})`),    // YYYY.MM
	}

	metadataNameHints = []string{"metadata", "catalog", "track_info", "trackinfo"}

	textExtensions = map[string]bool{".csv": true, ".txt": true, ".tsv": true}
)

// Analyze computes the full SourceFile identity for one path.
// The checksum streams the file content; nothing is buffered whole.
func Analyze(path string) (*SourceFile, error) {
	size, mtimeUnix, err := util.FileMetadata(path)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze %s: %w", path, err)
	}

	checksum, err := util.ContentChecksum(path)
	if err != nil {
		return nil, fmt.Errorf("failed to checksum %s: %w", path, err)
	}

	sf := &SourceFile{
		Path:       path,
		Name:       filepath.Base(path),
		SizeBytes:  size,
		ModTime:    time.Unix(mtimeUnix, 0),
		Checksum:   checksum,
		Extension:  strings.ToLower(filepath.Ext(path)),
		PlatformID: platform.Detect(path),
		DateWindow: ExtractDateWindow(path),
	}

	if textExtensions[sf.Extension] {
		sf.Encoding = sniff.DetectEncoding(path)
	}

	sf.Kind = classify(sf)
	return sf, nil
}

// ExtractDateWindow scans path text for year+month digit patterns and
// returns the YYYYMM token of the last acceptable match, or "".
// Candidates outside year 2020-2030 or month 1-12 are rejected.
func ExtractDateWindow(path string) string {
	for _, pattern := range dateWindowPatterns {
		matches := pattern.FindAllStringSubmatch(path, -1)
		if len(matches) == 0 {
			continue
		}

		last := matches[len(matches)-1]
		year, errY := strconv.Atoi(last[1])
		month, errM := strconv.Atoi(last[2])
		if errY != nil || errM != nil {
			continue
		}
		if year >= 2020 && year <= 2030 && month >= 1 && month <= 12 {
			return fmt.Sprintf("%04d%02d", year, month)
		}
	}
	return ""
}

// classify decides the report kind from filename hints and platform.
// Catalog exports name themselves; Apple's streaming exports are the only
// per-platform special case (opaque identifiers instead of ISRCs).
func classify(sf *SourceFile) ReportKind {
	nameLower := strings.ToLower(sf.Name)
	for _, hint := range metadataNameHints {
		if strings.Contains(nameLower, hint) {
			return KindMetadata
		}
	}
	if sf.PlatformID == platform.AppleMusicID {
		return KindAppleStreaming
	}
	return KindUsage
}
