package platform

import (
	"path/filepath"
	"strings"
)

// Detect determines the platform id for a source file from its path.
// The full path and the filename are scanned for keyword matches first;
// if nothing hits, individual path segments are checked last-to-first with
// separator characters stripped. Unmatched files are "unknown".
func Detect(path string) string {
	pathLower := strings.ToLower(path)
	nameLower := strings.ToLower(filepath.Base(path))

	for _, p := range registry {
		for _, keyword := range p.Keywords {
			if strings.Contains(pathLower, keyword) || strings.Contains(nameLower, keyword) {
				return p.ID
			}
		}
	}

	// Segment fallback: nearest segments to the file are most specific
	segments := strings.FieldsFunc(pathLower, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	for i := len(segments) - 1; i >= 0; i-- {
		segment := strings.NewReplacer("-", "", "_", "").Replace(segments[i])
		for _, p := range registry {
			for _, keyword := range p.Keywords {
				if strings.Contains(segment, keyword) {
					return p.ID
				}
			}
		}
	}

	return Unknown
}
