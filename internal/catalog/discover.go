// Package catalog discovers candidate report files and computes per-file
// identity: checksum, size, platform, reporting window, and report kind.
package catalog

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/franz/royaltyflow/internal/util"
)

// SupportedExtensions are the tabular text and spreadsheet formats the
// pipeline can ingest
var SupportedExtensions = []string{
	".csv",
	".txt",
	".tsv",
	".xlsx",
	".xls",
}

// IsSupported reports whether the path has an ingestable extension
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// Discover walks the root directory tree and returns every supported file
// in deterministic sorted order, so repeated runs process files identically.
// A missing or empty root yields an empty slice, not an error.
func Discover(root string) []string {
	var files []string

	if _, err := os.Stat(root); err != nil {
		util.WarnLog("Source folder not found: %s", root)
		return files
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			util.WarnLog("Error accessing path %s: %v", path, err)
			return nil // continue walking
		}
		if d.IsDir() {
			return nil
		}
		if IsSupported(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		util.WarnLog("Walk error for %s: %v", root, err)
	}

	sort.Strings(files)
	util.InfoLog("Discovered %d supported files under %s", len(files), root)
	return files
}
