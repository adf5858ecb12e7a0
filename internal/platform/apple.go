package platform

import (
	"strings"

	"github.com/franz/royaltyflow/internal/sniff"
)

// AppleMusicID is the platform id of the one platform that reports opaque
// identifiers instead of ISRCs
const AppleMusicID = "apl-apple-music"

// ApplePseudoPrefix marks synthesized identifiers for unmapped Apple rows
const ApplePseudoPrefix = "APPLE_"

// appleColumnRenames translates Apple Music report headers into the
// canonical column names the rest of the pipeline expects
var appleColumnRenames = map[string]string{
	"apple identifier":  "apple_id",
	"storefront name":   "country",
	"streams":           "metric_value",
	"subscription type": "product_type",
}

// RenameAppleColumns rewrites Apple-specific headers in place.
// Matching is case-insensitive; unrecognized columns are left alone.
func RenameAppleColumns(table *sniff.Table) {
	if table == nil {
		return
	}
	for i, col := range table.Columns {
		if renamed, ok := appleColumnRenames[strings.ToLower(strings.TrimSpace(col))]; ok {
			table.Columns[i] = renamed
		}
	}
}

// PseudoISRC synthesizes a substitute identifier for an unmapped Apple id.
// Downstream treats it exactly like a real ISRC.
func PseudoISRC(appleID string) string {
	return ApplePseudoPrefix + appleID
}

// AppleResolver reconciles opaque Apple identifiers against the persisted
// mapping table. When the table itself could not be loaded, every row gets
// a synthesized pseudo-ISRC.
type AppleResolver struct {
	mappings  map[string]string
	available bool
}

// NewAppleResolver builds a resolver over loaded identifier mappings.
// Pass available=false when the mapping table could not be read.
func NewAppleResolver(mappings map[string]string, available bool) *AppleResolver {
	return &AppleResolver{mappings: mappings, available: available}
}

// Resolve maps one opaque Apple identifier to an ISRC, synthesizing a
// pseudo-ISRC when no mapping exists
func (r *AppleResolver) Resolve(appleID string) string {
	if r != nil && r.available {
		if isrc, ok := r.mappings[appleID]; ok && isrc != "" {
			return isrc
		}
	}
	return PseudoISRC(appleID)
}

// Available reports whether the mapping table was loaded
func (r *AppleResolver) Available() bool {
	return r != nil && r.available
}
