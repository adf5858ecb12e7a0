package platform

import "strings"

// metricKeywords are checked in priority order against the joined column
// text of a file; the first group with a hit decides the metric type
var metricKeywords = []struct {
	metricType string
	words      []string
}{
	{"streams", []string{"stream", "listening"}},
	{"views", []string{"view", "watch"}},
	{"events", []string{"event", "interaction", "engagement"}},
	{"sales", []string{"sale", "unit", "purchase"}},
	{"plays", []string{"play", "listen"}},
}

// InferMetricType decides what a file's metric values measure.
// Column names are the primary signal; the platform's default metric type
// is the fallback, and "streams" the final default.
func InferMetricType(platformID string, columns []string) string {
	colText := strings.ToLower(strings.Join(columns, " "))

	for _, group := range metricKeywords {
		for _, word := range group.words {
			if strings.Contains(colText, word) {
				return group.metricType
			}
		}
	}

	if p, ok := Get(platformID); ok {
		return p.DefaultMetric
	}
	return "streams"
}
