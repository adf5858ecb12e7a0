// Package platform knows which music platform a report came from and how
// that platform shapes its data: keyword detection, metric-type inference,
// and the Apple identifier reconciliation step.
package platform

// Unknown is the platform id for files that match no keyword
const Unknown = "unknown"

// Info describes one known platform
type Info struct {
	ID            string
	Name          string
	Category      string
	DefaultMetric string
	Keywords      []string
}

// registry lists every known platform. Order matters for detection: earlier
// entries win when keywords overlap (apl-apple-music's "itunes" before
// apl-itunes, matching how the keyword table has always resolved).
var registry = []Info{
	{"spo-spotify", "Spotify", "streaming", "streams", []string{"spotify", "spo"}},
	{"apl-apple-music", "Apple Music", "streaming", "streams", []string{"apple", "apl", "itunes"}},
	{"apl-itunes", "iTunes", "sales", "sales", []string{"itunes"}},
	{"amz-amazon", "Amazon Music", "streaming", "streams", []string{"amazon", "amz"}},
	{"ytb-youtube", "YouTube", "video", "views", []string{"youtube", "ytb", "yt"}},
	{"dzr-deezer", "Deezer", "streaming", "streams", []string{"deezer", "dzr"}},
	{"tdl-tidal", "Tidal", "streaming", "streams", []string{"tidal", "tdl"}},
	{"pnd-pandora", "Pandora", "streaming", "streams", []string{"pandora", "pnd"}},
	{"scu-soundcloud", "SoundCloud", "streaming", "plays", []string{"soundcloud", "scu"}},
	{"vvo-vevo", "Vevo", "video", "views", []string{"vevo", "vvo"}},
	{"fbk-facebook", "Facebook", "social", "events", []string{"facebook", "fbk", "fb"}},
	{"ins-instagram", "Instagram", "social", "events", []string{"instagram", "ins", "ig"}},
	{"ttk-tiktok", "TikTok", "social", "views", []string{"tiktok", "ttk"}},
	{"awa-awa", "AWA", "streaming", "streams", []string{"awa"}},
	{"boo-boomplay", "Boomplay", "streaming", "streams", []string{"boomplay", "boo"}},
	{"jio-jiosaavn", "JioSaavn", "streaming", "streams", []string{"jiosaavn", "jio"}},
	{"gna-gaana", "Gaana", "streaming", "streams", []string{"gaana", "gna"}},
	{"ang-anghami", "Anghami", "streaming", "streams", []string{"anghami", "ang"}},
}

// All returns every known platform in registry order
func All() []Info {
	out := make([]Info, len(registry))
	copy(out, registry)
	return out
}

// Get returns the Info for a platform id
func Get(id string) (Info, bool) {
	for _, p := range registry {
		if p.ID == id {
			return p, true
		}
	}
	return Info{}, false
}

// Category returns the platform category, defaulting to streaming
func Category(id string) string {
	if p, ok := Get(id); ok {
		return p.Category
	}
	return "streaming"
}
