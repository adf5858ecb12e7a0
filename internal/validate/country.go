package validate

import "strings"

// UnknownCountry is the sentinel for values that do not resolve to ISO-2
const UnknownCountry = "XX"

// countryAliases maps full country names (and common misspellings seen in
// real exports) to ISO-2 codes
var countryAliases = map[string]string{
	"USA": "US", "UNITED STATES": "US", "AMERICA": "US",
	"UK": "GB", "UNITED KINGDOM": "GB", "BRITAIN": "GB",
	"BRASIL": "BR", "BRAZIL": "BR",
	"DEUTSCHLAND": "DE", "GERMANY": "DE",
	"ESPANA": "ES", "SPAIN": "ES",
	"FRANCE": "FR", "FRANCIA": "FR",
	"ITALIA": "IT", "ITALY": "IT",
	"JAPAN": "JP", "JAPON": "JP",
	"KOREA": "KR", "SOUTH KOREA": "KR",
	"MEXICO": "MX", "MEJICO": "MX",
	"NEDERLAND": "NL", "NETHERLANDS": "NL",
	"AUSTRALIA": "AU", "AUSTRIALIA": "AU",
	"CANADA": "CA", "KANADA": "CA",
	"INDIA": "IN", "BHARAT": "IN",
	"CHINA": "CN", "PEOPLES REPUBLIC OF CHINA": "CN",
	"RUSSIA": "RU", "RUSSIAN FEDERATION": "RU",
}

// CleanCountry standardizes a country value to an ISO-2 code.
// Full names go through the alias table; anything that does not end up as
// exactly two characters becomes the sentinel "XX".
func CleanCountry(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))

	if code, ok := countryAliases[s]; ok {
		return code
	}

	if len(s) != 2 {
		return UnknownCountry
	}
	return s
}

// IsValidCountry reports whether a raw value is already a 2-character code.
// Quality scoring counts failures without repairing them.
func IsValidCountry(raw string) bool {
	return len(strings.TrimSpace(raw)) == 2
}
