// Package location maps free-text city names to airport codes.
package location

import "strings"

// DefaultTable maps lowercase city names and aliases to IATA codes.
var DefaultTable = map[string]string{
	"bengaluru":  "BLR",
	"bangalore":  "BLR",
	"delhi":      "DEL",
	"new delhi":  "DEL",
	"mumbai":     "BOM",
	"bombay":     "BOM",
	"chennai":    "MAA",
	"madras":     "MAA",
	"kolkata":    "CCU",
	"calcutta":   "CCU",
	"hyderabad":  "HYD",
	"goa":        "GOI",
	"pune":       "PNQ",
	"ahmedabad":  "AMD",
	"kochi":      "COK",
	"cochin":     "COK",
	"jaipur":     "JAI",
	"lucknow":    "LKO",
	"guwahati":   "GAU",
	"trivandrum": "TRV",
}

// Normalizer resolves names against a lookup table.
type Normalizer struct {
	table map[string]string
}

// New creates a Normalizer. Extra entries override or extend DefaultTable.
func New(extra map[string]string) *Normalizer {
	table := make(map[string]string, len(DefaultTable)+len(extra))
	for name, code := range DefaultTable {
		table[name] = code
	}
	for name, code := range extra {
		table[strings.ToLower(strings.TrimSpace(name))] = strings.ToUpper(code)
	}
	return &Normalizer{table: table}
}

// Normalize returns the code for text, case-insensitively.
// Unknown names fall back to the trimmed input, uppercased.
func (n *Normalizer) Normalize(text string) string {
	key := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	if code, ok := n.table[key]; ok {
		return code
	}
	return strings.ToUpper(strings.TrimSpace(text))
}
