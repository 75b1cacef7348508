package hh

import "strings"

const defaultAreaID = "2759" // Tashkent

// areaIDs maps a lowercased city name to its hh.uz area identifier.
var areaIDs = map[string]string{
	"tashkent":    "2759",
	"samarkand":   "2760",
	"bukhara":     "2761",
	"andijan":     "2762",
	"fergana":     "2763",
	"namangan":    "2764",
	"navoi":       "2765",
	"kashkadarya": "2766",
	"khorezm":     "2767",
	"nukus":       "2768",
	"termiz":      "2769",
	"jizzakh":     "2770",
	"syrdarya":    "2771",
	"kokand":      "2772",
}

// AreaIDFor resolves a free-text location to an area id, falling back to
// Tashkent for unknown cities.
func AreaIDFor(location string) string {
	if id, ok := areaIDs[strings.ToLower(location)]; ok {
		return id
	}
	return defaultAreaID
}
