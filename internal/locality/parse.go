package locality

import (
	"strings"

	"github.com/SophiaPhilean/UFOTRAC/internal/models"
)

// ParseAddress extracts locality facts from a single formatted address
// string, e.g. "12 Main St, Glen Cove, NY 11542, USA". It is used for
// providers that do not expose structured locality fields.
//
// This is a best-effort heuristic, not a contract: it tokenizes on commas,
// pattern-matches a trailing two-letter region code (with an optional
// postal code) and a country marker, and leaves any field it cannot
// recognize empty.
func ParseAddress(formatted string) models.Meta {
	parts := strings.Split(formatted, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var meta models.Meta
	idx := len(parts) - 1

	if idx >= 0 && isCountryMarker(parts[idx]) {
		meta.CountryCode = "us"
		idx--
	}

	if idx >= 0 {
		if fields := strings.Fields(parts[idx]); len(fields) > 0 {
			code := strings.ToUpper(fields[0])
			if name := RegionName(code); name != "" {
				meta.RegionCode = code
				meta.Region = name
				// A recognized state implies the supported country even
				// without an explicit country marker.
				if meta.CountryCode == "" {
					meta.CountryCode = "us"
				}
				idx--
			}
		}
	}

	// Only guess at the city when a recognized region or country anchors
	// the tail of the string; otherwise the last component could be
	// anything (a street, a foreign country) and is left unassigned.
	anchored := meta.RegionCode != "" || meta.CountryCode != ""
	switch {
	case anchored && idx >= 1:
		meta.City = parts[idx]
	case idx == 0 && meta.RegionCode != "":
		// "Glen Cove, NY" - the only remaining component is the city.
		meta.City = parts[0]
	}

	return meta
}

func isCountryMarker(s string) bool {
	switch Normalize(s) {
	case "us", "usa", "united states", "united states of america":
		return true
	}

	return false
}
