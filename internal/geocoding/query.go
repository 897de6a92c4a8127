package geocoding

import (
	"strings"

	"github.com/SophiaPhilean/UFOTRAC/internal/models"
)

// Queries at least this long are assumed to already carry enough context
// to resolve on their own.
const minSpecificQueryLength = 24

// BuildQuery builds the text sent to every provider from the caller's raw
// description. Input that already looks specific (contains a comma, or is
// long enough) is passed through unmodified; vague input is extended with
// the caller's city/region context so a bare business name still resolves
// near the right place.
//
// This is a pure function; callers invoke it once per request and reuse
// the result for every adapter so all providers search the same string.
func BuildQuery(raw string, expect models.Expectation) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.Contains(raw, ",") || len(raw) >= minSpecificQueryLength {
		return raw
	}

	parts := []string{raw}
	if expect.City != "" {
		parts = append(parts, expect.City)
	}
	if expect.RegionCode != "" {
		parts = append(parts, expect.RegionCode)
	}

	return strings.Join(parts, ", ")
}
