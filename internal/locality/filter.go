package locality

import (
	"strings"

	"github.com/SophiaPhilean/UFOTRAC/internal/models"
)

// Filter decides whether a resolved locality is an acceptable answer for a
// caller's expectation. It is a pure predicate with no I/O; the zero value
// constrains against an empty country code and is not useful, build one
// with NewFilter.
type Filter struct {
	country string // lowercase ISO code the expected region codes belong to
}

// NewFilter creates a Filter whose region-code expectations are scoped to
// the given country code (e.g. "us").
func NewFilter(countryCode string) Filter {
	return Filter{country: strings.ToLower(strings.TrimSpace(countryCode))}
}

// Accept reports whether meta satisfies expect. When a region code is
// expected, the hit must be in the filter's country and its region must
// match by code or by full name. When a city is expected, every token of
// the expected city must appear in the hit's city. Absent expectation
// fields constrain nothing.
func (f Filter) Accept(meta models.Meta, expect models.Expectation) bool {
	if expect.RegionCode != "" {
		if !strings.EqualFold(meta.CountryCode, f.country) {
			return false
		}
		if !RegionMatches(meta, expect.RegionCode) {
			return false
		}
	}

	if expect.City != "" && !CityMatches(meta.City, expect.City) {
		return false
	}

	return true
}

// RegionMatches reports whether meta's region matches the expected
// two-letter code, either directly (case-insensitive) or via the full
// region name.
func RegionMatches(meta models.Meta, code string) bool {
	if strings.EqualFold(meta.RegionCode, code) {
		return true
	}
	name := RegionName(code)

	return name != "" && meta.Region != "" && Normalize(meta.Region) == Normalize(name)
}

// CityMatches reports whether every whitespace-separated token of the
// expected city appears as a substring of the hit's city, after
// normalization. This lets "Glen Cove" match a city field of
// "Glen Cove, North Shore" while rejecting a different city entirely.
func CityMatches(city, expected string) bool {
	normalized := Normalize(city)
	for _, token := range strings.Fields(Normalize(expected)) {
		if !strings.Contains(normalized, token) {
			return false
		}
	}

	return true
}
