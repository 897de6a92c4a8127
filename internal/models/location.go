package models

// Coordinates represents a geographical point defined by its latitude and longitude.
type Coordinates struct {
	Lat float64 `json:"lat"` // Latitude of the geographical point.
	Lng float64 `json:"lng"` // Longitude of the geographical point.
}

// Valid reports whether the coordinates lie within the valid WGS84 ranges.
// NaN and infinities fail the range comparisons, so they are rejected too.
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Meta holds the normalized locality facts extracted from a provider's raw
// response. Region and RegionCode are kept in sync via the locality tables;
// CountryCode is a lowercase ISO-style code. Any field may be empty when the
// provider did not expose it.
type Meta struct {
	City        string `json:"city,omitempty"`
	Region      string `json:"region,omitempty"`
	RegionCode  string `json:"region_code,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}

// Expectation is the caller-supplied locality constraint. An empty field
// means "do not constrain on this field".
type Expectation struct {
	City       string
	RegionCode string
}

// IsZero reports whether no constraint was supplied at all.
func (e Expectation) IsZero() bool {
	return e.City == "" && e.RegionCode == ""
}

// Hit is a single authoritative match for a place description.
type Hit struct {
	Provider string  `json:"provider"`     // Name of the adapter that produced the hit.
	Label    string  `json:"address_text"` // Human-readable place description, never empty.
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Meta     Meta    `json:"meta"`
}

// Candidate is a Hit plus a relevance score, used only in candidate-list
// mode. Higher scores rank first.
type Candidate struct {
	Hit
	Score float64 `json:"score"`
}
