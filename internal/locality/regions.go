// Package locality normalizes and matches administrative-region data for
// the supported country (US). The tables are process-wide, read-only and
// initialized once at startup.
package locality

import "strings"

// regionNames maps USPS state codes to full state names (50 states + DC).
var regionNames = map[string]string{
	"AL": "Alabama",
	"AK": "Alaska",
	"AZ": "Arizona",
	"AR": "Arkansas",
	"CA": "California",
	"CO": "Colorado",
	"CT": "Connecticut",
	"DE": "Delaware",
	"DC": "District of Columbia",
	"FL": "Florida",
	"GA": "Georgia",
	"HI": "Hawaii",
	"ID": "Idaho",
	"IL": "Illinois",
	"IN": "Indiana",
	"IA": "Iowa",
	"KS": "Kansas",
	"KY": "Kentucky",
	"LA": "Louisiana",
	"ME": "Maine",
	"MD": "Maryland",
	"MA": "Massachusetts",
	"MI": "Michigan",
	"MN": "Minnesota",
	"MS": "Mississippi",
	"MO": "Missouri",
	"MT": "Montana",
	"NE": "Nebraska",
	"NV": "Nevada",
	"NH": "New Hampshire",
	"NJ": "New Jersey",
	"NM": "New Mexico",
	"NY": "New York",
	"NC": "North Carolina",
	"ND": "North Dakota",
	"OH": "Ohio",
	"OK": "Oklahoma",
	"OR": "Oregon",
	"PA": "Pennsylvania",
	"RI": "Rhode Island",
	"SC": "South Carolina",
	"SD": "South Dakota",
	"TN": "Tennessee",
	"TX": "Texas",
	"UT": "Utah",
	"VT": "Vermont",
	"VA": "Virginia",
	"WA": "Washington",
	"WV": "West Virginia",
	"WI": "Wisconsin",
	"WY": "Wyoming",
}

// regionCodes is the reverse table, keyed by the normalized full name.
var regionCodes = func() map[string]string {
	codes := make(map[string]string, len(regionNames))
	for code, name := range regionNames {
		codes[Normalize(name)] = code
	}
	return codes
}()

// RegionName returns the full name for a two-letter region code, or an
// empty string if the code is unknown.
func RegionName(code string) string {
	return regionNames[strings.ToUpper(strings.TrimSpace(code))]
}

// RegionCode returns the two-letter code for a region name, or an empty
// string if the name is unknown. The lookup is case- and
// punctuation-insensitive.
func RegionCode(name string) string {
	return regionCodes[Normalize(name)]
}
