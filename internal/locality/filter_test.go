package locality_test

import (
	"testing"

	"github.com/SophiaPhilean/UFOTRAC/internal/locality"
	"github.com/SophiaPhilean/UFOTRAC/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFilterAccept(t *testing.T) {
	filter := locality.NewFilter("us")

	tests := []struct {
		name     string
		meta     models.Meta
		expect   models.Expectation
		accepted bool
	}{
		{
			name:     "no expectation accepts anything",
			meta:     models.Meta{City: "Austin", RegionCode: "TX", CountryCode: "us"},
			expect:   models.Expectation{},
			accepted: true,
		},
		{
			name:     "region match by code",
			meta:     models.Meta{RegionCode: "NY", CountryCode: "us"},
			expect:   models.Expectation{RegionCode: "ny"},
			accepted: true,
		},
		{
			name:     "region match by full name",
			meta:     models.Meta{Region: "New York", CountryCode: "us"},
			expect:   models.Expectation{RegionCode: "NY"},
			accepted: true,
		},
		{
			name:     "region mismatch",
			meta:     models.Meta{RegionCode: "TX", Region: "Texas", CountryCode: "us"},
			expect:   models.Expectation{RegionCode: "CA"},
			accepted: false,
		},
		{
			name:     "wrong country rejected when region expected",
			meta:     models.Meta{RegionCode: "NY", CountryCode: "ca"},
			expect:   models.Expectation{RegionCode: "NY"},
			accepted: false,
		},
		{
			name:     "missing country rejected when region expected",
			meta:     models.Meta{RegionCode: "NY"},
			expect:   models.Expectation{RegionCode: "NY"},
			accepted: false,
		},
		{
			name:     "city token subset matches",
			meta:     models.Meta{City: "Glen Cove", CountryCode: "us"},
			expect:   models.Expectation{City: "glen cove"},
			accepted: true,
		},
		{
			name:     "city with punctuation matches",
			meta:     models.Meta{City: "St. Paul", CountryCode: "us"},
			expect:   models.Expectation{City: "st paul"},
			accepted: true,
		},
		{
			name:     "different city rejected",
			meta:     models.Meta{City: "Hempstead", CountryCode: "us"},
			expect:   models.Expectation{City: "Glen Cove"},
			accepted: false,
		},
		{
			name:     "empty hit city rejected when city expected",
			meta:     models.Meta{RegionCode: "NY", CountryCode: "us"},
			expect:   models.Expectation{City: "Glen Cove"},
			accepted: false,
		},
		{
			name:     "city and region both constrained",
			meta:     models.Meta{City: "Rivertown", Region: "New York", CountryCode: "us"},
			expect:   models.Expectation{City: "Rivertown", RegionCode: "NY"},
			accepted: true,
		},
		{
			name:     "city matches but region does not",
			meta:     models.Meta{City: "Rivertown", RegionCode: "NJ", CountryCode: "us"},
			expect:   models.Expectation{City: "Rivertown", RegionCode: "NY"},
			accepted: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.accepted, filter.Accept(tc.meta, tc.expect))
		})
	}
}

func TestCityMatches(t *testing.T) {
	assert.True(t, locality.CityMatches("Glen Cove", "Glen Cove"))
	assert.True(t, locality.CityMatches("North Glen Cove", "glen cove"))
	assert.False(t, locality.CityMatches("Hempstead", "Glen Cove"))
	assert.False(t, locality.CityMatches("", "Glen Cove"))
}

func TestRegionMatches(t *testing.T) {
	assert.True(t, locality.RegionMatches(models.Meta{RegionCode: "ny"}, "NY"))
	assert.True(t, locality.RegionMatches(models.Meta{Region: "new york"}, "NY"))
	assert.False(t, locality.RegionMatches(models.Meta{Region: "New Jersey"}, "NY"))
	assert.False(t, locality.RegionMatches(models.Meta{}, "NY"))
}
