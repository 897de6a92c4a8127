package geocoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The precision tests are the load-bearing per-provider heuristic: each
// must separate specific places (businesses, buildings, street
// addresses) from coarse area matches (cities, regions, countries).

func TestGooglePrecise(t *testing.T) {
	t.Run("specific places", func(t *testing.T) {
		assert.True(t, googlePrecise([]string{"cafe", "food", "establishment"}))
		assert.True(t, googlePrecise([]string{"street_address"}))
		assert.True(t, googlePrecise([]string{"premise", "political"}))
		assert.True(t, googlePrecise([]string{"point_of_interest"}))
	})

	t.Run("coarse areas", func(t *testing.T) {
		assert.False(t, googlePrecise([]string{"locality", "political"}))
		assert.False(t, googlePrecise([]string{"administrative_area_level_1", "political"}))
		assert.False(t, googlePrecise([]string{"country", "political"}))
		assert.False(t, googlePrecise([]string{"postal_code"}))
		assert.False(t, googlePrecise(nil))
	})
}

func TestMapboxPrecise(t *testing.T) {
	t.Run("specific places", func(t *testing.T) {
		assert.True(t, mapboxPrecise([]string{"poi"}))
		assert.True(t, mapboxPrecise([]string{"address"}))
		assert.True(t, mapboxPrecise([]string{"poi", "landmark"}))
	})

	t.Run("coarse areas", func(t *testing.T) {
		assert.False(t, mapboxPrecise([]string{"place"}))
		assert.False(t, mapboxPrecise([]string{"region"}))
		assert.False(t, mapboxPrecise([]string{"country"}))
		assert.False(t, mapboxPrecise(nil))
	})
}

func TestHerePrecise(t *testing.T) {
	t.Run("specific places", func(t *testing.T) {
		assert.True(t, herePrecise("houseNumber"))
		assert.True(t, herePrecise("street"))
		assert.True(t, herePrecise("place"))
	})

	t.Run("coarse areas", func(t *testing.T) {
		assert.False(t, herePrecise("locality"))
		assert.False(t, herePrecise("administrativeArea"))
		assert.False(t, herePrecise("postalCodePoint"))
		assert.False(t, herePrecise(""))
	})
}

func TestNominatimPrecise(t *testing.T) {
	t.Run("specific places", func(t *testing.T) {
		assert.True(t, nominatimPrecise("amenity", "post_office"))
		assert.True(t, nominatimPrecise("shop", "coffee"))
		assert.True(t, nominatimPrecise("building", "yes"))
		assert.True(t, nominatimPrecise("highway", "residential"))
		assert.True(t, nominatimPrecise("place", "house"))
		assert.True(t, nominatimPrecise("tourism", "museum"))
	})

	t.Run("coarse areas", func(t *testing.T) {
		assert.False(t, nominatimPrecise("place", "city"))
		assert.False(t, nominatimPrecise("place", "town"))
		assert.False(t, nominatimPrecise("boundary", "administrative"))
		assert.False(t, nominatimPrecise("", ""))
	})
}

func TestMapboxMeta(t *testing.T) {
	entries := []mapboxContext{
		{ID: "neighborhood.1", Text: "Downtown"},
		{ID: "place.2", Text: "Glen Cove"},
		{ID: "region.3", Text: "New York", ShortCode: "US-NY"},
		{ID: "country.4", Text: "United States", ShortCode: "US"},
	}

	meta := mapboxMeta(entries)

	assert.Equal(t, "Glen Cove", meta.City)
	assert.Equal(t, "New York", meta.Region)
	assert.Equal(t, "NY", meta.RegionCode)
	assert.Equal(t, "us", meta.CountryCode)
}

func TestHereCountry(t *testing.T) {
	assert.Equal(t, "us", hereCountry("USA"))
	assert.Equal(t, "can", hereCountry("CAN"))
	assert.Equal(t, "", hereCountry(""))
}
