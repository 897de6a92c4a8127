package geocoding

import (
	"fmt"
	"log/slog"

	"github.com/SophiaPhilean/UFOTRAC/internal/config"
	"github.com/SophiaPhilean/UFOTRAC/internal/locality"
	"golang.org/x/time/rate"
	"googlemaps.github.io/maps"
)

// NewAdapters builds the adapter chain from configuration. The slice
// order IS the priority contract used by the strict resolver and the
// candidate scorer:
//
//  1. Google Places - commercial place search, strongest on businesses.
//  2. Mapbox - map-vendor forward geocoder, strong on street addresses.
//  3. HERE - commercial text geocoder, fully structured addresses.
//  4. Nominatim - open community geocoder, keyless, rate-constrained.
//
// A provider whose credential is missing is skipped, not an error; an
// empty chain is the caller's problem to reject.
func NewAdapters(cfg *config.Config, log *slog.Logger) ([]Adapter, error) {
	filter := locality.NewFilter(cfg.CountryCode)
	var adapters []Adapter

	if cfg.GoogleAPIKey != "" {
		client, err := maps.NewClient(maps.WithAPIKey(cfg.GoogleAPIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
		}
		limiter := rate.NewLimiter(rate.Limit(cfg.GoogleRateLimit), cfg.GoogleRateLimit)
		adapters = append(adapters, NewGoogleAdapter(client, filter, limiter, cfg.ProviderCap, log))
	} else {
		log.Warn("Google API key not set, excluding Google adapter from the chain")
	}

	if cfg.MapboxToken != "" {
		adapters = append(adapters, NewMapboxAdapter(cfg.MapboxToken, cfg.CountryCode, filter, cfg.ProviderCap, log))
	} else {
		log.Warn("Mapbox token not set, excluding Mapbox adapter from the chain")
	}

	if cfg.HereAPIKey != "" {
		adapters = append(adapters, NewHereAdapter(cfg.HereAPIKey, filter, cfg.ProviderCap, log))
	} else {
		log.Warn("HERE API key not set, excluding HERE adapter from the chain")
	}

	if cfg.NominatimEnabled {
		adapters = append(adapters, NewNominatimAdapter(cfg.CountryCode, filter, cfg.ProviderCap, log))
	}

	return adapters, nil
}
