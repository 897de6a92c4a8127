package geocoding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SophiaPhilean/UFOTRAC/internal/locality"
	"github.com/SophiaPhilean/UFOTRAC/internal/models"
	"golang.org/x/time/rate"
	"googlemaps.github.io/maps"
)

// Radius in meters applied around the bias point for Google text search.
const googleBiasRadius = 25000

// GoogleAdapter resolves place descriptions through the Google Places
// text-search API. It ranks first in the chain: Google is the strongest
// source for business and point-of-interest queries.
//
// Text search returns only a formatted address string, so locality facts
// are recovered with the best-effort address parser.
type GoogleAdapter struct {
	client  GoogleAPIClient // client is the Google Maps API client
	filter  locality.Filter
	limiter *rate.Limiter
	perCap  int          // max candidates returned by FindCandidates
	log     *slog.Logger // log is the logger for logging operations
}

// GoogleAPIClient is the subset of the Google Maps client used by the
// adapter, extracted for mocking in tests.
type GoogleAPIClient interface {
	TextSearch(ctx context.Context, r *maps.TextSearchRequest) (maps.PlacesSearchResponse, error)
}

// Place types Google assigns to specific places: businesses, buildings
// and street addresses. A result carrying none of these is a coarse area
// match (locality, administrative area, country) and is unusable.
var googleSpecificTypes = map[string]struct{}{
	"establishment":     {},
	"point_of_interest": {},
	"premise":           {},
	"subpremise":        {},
	"street_address":    {},
	"food":              {},
	"store":             {},
	"lodging":           {},
}

// NewGoogleAdapter creates a Google Places adapter around an existing
// Maps API client. The limiter bounds outbound request rate, matching the
// API's paid quota.
func NewGoogleAdapter(
	client GoogleAPIClient,
	filter locality.Filter,
	limiter *rate.Limiter,
	perProviderCap int,
	log *slog.Logger,
) *GoogleAdapter {
	return &GoogleAdapter{client: client, filter: filter, limiter: limiter, perCap: perProviderCap, log: log}
}

// Name implements Adapter.
func (ga *GoogleAdapter) Name() string { return "google" }

// FindHit implements Adapter.
func (ga *GoogleAdapter) FindHit(
	ctx context.Context,
	query string,
	near *models.Coordinates,
	expect models.Expectation,
) (*models.Hit, error) {
	results, err := ga.search(ctx, query, near)
	if err != nil {
		return nil, err
	}

	for _, result := range results {
		hit, ok := ga.toHit(result)
		if !ok {
			continue
		}
		if !expect.IsZero() && !ga.filter.Accept(hit.Meta, expect) {
			ga.log.DebugContext(ctx, "Google hit rejected by locality filter", "label", hit.Label)
			continue
		}
		return &hit, nil
	}

	return nil, ErrNoMatch
}

// FindCandidates implements Adapter.
func (ga *GoogleAdapter) FindCandidates(
	ctx context.Context,
	query string,
	near *models.Coordinates,
) ([]models.Candidate, error) {
	results, err := ga.search(ctx, query, near)
	if err != nil {
		return nil, err
	}

	var candidates []models.Candidate
	for _, result := range results {
		if len(candidates) == ga.perCap {
			break
		}
		if hit, ok := ga.toHit(result); ok {
			candidates = append(candidates, models.Candidate{Hit: hit})
		}
	}

	if len(candidates) == 0 {
		return nil, ErrNoMatch
	}
	return candidates, nil
}

func (ga *GoogleAdapter) search(
	ctx context.Context,
	query string,
	near *models.Coordinates,
) ([]maps.PlacesSearchResult, error) {
	if err := ga.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	ga.log.DebugContext(ctx, "Searching using Google Places", "query", query)

	req := maps.TextSearchRequest{Query: query}
	if near != nil {
		req.Location = &maps.LatLng{Lat: near.Lat, Lng: near.Lng}
		req.Radius = googleBiasRadius
	}

	resp, err := ga.client.TextSearch(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute text search: %w", err)
	}

	return resp.Results, nil
}

// toHit converts one text-search result into a canonical Hit. The second
// return value is false for coarse area matches and results without
// usable coordinates.
func (ga *GoogleAdapter) toHit(result maps.PlacesSearchResult) (models.Hit, bool) {
	if !googlePrecise(result.Types) {
		return models.Hit{}, false
	}

	coords := models.Coordinates{Lat: result.Geometry.Location.Lat, Lng: result.Geometry.Location.Lng}
	if !coords.Valid() {
		return models.Hit{}, false
	}

	label := result.FormattedAddress
	switch {
	case result.Name != "" && label != "":
		label = result.Name + ", " + label
	case result.Name != "":
		label = result.Name
	case label == "":
		return models.Hit{}, false
	}

	return models.Hit{
		Provider: ga.Name(),
		Label:    label,
		Lat:      coords.Lat,
		Lng:      coords.Lng,
		Meta:     locality.ParseAddress(result.FormattedAddress),
	}, true
}

// googlePrecise is the Google precision test: a result is a specific
// place iff its type list carries at least one specific-place type.
func googlePrecise(types []string) bool {
	for _, t := range types {
		if _, ok := googleSpecificTypes[t]; ok {
			return true
		}
	}

	return false
}
