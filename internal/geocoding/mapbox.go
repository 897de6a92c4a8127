package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SophiaPhilean/UFOTRAC/internal/locality"
	"github.com/SophiaPhilean/UFOTRAC/internal/models"
)

// MapboxBaseURL -- Mapbox forward-geocoding API base URL.
const MapboxBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

// MapboxAdapter resolves place descriptions through the Mapbox forward
// geocoding API. Mapbox returns structured context entries, so no
// address-string parsing is needed.
type MapboxAdapter struct {
	client  HTTPClient // HTTP client for making requests
	baseURL string     // Base URL for the Mapbox API
	token   string     // Access token with geocoding scope
	filter  locality.Filter
	country string       // Restricts results to the supported country
	perCap  int          // Max candidates returned by FindCandidates
	log     *slog.Logger // Logger for logging operations
}

// Common errors for the Mapbox adapter.
var (
	ErrMapboxUnauthorized = errors.New("mapbox API unauthorized (invalid access token)")
)

// Mapbox GeoJSON response (simplified for the geocoding use-case).
type mapboxResponse struct {
	Features []mapboxFeature `json:"features"`
}

type mapboxFeature struct {
	PlaceType []string        `json:"place_type"`
	PlaceName string          `json:"place_name"`
	Center    []float64       `json:"center"` // [lng, lat]
	Context   []mapboxContext `json:"context"`
}

type mapboxContext struct {
	ID        string `json:"id"` // e.g. "place.123", "region.456", "country.789"
	Text      string `json:"text"`
	ShortCode string `json:"short_code"` // e.g. "US-NY" for regions, "us" for countries
}

// NewMapboxAdapter creates a new Mapbox geocoding adapter.
func NewMapboxAdapter(
	token, countryCode string,
	filter locality.Filter,
	perProviderCap int,
	log *slog.Logger,
) *MapboxAdapter {
	const timeout = 10

	return &MapboxAdapter{
		client:  &http.Client{Timeout: timeout * time.Second},
		baseURL: MapboxBaseURL,
		token:   token,
		filter:  filter,
		country: countryCode,
		perCap:  perProviderCap,
		log:     log,
	}
}

// NewMapboxAdapterWithClient allows injecting a custom HTTP client.
func NewMapboxAdapterWithClient(
	client HTTPClient,
	token, countryCode string,
	filter locality.Filter,
	perProviderCap int,
	log *slog.Logger,
) *MapboxAdapter {
	adapter := NewMapboxAdapter(token, countryCode, filter, perProviderCap, log)
	adapter.client = client

	return adapter
}

// Name implements Adapter.
func (ma *MapboxAdapter) Name() string { return "mapbox" }

// FindHit implements Adapter.
func (ma *MapboxAdapter) FindHit(
	ctx context.Context,
	query string,
	near *models.Coordinates,
	expect models.Expectation,
) (*models.Hit, error) {
	features, err := ma.search(ctx, query, near)
	if err != nil {
		return nil, err
	}

	for _, feature := range features {
		hit, ok := ma.toHit(feature)
		if !ok {
			continue
		}
		if !expect.IsZero() && !ma.filter.Accept(hit.Meta, expect) {
			ma.log.DebugContext(ctx, "Mapbox hit rejected by locality filter", "label", hit.Label)
			continue
		}
		return &hit, nil
	}

	return nil, ErrNoMatch
}

// FindCandidates implements Adapter.
func (ma *MapboxAdapter) FindCandidates(
	ctx context.Context,
	query string,
	near *models.Coordinates,
) ([]models.Candidate, error) {
	features, err := ma.search(ctx, query, near)
	if err != nil {
		return nil, err
	}

	var candidates []models.Candidate
	for _, feature := range features {
		if len(candidates) == ma.perCap {
			break
		}
		if hit, ok := ma.toHit(feature); ok {
			candidates = append(candidates, models.Candidate{Hit: hit})
		}
	}

	if len(candidates) == 0 {
		return nil, ErrNoMatch
	}
	return candidates, nil
}

func (ma *MapboxAdapter) search(
	ctx context.Context,
	query string,
	near *models.Coordinates,
) ([]mapboxFeature, error) {
	ma.log.DebugContext(ctx, "Geocoding using Mapbox", "query", query)

	reqURL, err := url.Parse(ma.baseURL + "/" + url.PathEscape(query) + ".json")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	params := reqURL.Query()
	params.Set("access_token", ma.token)
	params.Set("limit", strconv.Itoa(ma.perCap))
	params.Set("country", ma.country)
	params.Set("types", "poi,address,place")
	if near != nil {
		params.Set("proximity", fmt.Sprintf("%f,%f", near.Lng, near.Lat))
	}
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := ma.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrMapboxUnauthorized
	default:
		body, _ := io.ReadAll(resp.Body)
		ma.log.ErrorContext(ctx, "Mapbox API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("mapbox API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	ma.log.DebugContext(ctx, "Mapbox raw response", "body", string(body))

	var result mapboxResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode mapbox response: %w", err)
	}

	return result.Features, nil
}

// toHit converts one GeoJSON feature into a canonical Hit.
func (ma *MapboxAdapter) toHit(feature mapboxFeature) (models.Hit, bool) {
	const coordsListLength = 2

	if !mapboxPrecise(feature.PlaceType) {
		return models.Hit{}, false
	}
	if len(feature.Center) != coordsListLength || feature.PlaceName == "" {
		return models.Hit{}, false
	}

	coords := models.Coordinates{Lat: feature.Center[1], Lng: feature.Center[0]}
	if !coords.Valid() {
		return models.Hit{}, false
	}

	return models.Hit{
		Provider: ma.Name(),
		Label:    feature.PlaceName,
		Lat:      coords.Lat,
		Lng:      coords.Lng,
		Meta:     mapboxMeta(feature.Context),
	}, true
}

// mapboxPrecise is the Mapbox precision test: specific places carry the
// "poi" or "address" place type; "place", "region" and "country" features
// are coarse area matches.
func mapboxPrecise(placeTypes []string) bool {
	for _, t := range placeTypes {
		if t == "poi" || t == "address" {
			return true
		}
	}

	return false
}

// mapboxMeta extracts locality facts from a feature's context entries.
// Entry IDs are namespaced: "place.*" is the city, "region.*" the state
// (short_code "US-NY"), "country.*" the country.
func mapboxMeta(entries []mapboxContext) models.Meta {
	var meta models.Meta
	for _, entry := range entries {
		switch {
		case strings.HasPrefix(entry.ID, "place."):
			meta.City = entry.Text
		case strings.HasPrefix(entry.ID, "region."):
			meta.Region = entry.Text
			if _, code, found := strings.Cut(entry.ShortCode, "-"); found {
				meta.RegionCode = strings.ToUpper(code)
			} else if meta.RegionCode == "" {
				meta.RegionCode = locality.RegionCode(entry.Text)
			}
		case strings.HasPrefix(entry.ID, "country."):
			meta.CountryCode = strings.ToLower(entry.ShortCode)
		}
	}

	return meta
}
