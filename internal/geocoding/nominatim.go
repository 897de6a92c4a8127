package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/SophiaPhilean/UFOTRAC/internal/locality"
	"github.com/SophiaPhilean/UFOTRAC/internal/models"
)

// Half-width in degrees of the viewbox placed around the bias point.
const nominatimViewboxRadius = 0.5

// NominatimAdapter resolves place descriptions through OpenStreetMap's
// Nominatim API. This is a free community geocoder with usage limits
// (1 request/second for fair use), which is why it sits last in the
// chain.
type NominatimAdapter struct {
	client  HTTPClient // HTTP client for making requests
	baseURL string     // Base URL for the Nominatim API
	filter  locality.Filter
	country string // Restricts results to the supported country
	perCap  int    // Max candidates returned by FindCandidates
	log     *slog.Logger
	// userAgent is required by Nominatim usage policy
	userAgent string
}

// nominatimResult represents one entry of the JSON response from the
// Nominatim API.
type nominatimResult struct {
	Lat         string `json:"lat"` // Latitude as string
	Lon         string `json:"lon"` // Longitude as string
	Class       string `json:"class"`
	Type        string `json:"type"`
	DisplayName string `json:"display_name"`
	Address     struct {
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
		State       string `json:"state"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// NewNominatimAdapter creates a new Nominatim geocoding adapter using the
// public API endpoint.
func NewNominatimAdapter(countryCode string, filter locality.Filter, perProviderCap int, log *slog.Logger) *NominatimAdapter {
	const timeout = 10

	return &NominatimAdapter{
		client:  &http.Client{Timeout: timeout * time.Second},
		baseURL: "https://nominatim.openstreetmap.org/search",
		filter:  filter,
		country: countryCode,
		perCap:  perProviderCap,
		log:     log,
		// User-Agent MUST include valid contact info per Nominatim usage policy:
		// https://operations.osmfoundation.org/policies/nominatim/
		userAgent: "UFOTRAC/1.0 (https://github.com/SophiaPhilean/UFOTRAC)",
	}
}

// NewNominatimAdapterWithClient creates a Nominatim adapter with a custom
// HTTP client. Useful for testing with mocked HTTP clients.
func NewNominatimAdapterWithClient(
	client HTTPClient,
	countryCode string,
	filter locality.Filter,
	perProviderCap int,
	log *slog.Logger,
) *NominatimAdapter {
	adapter := NewNominatimAdapter(countryCode, filter, perProviderCap, log)
	adapter.client = client

	return adapter
}

// Name implements Adapter.
func (na *NominatimAdapter) Name() string { return "nominatim" }

// FindHit implements Adapter.
func (na *NominatimAdapter) FindHit(
	ctx context.Context,
	query string,
	near *models.Coordinates,
	expect models.Expectation,
) (*models.Hit, error) {
	results, err := na.search(ctx, query, near)
	if err != nil {
		return nil, err
	}

	for _, result := range results {
		hit, ok := na.toHit(result)
		if !ok {
			continue
		}
		if !expect.IsZero() && !na.filter.Accept(hit.Meta, expect) {
			na.log.DebugContext(ctx, "Nominatim hit rejected by locality filter", "label", hit.Label)
			continue
		}
		return &hit, nil
	}

	return nil, ErrNoMatch
}

// FindCandidates implements Adapter.
func (na *NominatimAdapter) FindCandidates(
	ctx context.Context,
	query string,
	near *models.Coordinates,
) ([]models.Candidate, error) {
	results, err := na.search(ctx, query, near)
	if err != nil {
		return nil, err
	}

	var candidates []models.Candidate
	for _, result := range results {
		if len(candidates) == na.perCap {
			break
		}
		if hit, ok := na.toHit(result); ok {
			candidates = append(candidates, models.Candidate{Hit: hit})
		}
	}

	if len(candidates) == 0 {
		return nil, ErrNoMatch
	}
	return candidates, nil
}

func (na *NominatimAdapter) search(
	ctx context.Context,
	query string,
	near *models.Coordinates,
) ([]nominatimResult, error) {
	na.log.DebugContext(ctx, "Geocoding using Nominatim", "query", query)

	reqURL, err := url.Parse(na.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	params := reqURL.Query()
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", strconv.Itoa(na.perCap))
	params.Set("addressdetails", "1") // Include detailed address breakdown for locality matching
	params.Set("countrycodes", na.country)
	if near != nil {
		// Unbounded viewbox: prefer results near the bias point without
		// excluding everything outside it.
		params.Set("viewbox", fmt.Sprintf("%f,%f,%f,%f",
			near.Lng-nominatimViewboxRadius, near.Lat+nominatimViewboxRadius,
			near.Lng+nominatimViewboxRadius, near.Lat-nominatimViewboxRadius))
	}
	reqURL.RawQuery = params.Encode()

	na.log.DebugContext(ctx, "Nominatim request URL", "url", reqURL.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set required headers per Nominatim usage policy
	req.Header.Set("User-Agent", na.userAgent)

	resp, err := na.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		na.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	na.log.DebugContext(ctx, "Nominatim raw response", "body", string(body))

	var results []nominatimResult
	if err = json.Unmarshal(body, &results); err != nil {
		na.log.ErrorContext(ctx, "Failed to parse Nominatim response", "error", err, "body", string(body))
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	return results, nil
}

// toHit converts one Nominatim result into a canonical Hit.
func (na *NominatimAdapter) toHit(result nominatimResult) (models.Hit, bool) {
	if !nominatimPrecise(result.Class, result.Type) {
		return models.Hit{}, false
	}
	if result.DisplayName == "" {
		return models.Hit{}, false
	}

	lat, err := strconv.ParseFloat(result.Lat, 64)
	if err != nil {
		return models.Hit{}, false
	}
	lon, err := strconv.ParseFloat(result.Lon, 64)
	if err != nil {
		return models.Hit{}, false
	}
	coords := models.Coordinates{Lat: lat, Lng: lon}
	if !coords.Valid() {
		return models.Hit{}, false
	}

	city := result.Address.City
	if city == "" {
		city = result.Address.Town
	}
	if city == "" {
		city = result.Address.Village
	}

	meta := models.Meta{
		City:        city,
		Region:      result.Address.State,
		RegionCode:  locality.RegionCode(result.Address.State),
		CountryCode: result.Address.CountryCode,
	}

	return models.Hit{
		Provider: na.Name(),
		Label:    result.DisplayName,
		Lat:      coords.Lat,
		Lng:      coords.Lng,
		Meta:     meta,
	}, true
}

// OSM classes whose entries name a specific place: a business, a building
// or another concrete feature.
var nominatimSpecificClasses = map[string]struct{}{
	"amenity":  {},
	"shop":     {},
	"building": {},
	"tourism":  {},
	"leisure":  {},
	"office":   {},
	"craft":    {},
	"historic": {},
}

// nominatimPrecise is the Nominatim precision test over the OSM
// class/type pair. Streets (class "highway") and individual houses
// (class "place", type "house") count as specific; city-, region- and
// boundary-level entries are coarse.
func nominatimPrecise(class, typ string) bool {
	if _, ok := nominatimSpecificClasses[class]; ok {
		return true
	}
	if class == "highway" {
		return true
	}
	if class == "place" && typ == "house" {
		return true
	}

	return false
}
