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

// HereBaseURL -- HERE geocoding API base URL.
const HereBaseURL = "https://geocode.search.hereapi.com/v1/geocode"

// HereAdapter resolves place descriptions through the HERE geocoding API.
// HERE returns fully structured addresses, so locality facts are read
// directly from the payload.
type HereAdapter struct {
	client  HTTPClient // HTTP client for making requests
	baseURL string     // Base URL for the HERE API
	apiKey  string     // API key with geocoding access
	filter  locality.Filter
	perCap  int          // Max candidates returned by FindCandidates
	log     *slog.Logger // Logger for logging operations
}

// Common errors for the HERE adapter.
var (
	ErrHereUnauthorized = errors.New("here API unauthorized (invalid API key)")
)

// HERE API response (simplified for the geocoding use-case).
type hereResponse struct {
	Items []hereItem `json:"items"`
}

type hereItem struct {
	Title      string `json:"title"`
	ResultType string `json:"resultType"`
	Address    struct {
		Label       string `json:"label"`
		City        string `json:"city"`
		State       string `json:"state"`
		StateCode   string `json:"stateCode"`
		CountryCode string `json:"countryCode"` // ISO 3166-1 alpha-3, e.g. "USA"
	} `json:"address"`
	Position struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"position"`
}

// NewHereAdapter creates a new HERE geocoding adapter.
func NewHereAdapter(apiKey string, filter locality.Filter, perProviderCap int, log *slog.Logger) *HereAdapter {
	const timeout = 10

	return &HereAdapter{
		client:  &http.Client{Timeout: timeout * time.Second},
		baseURL: HereBaseURL,
		apiKey:  apiKey,
		filter:  filter,
		perCap:  perProviderCap,
		log:     log,
	}
}

// NewHereAdapterWithClient allows injecting a custom HTTP client.
func NewHereAdapterWithClient(
	client HTTPClient,
	apiKey string,
	filter locality.Filter,
	perProviderCap int,
	log *slog.Logger,
) *HereAdapter {
	adapter := NewHereAdapter(apiKey, filter, perProviderCap, log)
	adapter.client = client

	return adapter
}

// Name implements Adapter.
func (ha *HereAdapter) Name() string { return "here" }

// FindHit implements Adapter.
func (ha *HereAdapter) FindHit(
	ctx context.Context,
	query string,
	near *models.Coordinates,
	expect models.Expectation,
) (*models.Hit, error) {
	items, err := ha.search(ctx, query, near)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		hit, ok := ha.toHit(item)
		if !ok {
			continue
		}
		if !expect.IsZero() && !ha.filter.Accept(hit.Meta, expect) {
			ha.log.DebugContext(ctx, "HERE hit rejected by locality filter", "label", hit.Label)
			continue
		}
		return &hit, nil
	}

	return nil, ErrNoMatch
}

// FindCandidates implements Adapter.
func (ha *HereAdapter) FindCandidates(
	ctx context.Context,
	query string,
	near *models.Coordinates,
) ([]models.Candidate, error) {
	items, err := ha.search(ctx, query, near)
	if err != nil {
		return nil, err
	}

	var candidates []models.Candidate
	for _, item := range items {
		if len(candidates) == ha.perCap {
			break
		}
		if hit, ok := ha.toHit(item); ok {
			candidates = append(candidates, models.Candidate{Hit: hit})
		}
	}

	if len(candidates) == 0 {
		return nil, ErrNoMatch
	}
	return candidates, nil
}

func (ha *HereAdapter) search(ctx context.Context, query string, near *models.Coordinates) ([]hereItem, error) {
	ha.log.DebugContext(ctx, "Geocoding using HERE", "query", query)

	reqURL, err := url.Parse(ha.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	params := reqURL.Query()
	params.Set("q", query)
	params.Set("apiKey", ha.apiKey)
	params.Set("limit", strconv.Itoa(ha.perCap))
	if near != nil {
		params.Set("at", fmt.Sprintf("%f,%f", near.Lat, near.Lng))
	}
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := ha.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrHereUnauthorized
	default:
		body, _ := io.ReadAll(resp.Body)
		ha.log.ErrorContext(ctx, "HERE API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("here API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	ha.log.DebugContext(ctx, "HERE raw response", "body", string(body))

	var result hereResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode here response: %w", err)
	}

	return result.Items, nil
}

// toHit converts one HERE item into a canonical Hit.
func (ha *HereAdapter) toHit(item hereItem) (models.Hit, bool) {
	if !herePrecise(item.ResultType) {
		return models.Hit{}, false
	}

	coords := models.Coordinates{Lat: item.Position.Lat, Lng: item.Position.Lng}
	if !coords.Valid() {
		return models.Hit{}, false
	}

	label := item.Address.Label
	if label == "" {
		label = item.Title
	}
	if label == "" {
		return models.Hit{}, false
	}

	meta := models.Meta{
		City:        item.Address.City,
		Region:      item.Address.State,
		RegionCode:  item.Address.StateCode,
		CountryCode: hereCountry(item.Address.CountryCode),
	}
	if meta.Region == "" && meta.RegionCode != "" {
		meta.Region = locality.RegionName(meta.RegionCode)
	}

	return models.Hit{
		Provider: ha.Name(),
		Label:    label,
		Lat:      coords.Lat,
		Lng:      coords.Lng,
		Meta:     meta,
	}, true
}

// herePrecise is the HERE precision test: "houseNumber", "street" and
// "place" results are specific; "locality", "administrativeArea" and
// postal-code results are coarse area matches.
func herePrecise(resultType string) bool {
	switch resultType {
	case "houseNumber", "street", "place":
		return true
	}

	return false
}

// hereCountry maps HERE's alpha-3 country codes to the lowercase
// two-letter form used in Meta. Only the supported country needs an
// explicit mapping; anything else is passed through lowercased, which the
// locality filter will reject when a region is expected.
func hereCountry(code string) string {
	code = strings.ToLower(code)
	if code == "usa" {
		return "us"
	}

	return code
}
