// Package geocoding wraps heterogeneous external geocoding services
// behind a canonical adapter interface. Each adapter maps its provider's
// bespoke response shape into Hit/Candidate records and applies a
// provider-specific precision test that separates specific places
// (businesses, buildings, street addresses) from coarse area matches
// (cities, regions, countries).
package geocoding

import (
	"context"
	"errors"
	"net/http"

	"github.com/SophiaPhilean/UFOTRAC/internal/models"
)

// Adapter is the canonical interface over one external geocoding service.
type Adapter interface {
	// Name identifies the provider in logs, metrics and Hit records.
	Name() string

	// FindHit issues one request (optionally biased by near) and returns
	// the first response entry that passes the precision test and, when
	// expect is constrained, the locality acceptance filter. It returns
	// ErrNoMatch when the provider answered but nothing qualified.
	FindHit(ctx context.Context, query string, near *models.Coordinates, expect models.Expectation) (*models.Hit, error)

	// FindCandidates issues the same request and returns every entry
	// passing the precision test, capped per provider. Locality is not
	// applied here; the aggregator scores it later.
	FindCandidates(ctx context.Context, query string, near *models.Coordinates) ([]models.Candidate, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ErrNoMatch is returned by an adapter when the provider answered but no
// entry passed the precision and locality checks. It is an expected
// outcome, not a failure: callers advance to the next adapter.
var ErrNoMatch = errors.New("no precise match from provider")
