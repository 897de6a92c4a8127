// Package service implements the two resolution modes over the adapter
// chain: strict ordered fallback with short-circuit, and concurrent
// candidate aggregation with scoring and deduplication.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SophiaPhilean/UFOTRAC/internal/geocoding"
	"github.com/SophiaPhilean/UFOTRAC/internal/locality"
	"github.com/SophiaPhilean/UFOTRAC/internal/metrics"
	"github.com/SophiaPhilean/UFOTRAC/internal/models"
)

// ErrNotFound is returned when every adapter has been exhausted without
// an acceptable hit or candidate. It is an expected outcome the caller
// should surface as 404, not a failure.
var ErrNotFound = errors.New("no precise match found")

// Request is one resolution request after validation.
type Request struct {
	Query  string              // Free-text place description, non-empty.
	Near   *models.Coordinates // Optional bias point.
	Expect models.Expectation  // Optional locality constraint.
}

// Weights are the candidate-mode scoring knobs.
type Weights struct {
	RegionBoost float64 // Added for an exact region code/name match.
	CityBoost   float64 // Added for a city-token match.
}

// Resolver orchestrates the adapter chain. The chain order is the
// priority contract: earlier adapters win ties in both modes.
type Resolver struct {
	log           *slog.Logger
	adapters      []geocoding.Adapter
	metrics       *metrics.Metrics
	timeout       time.Duration // per-adapter deadline
	weights       Weights
	country       string // lowercase ISO code of the supported country
	maxCandidates int
}

// NewResolver creates a Resolver over the given adapter chain.
func NewResolver(
	log *slog.Logger,
	adapters []geocoding.Adapter,
	appMetrics *metrics.Metrics,
	adapterTimeout time.Duration,
	weights Weights,
	countryCode string,
	maxCandidates int,
) *Resolver {
	return &Resolver{
		log:           log,
		adapters:      adapters,
		metrics:       appMetrics,
		timeout:       adapterTimeout,
		weights:       weights,
		country:       strings.ToLower(countryCode),
		maxCandidates: maxCandidates,
	}
}

// Resolve runs strict mode: adapters are tried sequentially in priority
// order and the first precise, locality-accepted hit wins. Each adapter
// call runs in its own failure boundary with a bounded deadline; any
// adapter error is downgraded to "no hit" so one broken provider never
// takes down the chain.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*models.Hit, error) {
	query := geocoding.BuildQuery(req.Query, req.Expect)

	for _, adapter := range r.adapters {
		hit := r.findHit(ctx, adapter, query, req)
		if hit != nil {
			r.log.InfoContext(ctx, "Resolved place", "provider", adapter.Name(), "label", hit.Label)
			return hit, nil
		}
	}

	return nil, ErrNotFound
}

// Candidates runs candidate mode: every adapter is queried concurrently,
// the results are scored against the locality expectation, deduplicated
// and returned as a capped, descending-score list.
func (r *Resolver) Candidates(ctx context.Context, req Request) ([]models.Candidate, error) {
	query := geocoding.BuildQuery(req.Query, req.Expect)

	perAdapter := make([][]models.Candidate, len(r.adapters))
	var wgr sync.WaitGroup
	for i, adapter := range r.adapters {
		wgr.Add(1)
		go func(idx int, adapter geocoding.Adapter) {
			defer wgr.Done()
			perAdapter[idx] = r.findCandidates(ctx, adapter, query, req.Near)
		}(i, adapter)
	}
	wgr.Wait()

	ranked := r.rank(perAdapter, req.Expect)
	if len(ranked) == 0 {
		return nil, ErrNotFound
	}

	return ranked, nil
}

// findHit is the strict-mode failure boundary around one adapter call.
func (r *Resolver) findHit(ctx context.Context, adapter geocoding.Adapter, query string, req Request) *models.Hit {
	actx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	startTime := time.Now()
	hit, err := adapter.FindHit(actx, query, req.Near, req.Expect)
	r.metrics.RequestSeconds.WithLabelValues(adapter.Name()).Observe(time.Since(startTime).Seconds())

	if err != nil {
		r.observeAdapterError(ctx, adapter.Name(), err)
		return nil
	}

	return hit
}

// findCandidates is the candidate-mode failure boundary: a failing
// adapter contributes an empty list rather than aborting the fan-out.
func (r *Resolver) findCandidates(
	ctx context.Context,
	adapter geocoding.Adapter,
	query string,
	near *models.Coordinates,
) []models.Candidate {
	r.metrics.ActiveFanout.Inc()
	defer r.metrics.ActiveFanout.Dec()

	actx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	startTime := time.Now()
	candidates, err := adapter.FindCandidates(actx, query, near)
	r.metrics.RequestSeconds.WithLabelValues(adapter.Name()).Observe(time.Since(startTime).Seconds())

	if err != nil {
		r.observeAdapterError(ctx, adapter.Name(), err)
		return nil
	}

	return candidates
}

func (r *Resolver) observeAdapterError(ctx context.Context, provider string, err error) {
	if errors.Is(err, geocoding.ErrNoMatch) {
		r.log.DebugContext(ctx, "Adapter found no precise match", "provider", provider)
		return
	}

	r.log.ErrorContext(ctx, "Adapter failed, skipping", "provider", provider, "error", err)
	r.metrics.AdapterErrors.WithLabelValues(provider).Inc()
}

// rank flattens the per-adapter results in priority order, applies the
// locality scoring, collapses duplicates and sorts.
func (r *Resolver) rank(perAdapter [][]models.Candidate, expect models.Expectation) []models.Candidate {
	var flat []models.Candidate
	for idx, candidates := range perAdapter {
		// Base rank by provider priority: earlier adapters score higher,
		// all else equal.
		base := float64(len(r.adapters) - idx)
		for _, candidate := range candidates {
			candidate.Score = base

			if expect.RegionCode != "" {
				// Region expectations restrict the country outright.
				if !strings.EqualFold(candidate.Meta.CountryCode, r.country) {
					continue
				}
				if locality.RegionMatches(candidate.Meta, expect.RegionCode) {
					candidate.Score += r.weights.RegionBoost
				}
			}
			if expect.City != "" && locality.CityMatches(candidate.Meta.City, expect.City) {
				candidate.Score += r.weights.CityBoost
			}

			flat = append(flat, candidate)
		}
	}

	return r.dedupe(flat)
}

// dedupe keeps the highest-scoring candidate per dedup key, preserving
// flattening order for equal-score ties, then sorts and caps the list.
func (r *Resolver) dedupe(flat []models.Candidate) []models.Candidate {
	index := make(map[string]int, len(flat))
	kept := make([]models.Candidate, 0, len(flat))

	for _, candidate := range flat {
		key := dedupKey(candidate)
		pos, seen := index[key]
		if !seen {
			index[key] = len(kept)
			kept = append(kept, candidate)
			continue
		}
		if candidate.Score > kept[pos].Score {
			kept[pos] = candidate
		}
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Score > kept[j].Score })

	if len(kept) > r.maxCandidates {
		kept = kept[:r.maxCandidates]
	}

	return kept
}

// dedupKey collapses near-identical candidates: same normalized label and
// coordinates equal to four fractional digits (about 11 meters).
func dedupKey(candidate models.Candidate) string {
	return fmt.Sprintf("%s|%.4f,%.4f", locality.Normalize(candidate.Label), candidate.Lat, candidate.Lng)
}
