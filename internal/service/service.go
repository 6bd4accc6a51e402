// Package service orchestrates the fetch → evaluate → dispatch flow:
// the provider produces snapshots, the pure alert/insight engine decides,
// and the dispatcher delivers. The service also owns caller-side caching.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/skycast-io/skycast/internal/alerts"
	"github.com/skycast-io/skycast/internal/notify"
	"github.com/skycast-io/skycast/internal/store"
	"github.com/skycast-io/skycast/internal/weather"
)

// DefaultAlertDelay matches the near-immediate delivery the alert flow
// expects: long enough for the platform to coalesce, short enough to
// feel instant.
const DefaultAlertDelay = 2 * time.Second

// summaryConcurrency bounds the city-list fan-out. Refreshes for
// different cities race freely; they write to disjoint cache slots.
const summaryConcurrency = 8

// Cache is the subset of the snapshot cache the service consumes.
type Cache interface {
	PutSnapshot(loc weather.Location, snap weather.Snapshot)
	Snapshot(loc weather.Location) (weather.Snapshot, error)
	PutSummary(loc weather.Location, sum weather.CitySummary)
	Summary(loc weather.Location) (weather.CitySummary, error)
}

// CitySearcher is the secondary geocoder consulted when the primary
// provider finds no cities for a query.
type CitySearcher interface {
	SearchCities(ctx context.Context, query string) ([]weather.City, error)
}

// Service wires the provider, cache, engine, and dispatcher together.
type Service struct {
	provider   weather.Provider
	cache      Cache
	dispatcher notify.Dispatcher

	fallbackSearch CitySearcher // optional
	alertDelay     time.Duration
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithFallbackSearch installs a secondary city searcher.
func WithFallbackSearch(s CitySearcher) Option {
	return func(svc *Service) { svc.fallbackSearch = s }
}

// WithAlertDelay overrides the dispatch delay for evaluated alerts.
func WithAlertDelay(d time.Duration) Option {
	return func(svc *Service) { svc.alertDelay = d }
}

// New creates a Service. provider and dispatcher are required; cache may
// be nil for callers that do their own caching.
func New(provider weather.Provider, cache Cache, dispatcher notify.Dispatcher, opts ...Option) *Service {
	svc := &Service{
		provider:   provider,
		cache:      cache,
		dispatcher: dispatcher,
		alertDelay: DefaultAlertDelay,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Refresh fetches a fresh snapshot for the location, caches it, runs the
// alert evaluator, and dispatches any resulting decision. Dispatch is
// best-effort: failures are logged and never fail the refresh.
func (s *Service) Refresh(ctx context.Context, loc weather.Location) (*weather.Snapshot, error) {
	snap, err := s.provider.Forecast(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return nil, fmt.Errorf("refreshing %s: %w", loc.Key(), err)
	}
	snap.Location.Name = loc.Name

	if s.cache != nil {
		s.cache.PutSnapshot(loc, *snap)
	}

	if decision := alerts.Evaluate(snap); decision != nil {
		if err := s.dispatcher.Dispatch(ctx, *decision, s.alertDelay); err != nil {
			log.Printf("service: dispatch failed for %s (%s): %v", loc.Key(), decision.Channel, err)
		}
	}

	return snap, nil
}

// Snapshot returns the cached snapshot for a location, refreshing on a
// cache miss.
func (s *Service) Snapshot(ctx context.Context, loc weather.Location) (*weather.Snapshot, error) {
	if s.cache != nil {
		if snap, err := s.cache.Snapshot(loc); err == nil {
			return &snap, nil
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}
	return s.Refresh(ctx, loc)
}

// SearchCities resolves a query through the primary provider, falling
// back to the secondary geocoder when the primary has no candidates.
// Provider errors are surfaced unchanged; retrying is the transport
// layer's business.
func (s *Service) SearchCities(ctx context.Context, query string) ([]weather.City, error) {
	cities, err := s.provider.SearchCities(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(cities) > 0 || s.fallbackSearch == nil {
		return cities, nil
	}

	fallback, err := s.fallbackSearch.SearchCities(ctx, query)
	if err != nil {
		// The primary answered; a broken fallback shouldn't turn an
		// empty result into a failure.
		log.Printf("service: fallback city search failed for %q: %v", query, err)
		return cities, nil
	}
	return fallback, nil
}

// CitySummaries refreshes the lightweight summaries for a city list with
// bounded concurrency. Per-city failures are logged and skipped; the
// result holds whatever succeeded, keyed by location key.
func (s *Service) CitySummaries(ctx context.Context, cities []weather.Location) map[string]weather.CitySummary {
	var (
		mu      sync.Mutex
		results = make(map[string]weather.CitySummary, len(cities))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(summaryConcurrency)

	for _, city := range cities {
		city := city
		g.Go(func() error {
			sum, err := s.provider.CitySummary(ctx, city.Latitude, city.Longitude)
			if err != nil {
				log.Printf("service: summary fetch failed for %s: %v", city.Key(), err)
				return nil
			}

			if s.cache != nil {
				s.cache.PutSummary(city, sum)
			}

			mu.Lock()
			results[city.Key()] = sum
			mu.Unlock()
			return nil
		})
	}

	// Workers only return nil; Wait is for completion, not errors.
	_ = g.Wait()
	return results
}

// CitySummary returns the lightweight summary for one city, from cache
// when fresh.
func (s *Service) CitySummary(ctx context.Context, loc weather.Location) (weather.CitySummary, error) {
	if s.cache != nil {
		if sum, err := s.cache.Summary(loc); err == nil {
			return sum, nil
		}
	}

	sum, err := s.provider.CitySummary(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return weather.CitySummary{}, err
	}
	if s.cache != nil {
		s.cache.PutSummary(loc, sum)
	}
	return sum, nil
}

// SendDailySummary builds and dispatches the morning digest for a
// location using the freshest available snapshot.
func (s *Service) SendDailySummary(ctx context.Context, loc weather.Location) error {
	snap, err := s.Snapshot(ctx, loc)
	if err != nil {
		return fmt.Errorf("daily summary for %s: %w", loc.Key(), err)
	}

	decision := alerts.DailySummary(snap)
	if decision == nil {
		return fmt.Errorf("daily summary for %s: snapshot has no daily forecast", loc.Key())
	}

	if err := s.dispatcher.Dispatch(ctx, *decision, 0); err != nil {
		// Best-effort, same as alert dispatch.
		log.Printf("service: daily summary dispatch failed for %s: %v", loc.Key(), err)
	}
	return nil
}

// Insights exposes the pure insight generator for the HTTP layer.
func (s *Service) Insights(snap *weather.Snapshot) []string {
	return alerts.Insights(snap)
}
