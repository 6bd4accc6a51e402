// Package store caches the latest fetched weather data per location.
// Caching is the caller's responsibility, not the engine's: the alert
// evaluator and insight generator hold no cross-call state.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/skycast-io/skycast/internal/weather"
)

// ErrNotFound is returned when no fresh data is cached for a location.
var ErrNotFound = errors.New("no cached weather data for location")

type snapshotEntry struct {
	snapshot weather.Snapshot
	storedAt time.Time
}

type summaryEntry struct {
	summary  weather.CitySummary
	storedAt time.Time
}

// MemoryCache is a concurrency-safe in-memory cache of the latest
// snapshot per tracked location and the latest summary per listed city.
// Entries older than maxAge are treated as misses; a maxAge of 0 means
// entries never expire.
type MemoryCache struct {
	mu sync.RWMutex

	snapshots map[string]snapshotEntry
	summaries map[string]summaryEntry

	maxAge time.Duration
}

// NewMemoryCache creates an empty cache with the given freshness window.
func NewMemoryCache(maxAge time.Duration) *MemoryCache {
	return &MemoryCache{
		snapshots: make(map[string]snapshotEntry),
		summaries: make(map[string]summaryEntry),
		maxAge:    maxAge,
	}
}

// PutSnapshot stores the latest snapshot for a location, replacing any
// previous one.
func (c *MemoryCache) PutSnapshot(loc weather.Location, snap weather.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots[loc.Key()] = snapshotEntry{snapshot: snap, storedAt: time.Now()}
}

// Snapshot returns the cached snapshot for a location if still fresh.
func (c *MemoryCache) Snapshot(loc weather.Location) (weather.Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.snapshots[loc.Key()]
	if !ok || c.expired(entry.storedAt) {
		return weather.Snapshot{}, ErrNotFound
	}
	return entry.snapshot, nil
}

// PutSummary stores the latest lightweight summary for a city.
func (c *MemoryCache) PutSummary(loc weather.Location, sum weather.CitySummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summaries[loc.Key()] = summaryEntry{summary: sum, storedAt: time.Now()}
}

// Summary returns the cached summary for a city if still fresh.
func (c *MemoryCache) Summary(loc weather.Location) (weather.CitySummary, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.summaries[loc.Key()]
	if !ok || c.expired(entry.storedAt) {
		return weather.CitySummary{}, ErrNotFound
	}
	return entry.summary, nil
}

func (c *MemoryCache) expired(storedAt time.Time) bool {
	return c.maxAge > 0 && time.Since(storedAt) > c.maxAge
}
