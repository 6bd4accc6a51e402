package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycast-io/skycast/internal/weather"
)

var berlin = weather.Location{Name: "Berlin", Latitude: 52.52, Longitude: 13.405}

func TestSnapshotRoundTrip(t *testing.T) {
	cache := NewMemoryCache(time.Hour)

	_, err := cache.Snapshot(berlin)
	assert.ErrorIs(t, err, ErrNotFound)

	snap := weather.Snapshot{
		Location: berlin,
		Current:  weather.CurrentConditions{TemperatureC: 21.5},
	}
	cache.PutSnapshot(berlin, snap)

	got, err := cache.Snapshot(berlin)
	require.NoError(t, err)
	assert.Equal(t, 21.5, got.Current.TemperatureC)
}

func TestSnapshotReplaced(t *testing.T) {
	cache := NewMemoryCache(time.Hour)

	cache.PutSnapshot(berlin, weather.Snapshot{Current: weather.CurrentConditions{TemperatureC: 10}})
	cache.PutSnapshot(berlin, weather.Snapshot{Current: weather.CurrentConditions{TemperatureC: 12}})

	got, err := cache.Snapshot(berlin)
	require.NoError(t, err)
	assert.Equal(t, 12.0, got.Current.TemperatureC)
}

func TestStaleEntriesAreMisses(t *testing.T) {
	cache := NewMemoryCache(time.Millisecond)

	cache.PutSnapshot(berlin, weather.Snapshot{})
	cache.PutSummary(berlin, weather.CitySummary{TemperatureC: 20})

	time.Sleep(5 * time.Millisecond)

	_, err := cache.Snapshot(berlin)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = cache.Summary(berlin)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestZeroMaxAgeNeverExpires(t *testing.T) {
	cache := NewMemoryCache(0)

	cache.PutSummary(berlin, weather.CitySummary{TemperatureC: 20, WeatherCode: 2, IsDay: true})
	time.Sleep(2 * time.Millisecond)

	got, err := cache.Summary(berlin)
	require.NoError(t, err)
	assert.Equal(t, 20, got.TemperatureC)
}

func TestLocationsAreIndependent(t *testing.T) {
	cache := NewMemoryCache(time.Hour)
	paris := weather.Location{Name: "Paris", Latitude: 48.85, Longitude: 2.35}

	cache.PutSnapshot(berlin, weather.Snapshot{Current: weather.CurrentConditions{TemperatureC: 10}})

	_, err := cache.Snapshot(paris)
	assert.ErrorIs(t, err, ErrNotFound)
}
