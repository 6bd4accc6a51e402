package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocations(t *testing.T) {
	locs, err := parseLocations("Berlin:52.52,13.405; Paris : 48.85,2.35")
	require.NoError(t, err)
	require.Len(t, locs, 2)

	assert.Equal(t, "Berlin", locs[0].Name)
	assert.Equal(t, 52.52, locs[0].Latitude)
	assert.Equal(t, 13.405, locs[0].Longitude)
	assert.Equal(t, "Paris", locs[1].Name)
}

func TestParseLocationsEmpty(t *testing.T) {
	locs, err := parseLocations("")
	require.NoError(t, err)
	assert.Empty(t, locs)
}

func TestParseLocationsInvalid(t *testing.T) {
	for _, raw := range []string{
		"Berlin",
		"Berlin:52.52",
		"Berlin:abc,13.4",
		"Berlin:52.52,xyz",
		"Berlin:95,13.4",
		"Berlin:52.52,200",
	} {
		_, err := parseLocations(raw)
		assert.Error(t, err, "input %q", raw)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "07:00", cfg.DailySummaryAt)
	assert.NotZero(t, cfg.FetchInterval)
	assert.NotZero(t, cfg.AlertDelay)
}

func TestLoadRejectsBadSummaryTime(t *testing.T) {
	t.Setenv("DAILY_SUMMARY_AT", "7am")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadInterval(t *testing.T) {
	t.Setenv("FETCH_INTERVAL", "often")
	_, err := Load()
	assert.Error(t, err)
}
