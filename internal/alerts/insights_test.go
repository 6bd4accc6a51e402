package alerts

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycast-io/skycast/internal/weather"
)

func snapshotWithSun(sunrise, sunset time.Time) *weather.Snapshot {
	snap := calmSnapshot()
	snap.Daily[0].Sunrise = sunrise
	snap.Daily[0].Sunset = sunset
	return snap
}

func day(hour, min int) time.Time {
	return time.Date(2026, 8, 28, hour, min, 0, 0, time.UTC)
}

// Scenario: low pressure, neutral humidity, no feels-like gap. Exactly
// one pressure insight plus the unconditional day-length line.
func TestInsightsLowPressureOnly(t *testing.T) {
	snap := snapshotWithSun(day(6, 0), day(20, 30))
	snap.Current.PressureMsl = 995
	snap.Current.RelativeHumidityPct = 50
	snap.Current.TemperatureC = 20
	snap.Current.ApparentTemperatureC = 20

	got := Insights(snap)
	require.Len(t, got, 2)
	assert.Contains(t, got[0], "Low pressure")
	assert.Contains(t, got[1], "Day length")
}

func TestInsightsHighPressure(t *testing.T) {
	snap := snapshotWithSun(day(6, 0), day(20, 30))
	snap.Current.PressureMsl = 1030

	got := Insights(snap)
	require.NotEmpty(t, got)
	assert.Contains(t, got[0], "High pressure")
}

func TestInsightsNeutralPressureOmitted(t *testing.T) {
	snap := snapshotWithSun(day(6, 0), day(20, 30))
	snap.Current.PressureMsl = 1013

	for _, s := range Insights(snap) {
		assert.NotContains(t, s, "pressure system")
	}
}

func TestInsightsHumidity(t *testing.T) {
	snap := snapshotWithSun(day(6, 0), day(20, 30))
	snap.Current.RelativeHumidityPct = 85
	got := Insights(snap)
	require.NotEmpty(t, got)
	assert.Contains(t, got[0], "humidity")

	snap.Current.RelativeHumidityPct = 25
	got = Insights(snap)
	require.NotEmpty(t, got)
	assert.Contains(t, got[0], "dry")
}

func TestInsightsFeelsLikeGap(t *testing.T) {
	snap := snapshotWithSun(day(6, 0), day(20, 30))
	snap.Current.TemperatureC = 20
	snap.Current.ApparentTemperatureC = 10

	got := Insights(snap)
	require.Len(t, got, 2)
	assert.Contains(t, got[0], "Wind chill")
	assert.Contains(t, got[0], "10°C colder")

	snap.Current.ApparentTemperatureC = 28
	got = Insights(snap)
	require.Len(t, got, 2)
	assert.Contains(t, got[0], "Heat index")
	assert.Contains(t, got[0], "8°C warmer")
}

func TestInsightsSmallGapOmitted(t *testing.T) {
	snap := snapshotWithSun(day(6, 0), day(20, 30))
	snap.Current.TemperatureC = 20
	snap.Current.ApparentTemperatureC = 17

	got := Insights(snap)
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "Day length")
}

// The day-length line always closes the list and keeps a parseable HH:MM
// component for both sunrise and sunset.
func TestInsightsDayLengthFormat(t *testing.T) {
	snap := snapshotWithSun(day(6, 30), day(21, 0))

	got := Insights(snap)
	require.NotEmpty(t, got)
	last := got[len(got)-1]
	assert.Contains(t, last, "14.5 hours")
	assert.Contains(t, last, "Sunrise: 06:30")
	assert.Contains(t, last, "Sunset: 21:00")
}

func TestInsightsFixedOrdering(t *testing.T) {
	snap := snapshotWithSun(day(6, 0), day(20, 30))
	snap.Current.PressureMsl = 995
	snap.Current.RelativeHumidityPct = 85
	snap.Current.TemperatureC = 20
	snap.Current.ApparentTemperatureC = 30

	got := Insights(snap)
	require.Len(t, got, 4)
	assert.Contains(t, got[0], "Low pressure")
	assert.Contains(t, got[1], "humidity")
	assert.Contains(t, got[2], "Heat index")
	assert.Contains(t, got[3], "Day length")
}

// Day length is always present when today's sunrise/sunset are known,
// regardless of every other field.
func TestInsightsNeverEmptyWithValidSun(t *testing.T) {
	snap := snapshotWithSun(day(6, 0), day(20, 30))
	snap.Current = weather.CurrentConditions{
		TemperatureC:         math.NaN(),
		ApparentTemperatureC: math.NaN(),
		PressureMsl:          1013,
		RelativeHumidityPct:  50,
	}

	got := Insights(snap)
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "Day length")
}

func TestInsightsNoDailyNoDayLength(t *testing.T) {
	snap := calmSnapshot()
	snap.Daily = nil

	assert.Empty(t, Insights(snap))
}

func TestInsightsZeroSunTimesSkipped(t *testing.T) {
	snap := calmSnapshot() // sunrise/sunset left as zero values
	assert.Empty(t, Insights(snap))
}

func TestInsightsIsPure(t *testing.T) {
	snap := snapshotWithSun(day(6, 0), day(20, 30))
	snap.Current.PressureMsl = 995

	assert.Equal(t, Insights(snap), Insights(snap))
}

func TestInsightsNilSnapshotPanics(t *testing.T) {
	assert.Panics(t, func() { Insights(nil) })
}
