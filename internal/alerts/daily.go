package alerts

import (
	"fmt"

	"github.com/skycast-io/skycast/internal/weather"
)

// DailySummary builds the morning digest for a snapshot: today's
// conditions, rounded high/low, and the maximum precipitation
// probability. Returns nil when the snapshot has no daily forecast.
func DailySummary(snap *weather.Snapshot) *Decision {
	if snap == nil {
		panic("alerts: DailySummary called with nil snapshot")
	}
	if len(snap.Daily) == 0 {
		return nil
	}

	today := snap.Daily[0]
	body := fmt.Sprintf(
		"Today: %s. High: %d°C, Low: %d°C. %d%% chance of rain.",
		weather.Describe(today.WeatherCode),
		round(today.TempMaxC),
		round(today.TempMinC),
		today.PrecipitationProbabilityMaxPct,
	)

	return &Decision{
		Title:    "Good Morning! ☀️",
		Body:     body,
		Severity: SeverityDefault,
		Channel:  ChannelDailySummary,
	}
}
