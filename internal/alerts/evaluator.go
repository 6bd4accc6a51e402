package alerts

import (
	"fmt"
	"math"

	"github.com/skycast-io/skycast/internal/weather"
)

// Alert thresholds, in the snapshot's units.
const (
	extremeHeatC     = 35.0
	freezingC        = 0.0
	highWindKmh      = 50.0
	heavyPrecipMm    = 10.0
	uvRiskMinC       = 25.0
	codeSwingMinDiff = 20
)

// Evaluate runs the alert rule table against a snapshot and returns the
// resulting decision, or nil when no rule matched.
//
// Every rule is checked against the snapshot independently, in a fixed
// order, and each match overwrites all fields of the pending decision.
// The emitted alert is therefore the LAST matching rule's, not the
// first's. That sequential-overwrite order is a contract: callers and
// tests depend on rule 6 (weather-code swing) beating rule 3 (wind) when
// both hold, and so on down the table.
//
// Rules 1 and 2 cannot both hold (the thresholds don't overlap), so
// their relative order is unobservable; it is kept as source order.
//
// NaN or missing numeric fields simply fail each comparison, so a
// partial snapshot disables the dependent rules without failing the
// rest. Fewer than two daily entries disables rule 6 only. Evaluate
// panics only when snap is nil, which is a caller contract violation.
func Evaluate(snap *weather.Snapshot) *Decision {
	if snap == nil {
		panic("alerts: Evaluate called with nil snapshot")
	}

	cur := snap.Current
	var d Decision
	matched := false

	// 1. Extreme heat.
	if cur.TemperatureC > extremeHeatC {
		d = Decision{
			Title:    "Extreme Heat Warning 🔥",
			Body:     fmt.Sprintf("🔥 Extreme heat alert! Current temperature: %d°C. Stay hydrated!", round(cur.TemperatureC)),
			Severity: SeverityHigh,
			Channel:  ChannelSevere,
		}
		matched = true
	}

	// 2. Freezing.
	if cur.TemperatureC < freezingC {
		d = Decision{
			Title:    "Freezing Weather Alert ❄️",
			Body:     fmt.Sprintf("❄️ Freezing conditions! Current temperature: %d°C. Bundle up!", round(cur.TemperatureC)),
			Severity: SeverityHigh,
			Channel:  ChannelSevere,
		}
		matched = true
	}

	// 3. High wind.
	if cur.WindSpeedKmh > highWindKmh {
		d = Decision{
			Title:    "High Wind Warning 💨",
			Body:     fmt.Sprintf("💨 High wind warning! Wind speed: %d km/h. Be cautious outdoors!", round(cur.WindSpeedKmh)),
			Severity: SeverityHigh,
			Channel:  ChannelSevere,
		}
		matched = true
	}

	// 4. Heavy precipitation.
	if cur.PrecipitationMm > heavyPrecipMm {
		d = Decision{
			Title:    "Heavy Rain Alert ☔",
			Body:     fmt.Sprintf("☔ Heavy precipitation detected! %dmm expected. Don't forget your umbrella!", round(cur.PrecipitationMm)),
			Severity: SeverityDefault,
			Channel:  ChannelGeneral,
		}
		matched = true
	}

	// 5. UV risk: clear sky, daytime, warm.
	if cur.WeatherCode == 0 && cur.IsDay && cur.TemperatureC > uvRiskMinC {
		d = Decision{
			Title:    "UV Protection Reminder ☀️",
			Body:     "☀️ High UV levels expected today! Remember to wear sunscreen!",
			Severity: SeverityDefault,
			Channel:  ChannelGeneral,
		}
		matched = true
	}

	// 6. Sudden weather-code swing between today and tomorrow.
	if len(snap.Daily) >= 2 {
		today := snap.Daily[0].WeatherCode
		tomorrow := snap.Daily[1].WeatherCode
		if abs(tomorrow-today) > codeSwingMinDiff {
			d = Decision{
				Title:    "Weather Change Alert 🌦️",
				Body:     fmt.Sprintf("🌦️ Weather change alert! Tomorrow: %s", weather.Describe(tomorrow)),
				Severity: SeverityDefault,
				Channel:  ChannelGeneral,
			}
			matched = true
		}
	}

	if !matched {
		return nil
	}
	return &d
}

// round rounds half away from zero and is NaN-tolerant: a NaN input
// yields 0 rather than a garbage integer. Rules guard with comparisons
// first, so this only matters for defensive formatting.
func round(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Round(v))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
