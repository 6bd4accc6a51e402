package alerts

import (
	"fmt"
	"math"

	"github.com/skycast-io/skycast/internal/weather"
)

// Insight thresholds.
const (
	lowPressureMsl   = 1000.0
	highPressureMsl  = 1025.0
	highHumidityPct  = 80
	lowHumidityPct   = 30
	feelsLikeGapMinC = 5.0
)

// Insights produces the ordered list of human-readable observations for
// a snapshot. The order is fixed: pressure, humidity, apparent-temperature
// gap (each optional), then day length (always present when daily[0]
// carries valid sunrise/sunset). Entries whose condition doesn't hold are
// simply omitted; nothing is reordered.
//
// Like Evaluate, this is a pure function: same snapshot in, same slice
// out. It panics only on a nil snapshot.
func Insights(snap *weather.Snapshot) []string {
	if snap == nil {
		panic("alerts: Insights called with nil snapshot")
	}

	cur := snap.Current
	insights := make([]string, 0, 4)

	// Pressure systems.
	if cur.PressureMsl < lowPressureMsl {
		insights = append(insights, "🌪️ Low pressure system detected - stormy weather possible!")
	} else if cur.PressureMsl > highPressureMsl {
		insights = append(insights, "☀️ High pressure system - expect clear and stable weather!")
	}

	// Humidity.
	if cur.RelativeHumidityPct > highHumidityPct {
		insights = append(insights, "💧 High humidity levels - it might feel muggy today!")
	} else if cur.RelativeHumidityPct < lowHumidityPct {
		insights = append(insights, "🏜️ Very dry conditions - stay hydrated and moisturize!")
	}

	// Wind chill or heat index. NaN gaps fail the comparison and skip.
	gap := math.Abs(cur.TemperatureC - cur.ApparentTemperatureC)
	if gap > feelsLikeGapMinC {
		if cur.ApparentTemperatureC < cur.TemperatureC {
			insights = append(insights, fmt.Sprintf("🥶 Wind chill effect: Feels %d°C colder than actual temperature!", round(gap)))
		} else {
			insights = append(insights, fmt.Sprintf("🥵 Heat index: Feels %d°C warmer than actual temperature!", round(gap)))
		}
	}

	// Day length, unconditional when today's sunrise/sunset are known.
	// The HH:MM formatting is load-bearing: clients and tests parse it.
	if len(snap.Daily) > 0 {
		sunrise, sunset := snap.Daily[0].Sunrise, snap.Daily[0].Sunset
		if !sunrise.IsZero() && !sunset.IsZero() {
			hours := sunset.Sub(sunrise).Hours()
			insights = append(insights, fmt.Sprintf(
				"🌅 Day length: %.1f hours (Sunrise: %s, Sunset: %s)",
				hours, sunrise.Format("15:04"), sunset.Format("15:04"),
			))
		}
	}

	return insights
}
