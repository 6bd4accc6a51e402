package weather

import (
	"fmt"
	"time"
)

// Location identifies a tracked place by coordinates. Name is optional
// display metadata; coordinates are what the provider is queried with.
type Location struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Key returns a canonical string key for indexing this location in caches.
func (l Location) Key() string {
	return fmt.Sprintf("%.4f:%.4f", l.Latitude, l.Longitude)
}

// CurrentConditions holds the provider's current-weather group.
type CurrentConditions struct {
	Time                 time.Time `json:"time"`
	TemperatureC         float64   `json:"temperatureC"`
	ApparentTemperatureC float64   `json:"apparentTemperatureC"`
	RelativeHumidityPct  int       `json:"relativeHumidityPct"`
	PrecipitationMm      float64   `json:"precipitationMm"`
	WindSpeedKmh         float64   `json:"windSpeedKmh"`
	PressureMsl          float64   `json:"pressureMsl"`
	CloudCoverPct        int       `json:"cloudCoverPct"`
	WeatherCode          int       `json:"weatherCode"`
	IsDay                bool      `json:"isDay"`
}

// HourlyEntry is one hour of the short-range forecast.
type HourlyEntry struct {
	Time                        time.Time `json:"time"`
	TemperatureC                float64   `json:"temperatureC"`
	PrecipitationProbabilityPct int       `json:"precipitationProbabilityPct"`
	WeatherCode                 int       `json:"weatherCode"`
}

// DailyEntry is one day of the forecast. Index 0 in Snapshot.Daily is today.
type DailyEntry struct {
	Date                           time.Time `json:"date"`
	WeatherCode                    int       `json:"weatherCode"`
	TempMaxC                       float64   `json:"tempMaxC"`
	TempMinC                       float64   `json:"tempMinC"`
	Sunrise                        time.Time `json:"sunrise"`
	Sunset                         time.Time `json:"sunset"`
	PrecipitationProbabilityMaxPct int       `json:"precipitationProbabilityMaxPct"`
}

// Snapshot is one fetch of current conditions plus hourly and daily
// forecasts for a location. It is constructed fresh per fetch and never
// mutated afterwards; the alert engine treats it as read-only.
type Snapshot struct {
	Location  Location          `json:"location"`
	FetchedAt time.Time         `json:"fetchedAt"` // always UTC
	Current   CurrentConditions `json:"current"`
	Hourly    []HourlyEntry     `json:"hourly,omitempty"`
	Daily     []DailyEntry      `json:"daily,omitempty"`
}

// City is one candidate from a city search, ranked by the provider.
type City struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CitySummary is the lightweight current-only view used when refreshing
// a multi-city list.
type CitySummary struct {
	TemperatureC int  `json:"temperatureC"` // rounded
	WeatherCode  int  `json:"weatherCode"`
	IsDay        bool `json:"isDay"`
}

// ClampPct clamps a percentage to [0,100]. The provider boundary applies
// it when decoding so downstream consumers never see out-of-range values.
func ClampPct(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
