package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/skycast-io/skycast/internal/weather"
)

const (
	openMeteoName = "openmeteo"

	defaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
	defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

	// Open-Meteo returns local times without a zone offset when asked
	// for timezone=auto.
	localTimeLayout = "2006-01-02T15:04"
	localDateLayout = "2006-01-02"

	citySearchLimit = 5
)

// Variable lists requested per group. Order matters only for URL
// stability in tests.
var (
	currentVars = []string{
		"temperature_2m", "relative_humidity_2m", "apparent_temperature",
		"is_day", "precipitation", "weather_code", "cloud_cover",
		"pressure_msl", "wind_speed_10m",
	}
	hourlyVars = []string{"temperature_2m", "precipitation_probability", "weather_code"}
	dailyVars  = []string{
		"weather_code", "temperature_2m_max", "temperature_2m_min",
		"sunrise", "sunset", "precipitation_probability_max",
	}
	summaryVars = []string{"temperature_2m", "weather_code", "is_day"}
)

// OpenMeteo implements weather.Provider against the Open-Meteo forecast
// and geocoding APIs. It needs no API key.
type OpenMeteo struct {
	forecastURL  string
	geocodingURL string
	httpCfg      HTTPClientConfig
	forecastCB   *gobreaker.CircuitBreaker
	geocodingCB  *gobreaker.CircuitBreaker
}

// NewOpenMeteo creates the production Open-Meteo client sharing the
// given HTTP client.
func NewOpenMeteo(client *http.Client) *OpenMeteo {
	return &OpenMeteo{
		forecastURL:  defaultForecastURL,
		geocodingURL: defaultGeocodingURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		forecastCB:  newBreaker(openMeteoName + "-forecast"),
		geocodingCB: newBreaker(openMeteoName + "-geocoding"),
	}
}

// Forecast fetches the full current/hourly/daily snapshot for a location.
func (p *OpenMeteo) Forecast(ctx context.Context, lat, lon float64) (*weather.Snapshot, error) {
	build := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", formatCoord(lat))
		values.Set("longitude", formatCoord(lon))
		values.Set("current", strings.Join(currentVars, ","))
		values.Set("hourly", strings.Join(hourlyVars, ","))
		values.Set("daily", strings.Join(dailyVars, ","))
		values.Set("timezone", "auto")
		return http.NewRequest(http.MethodGet, p.forecastURL+"?"+values.Encode(), nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.forecastCB, build)
	if err != nil {
		return nil, p.networkErr(err)
	}
	defer resp.Body.Close()

	var payload forecastPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, p.invalidErr(fmt.Errorf("decoding forecast: %w", err))
	}

	snap := payload.toSnapshot(lat, lon)
	return &snap, nil
}

// SearchCities resolves a free-text city query into ranked candidates.
func (p *OpenMeteo) SearchCities(ctx context.Context, query string) ([]weather.City, error) {
	build := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("name", query)
		values.Set("count", fmt.Sprintf("%d", citySearchLimit))
		values.Set("language", "en")
		values.Set("format", "json")
		return http.NewRequest(http.MethodGet, p.geocodingURL+"?"+values.Encode(), nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.geocodingCB, build)
	if err != nil {
		return nil, p.networkErr(err)
	}
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			Name      string  `json:"name"`
			Country   string  `json:"country"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, p.invalidErr(fmt.Errorf("decoding geocoding response: %w", err))
	}

	cities := make([]weather.City, 0, len(payload.Results))
	for _, r := range payload.Results {
		cities = append(cities, weather.City{
			Name:      r.Name,
			Country:   r.Country,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		})
	}
	return cities, nil
}

// CitySummary fetches the current-only view used for multi-city lists.
func (p *OpenMeteo) CitySummary(ctx context.Context, lat, lon float64) (weather.CitySummary, error) {
	build := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", formatCoord(lat))
		values.Set("longitude", formatCoord(lon))
		values.Set("current", strings.Join(summaryVars, ","))
		values.Set("timezone", "auto")
		return http.NewRequest(http.MethodGet, p.forecastURL+"?"+values.Encode(), nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.forecastCB, build)
	if err != nil {
		return weather.CitySummary{}, p.networkErr(err)
	}
	defer resp.Body.Close()

	var payload struct {
		Current struct {
			Temperature float64 `json:"temperature_2m"`
			WeatherCode int     `json:"weather_code"`
			IsDay       int     `json:"is_day"`
		} `json:"current"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.CitySummary{}, p.invalidErr(fmt.Errorf("decoding summary: %w", err))
	}

	return weather.CitySummary{
		TemperatureC: int(math.Round(payload.Current.Temperature)),
		WeatherCode:  payload.Current.WeatherCode,
		IsDay:        payload.Current.IsDay == 1,
	}, nil
}

func (p *OpenMeteo) networkErr(err error) error {
	return &weather.ProviderError{Kind: weather.ErrKindNetwork, Provider: openMeteoName, Err: err}
}

func (p *OpenMeteo) invalidErr(err error) error {
	return &weather.ProviderError{Kind: weather.ErrKindInvalidResponse, Provider: openMeteoName, Err: err}
}

// forecastPayload mirrors the Open-Meteo response: the current group is
// an object, hourly/daily are parallel arrays keyed by variable name.
type forecastPayload struct {
	Current struct {
		Time                string  `json:"time"`
		Temperature         float64 `json:"temperature_2m"`
		RelativeHumidity    int     `json:"relative_humidity_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		IsDay               int     `json:"is_day"`
		Precipitation       float64 `json:"precipitation"`
		WeatherCode         int     `json:"weather_code"`
		CloudCover          int     `json:"cloud_cover"`
		PressureMsl         float64 `json:"pressure_msl"`
		WindSpeed           float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Hourly struct {
		Time                     []string  `json:"time"`
		Temperature              []float64 `json:"temperature_2m"`
		PrecipitationProbability []int     `json:"precipitation_probability"`
		WeatherCode              []int     `json:"weather_code"`
	} `json:"hourly"`
	Daily struct {
		Time                        []string  `json:"time"`
		WeatherCode                 []int     `json:"weather_code"`
		TemperatureMax              []float64 `json:"temperature_2m_max"`
		TemperatureMin              []float64 `json:"temperature_2m_min"`
		Sunrise                     []string  `json:"sunrise"`
		Sunset                      []string  `json:"sunset"`
		PrecipitationProbabilityMax []int     `json:"precipitation_probability_max"`
	} `json:"daily"`
}

// toSnapshot normalizes the payload. Percentages are clamped here, at
// the provider boundary, so the engine never sees out-of-range values.
// Parallel arrays of uneven length are truncated to the shortest so a
// partial upstream response degrades instead of panicking.
func (fp forecastPayload) toSnapshot(lat, lon float64) weather.Snapshot {
	snap := weather.Snapshot{
		Location:  weather.Location{Latitude: lat, Longitude: lon},
		FetchedAt: time.Now().UTC(),
		Current: weather.CurrentConditions{
			Time:                 parseLocalTime(fp.Current.Time),
			TemperatureC:         fp.Current.Temperature,
			ApparentTemperatureC: fp.Current.ApparentTemperature,
			RelativeHumidityPct:  weather.ClampPct(fp.Current.RelativeHumidity),
			PrecipitationMm:      fp.Current.Precipitation,
			WindSpeedKmh:         fp.Current.WindSpeed,
			PressureMsl:          fp.Current.PressureMsl,
			CloudCoverPct:        weather.ClampPct(fp.Current.CloudCover),
			WeatherCode:          fp.Current.WeatherCode,
			IsDay:                fp.Current.IsDay == 1,
		},
	}

	n := len(fp.Hourly.Time)
	n = minLen(n, len(fp.Hourly.Temperature))
	n = minLen(n, len(fp.Hourly.PrecipitationProbability))
	n = minLen(n, len(fp.Hourly.WeatherCode))
	for i := 0; i < n; i++ {
		snap.Hourly = append(snap.Hourly, weather.HourlyEntry{
			Time:                        parseLocalTime(fp.Hourly.Time[i]),
			TemperatureC:                fp.Hourly.Temperature[i],
			PrecipitationProbabilityPct: weather.ClampPct(fp.Hourly.PrecipitationProbability[i]),
			WeatherCode:                 fp.Hourly.WeatherCode[i],
		})
	}

	m := len(fp.Daily.Time)
	m = minLen(m, len(fp.Daily.WeatherCode))
	m = minLen(m, len(fp.Daily.TemperatureMax))
	m = minLen(m, len(fp.Daily.TemperatureMin))
	m = minLen(m, len(fp.Daily.Sunrise))
	m = minLen(m, len(fp.Daily.Sunset))
	m = minLen(m, len(fp.Daily.PrecipitationProbabilityMax))
	for i := 0; i < m; i++ {
		snap.Daily = append(snap.Daily, weather.DailyEntry{
			Date:                           parseLocalDate(fp.Daily.Time[i]),
			WeatherCode:                    fp.Daily.WeatherCode[i],
			TempMaxC:                       fp.Daily.TemperatureMax[i],
			TempMinC:                       fp.Daily.TemperatureMin[i],
			Sunrise:                        parseLocalTime(fp.Daily.Sunrise[i]),
			Sunset:                         parseLocalTime(fp.Daily.Sunset[i]),
			PrecipitationProbabilityMaxPct: weather.ClampPct(fp.Daily.PrecipitationProbabilityMax[i]),
		})
	}

	return snap
}

// parseLocalTime parses Open-Meteo's zone-less local timestamps, falling
// back to RFC3339 for deployments pinned to a fixed timezone. A zero
// time signals "unknown" downstream.
func parseLocalTime(s string) time.Time {
	if ts, err := time.Parse(localTimeLayout, s); err == nil {
		return ts
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts
	}
	return time.Time{}
}

func parseLocalDate(s string) time.Time {
	ts, err := time.Parse(localDateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func formatCoord(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

func minLen(a, b int) int {
	if b < a {
		return b
	}
	return a
}
