package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/skycast-io/skycast/internal/alerts"
	"github.com/skycast-io/skycast/internal/service"
	"github.com/skycast-io/skycast/internal/weather"
)

type stubProvider struct {
	snap *weather.Snapshot
	err  error
}

func (s *stubProvider) Forecast(ctx context.Context, lat, lon float64) (*weather.Snapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	snap := *s.snap
	return &snap, nil
}

func (s *stubProvider) SearchCities(ctx context.Context, query string) ([]weather.City, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []weather.City{{Name: "Berlin", Country: "Germany", Latitude: 52.52, Longitude: 13.405}}, nil
}

func (s *stubProvider) CitySummary(ctx context.Context, lat, lon float64) (weather.CitySummary, error) {
	if s.err != nil {
		return weather.CitySummary{}, s.err
	}
	return weather.CitySummary{TemperatureC: 21, WeatherCode: 2, IsDay: true}, nil
}

type noopDispatcher struct{}

func (noopDispatcher) Dispatch(ctx context.Context, d alerts.Decision, delay time.Duration) error {
	return nil
}

func testSnapshot() *weather.Snapshot {
	return &weather.Snapshot{
		Current: weather.CurrentConditions{
			TemperatureC:         20,
			ApparentTemperatureC: 20,
			RelativeHumidityPct:  50,
			WindSpeedKmh:         65, // trips the wind rule
			PressureMsl:          1013,
			WeatherCode:          2,
		},
		Daily: []weather.DailyEntry{
			{
				WeatherCode: 2,
				Sunrise:     time.Date(2026, 8, 28, 6, 12, 0, 0, time.UTC),
				Sunset:      time.Date(2026, 8, 28, 20, 2, 0, 0, time.UTC),
			},
			{WeatherCode: 3},
		},
	}
}

func newTestApp(provider weather.Provider) *fiber.App {
	app := fiber.New()
	svc := service.New(provider, nil, noopDispatcher{})
	RegisterRoutes(app, svc)
	return app
}

func doRequest(t *testing.T, app *fiber.App, target string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

// TestWeatherCoordinateValidation verifies that the weather endpoint
// rejects missing, non-numeric, and out-of-range coordinates.
func TestWeatherCoordinateValidation(t *testing.T) {
	app := newTestApp(&stubProvider{snap: testSnapshot()})

	for _, target := range []string{
		"/api/v1/weather",
		"/api/v1/weather?lat=52.52",
		"/api/v1/weather?lat=abc&lon=13.4",
		"/api/v1/weather?lat=91&lon=13.4",
		"/api/v1/weather?lat=52.52&lon=181",
	} {
		resp := doRequest(t, app, target)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected status %d, got %d", target, http.StatusBadRequest, resp.StatusCode)
		}
	}
}

func TestWeatherReport(t *testing.T) {
	app := newTestApp(&stubProvider{snap: testSnapshot()})

	resp := doRequest(t, app, "/api/v1/weather?lat=52.52&lon=13.405")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var report weatherReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if report.Alert == nil {
		t.Fatal("expected the wind alert in the report")
	}
	if report.Alert.Channel != alerts.ChannelSevere {
		t.Fatalf("expected severe channel, got %s", report.Alert.Channel)
	}
	if len(report.Insights) == 0 {
		t.Fatal("expected at least the day-length insight")
	}
	if report.Condition != weather.ConditionCloudy {
		t.Fatalf("expected cloudy condition, got %s", report.Condition)
	}
}

func TestWeatherProviderFailureIs502(t *testing.T) {
	perr := &weather.ProviderError{Kind: weather.ErrKindNetwork, Provider: "openmeteo", Err: errors.New("down")}
	app := newTestApp(&stubProvider{err: perr})

	resp := doRequest(t, app, "/api/v1/weather?lat=52.52&lon=13.405")
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d", http.StatusBadGateway, resp.StatusCode)
	}
}

// TestCitySearchValidation verifies the two-character minimum on q.
func TestCitySearchValidation(t *testing.T) {
	app := newTestApp(&stubProvider{snap: testSnapshot()})

	for _, target := range []string{
		"/api/v1/cities/search",
		"/api/v1/cities/search?q=B",
	} {
		resp := doRequest(t, app, target)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected status %d, got %d", target, http.StatusBadRequest, resp.StatusCode)
		}
	}

	resp := doRequest(t, app, "/api/v1/cities/search?q=Berlin")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestCitySummaryEndpoint(t *testing.T) {
	app := newTestApp(&stubProvider{snap: testSnapshot()})

	resp := doRequest(t, app, "/api/v1/cities/summary?lat=48.85&lon=2.35")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var sum weather.CitySummary
	if err := json.NewDecoder(resp.Body).Decode(&sum); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if sum.TemperatureC != 21 {
		t.Fatalf("expected temperature 21, got %d", sum.TemperatureC)
	}

	resp = doRequest(t, app, "/api/v1/cities/summary?lat=91&lon=0")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}
