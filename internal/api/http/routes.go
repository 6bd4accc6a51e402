package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/skycast-io/skycast/internal/alerts"
	"github.com/skycast-io/skycast/internal/service"
	"github.com/skycast-io/skycast/internal/weather"
)

var validate = validator.New()

// weatherReport is the full payload for one location: the raw snapshot
// plus the evaluated alert and insights the screens render.
type weatherReport struct {
	Snapshot    weather.Snapshot  `json:"snapshot"`
	Condition   weather.Condition `json:"condition"`
	Description string            `json:"description"`
	Alert       *alerts.Decision  `json:"alert"`
	Insights    []string          `json:"insights"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, svc *service.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		coords, err := parseCoordsQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc := weather.Location{Latitude: coords.Lat, Longitude: coords.Lon}
		snap, err := svc.Snapshot(c.Context(), loc)
		if err != nil {
			return upstreamError(err)
		}

		return c.JSON(weatherReport{
			Snapshot:    *snap,
			Condition:   weather.Classify(snap.Current.WeatherCode),
			Description: weather.Describe(snap.Current.WeatherCode),
			Alert:       alerts.Evaluate(snap),
			Insights:    svc.Insights(snap),
		})
	})

	v1.Get("/cities/search", func(c *fiber.Ctx) error {
		var q searchQuery
		q.Query = c.Query("q")
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "query parameter q must be at least 2 characters")
		}

		cities, err := svc.SearchCities(c.Context(), q.Query)
		if err != nil {
			return upstreamError(err)
		}

		return c.JSON(fiber.Map{
			"query":  q.Query,
			"cities": cities,
		})
	})

	v1.Get("/cities/summary", func(c *fiber.Ctx) error {
		coords, err := parseCoordsQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc := weather.Location{Latitude: coords.Lat, Longitude: coords.Lon}
		sum, err := svc.CitySummary(c.Context(), loc)
		if err != nil {
			return upstreamError(err)
		}

		return c.JSON(sum)
	})
}

// searchQuery carries the free-text city query; the 2-character minimum
// is the boundary contract.
type searchQuery struct {
	Query string `validate:"required,min=2"`
}

// coordsQuery holds validated geographic coordinates.
type coordsQuery struct {
	Lat float64 `validate:"latitude"`
	Lon float64 `validate:"longitude"`
}

func parseCoordsQuery(c *fiber.Ctx) (coordsQuery, error) {
	var q coordsQuery

	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return q, errors.New("lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return q, errors.New("lat must be a number")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return q, errors.New("lon must be a number")
	}

	q.Lat, q.Lon = lat, lon
	if err := validate.Struct(q); err != nil {
		return q, errors.New("lat must be in [-90,90] and lon in [-180,180]")
	}
	return q, nil
}

// upstreamError maps provider failures to 502 and everything else to 500.
func upstreamError(err error) error {
	var perr *weather.ProviderError
	if errors.As(err, &perr) {
		return fiber.NewError(fiber.StatusBadGateway, "weather provider unavailable")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
}
