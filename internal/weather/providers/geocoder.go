package providers

import (
	"context"
	"fmt"

	"github.com/kelvins/geocoder"

	"github.com/skycast-io/skycast/internal/weather"
)

const googleGeocoderName = "google-geocoder"

// GoogleGeocoder resolves city queries through the Google Geocoding API.
// It is a fallback for when Open-Meteo's geocoder has no match; Google
// returns a single best candidate rather than a ranked list.
type GoogleGeocoder struct{}

// NewGoogleGeocoder configures the underlying client with the API key.
// The kelvins/geocoder package keys requests off a package-level value,
// so only one Google geocoder can be active per process.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{}
}

// SearchCities resolves the query to at most one candidate. An empty
// result is not an error; callers treat it the same as an empty ranked
// list from the primary geocoder.
func (g *GoogleGeocoder) SearchCities(ctx context.Context, query string) ([]weather.City, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loc, err := geocoder.Geocoding(geocoder.Address{City: query})
	if err != nil {
		return nil, &weather.ProviderError{
			Kind:     weather.ErrKindNetwork,
			Provider: googleGeocoderName,
			Err:      fmt.Errorf("geocoding %q: %w", query, err),
		}
	}

	return []weather.City{{
		Name:      query,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}}, nil
}
