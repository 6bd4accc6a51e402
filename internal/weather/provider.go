package weather

import (
	"context"
	"fmt"
)

// Provider abstracts the upstream weather API (Open-Meteo in production).
type Provider interface {
	// Forecast fetches current conditions plus hourly and daily forecasts.
	Forecast(ctx context.Context, lat, lon float64) (*Snapshot, error)

	// SearchCities resolves a free-text query into ranked candidates.
	// The result may be empty; the minimum query length is enforced by
	// the caller, not here.
	SearchCities(ctx context.Context, query string) ([]City, error)

	// CitySummary fetches the lightweight current-only view for a city.
	CitySummary(ctx context.Context, lat, lon float64) (CitySummary, error)
}

// ErrorKind classifies provider failures.
type ErrorKind string

const (
	// ErrKindNetwork covers transport failures: timeouts, connection
	// errors, rate limiting, upstream 5xx, open circuit.
	ErrKindNetwork ErrorKind = "network"

	// ErrKindInvalidResponse covers schema mismatches and undecodable
	// payloads from an otherwise successful request.
	ErrKindInvalidResponse ErrorKind = "invalid_response"
)

// ProviderError wraps an upstream failure with its classification.
// It is surfaced to callers unchanged; retry policy lives in the
// provider's transport layer, not in consumers.
type ProviderError struct {
	Kind     ErrorKind
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
