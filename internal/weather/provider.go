package weather

import "context"

// ConditionsProvider abstracts an upstream current-conditions source.
type ConditionsProvider interface {
	Name() string
	Current(ctx context.Context, lat, lon float64) (CurrentObservation, error)
}

// ForecastProvider abstracts an upstream multi-day forecast source.
type ForecastProvider interface {
	Name() string
	Forecast(ctx context.Context, lat, lon float64, days int) ([]ForecastObservation, error)
}

// Geocoder resolves a free-text place name to coordinates. Implementations
// return an error when no candidate is found.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (Location, error)
}

// InferenceProvider is a best-effort weather source keyed by place name
// rather than coordinates. It is consulted only when geocoding yields
// nothing, and returns a complete result directly.
type InferenceProvider interface {
	Name() string
	Infer(ctx context.Context, place string, units Units) (WeatherResult, error)
}

// Cache is the contract the in-memory result cache must satisfy.
type Cache interface {
	Get(key string) (WeatherResult, bool)
	Set(key string, res WeatherResult)
}
