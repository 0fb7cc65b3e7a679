package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrLocationRequired is returned when a query carries neither coordinates
// nor a place name. It is the only lookup outcome that is not a result.
var ErrLocationRequired = errors.New("either coordinates or a place name is required")

// Service resolves weather queries against injected providers, cascading to
// a text-based inference source and finally a synthetic fallback so that a
// valid query always yields a well-formed result.
type Service struct {
	conditions ConditionsProvider
	forecast   ForecastProvider
	geocoder   Geocoder
	inference  InferenceProvider
	cache      Cache

	defaultUnits Units
	configured   bool

	// now is the clock used by the synthetic fallback; replaceable in tests.
	now func() time.Time
}

// ServiceConfig bundles the collaborators and settings for a Service.
type ServiceConfig struct {
	Conditions ConditionsProvider
	Forecast   ForecastProvider
	Geocoder   Geocoder
	Inference  InferenceProvider
	Cache      Cache

	DefaultUnits Units

	// Configured reports whether the provider credential is present. When
	// false the HTTP boundary rejects lookups up front instead of faking
	// provider data.
	Configured bool
}

// NewService creates a new Service.
func NewService(cfg ServiceConfig) *Service {
	units := cfg.DefaultUnits
	if units != UnitsImperial {
		units = UnitsMetric
	}

	return &Service{
		conditions:   cfg.Conditions,
		forecast:     cfg.Forecast,
		geocoder:     cfg.Geocoder,
		inference:    cfg.Inference,
		cache:        cfg.Cache,
		defaultUnits: units,
		configured:   cfg.Configured,
		now:          time.Now,
	}
}

// Configured reports whether the upstream provider credential is present.
func (s *Service) Configured() bool {
	return s.configured
}

// Lookup resolves a weather query. Apart from ErrLocationRequired on
// invalid input, it never returns an error: every provider failure, and
// even an internal panic, degrades to the synthetic fallback result.
func (s *Service) Lookup(ctx context.Context, q WeatherQuery) (res WeatherResult, err error) {
	units := q.Units
	if units != UnitsMetric && units != UnitsImperial {
		units = s.defaultUnits
	}

	id := uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("weather[%s]: recovered from lookup panic: %v", id, r)
			res = FallbackResult(s.now(), units)
			err = nil
		}
	}()

	if q.Lat != nil && q.Lon != nil && isFinite(*q.Lat) && isFinite(*q.Lon) {
		return s.lookupByCoords(ctx, id, *q.Lat, *q.Lon, units), nil
	}

	place := strings.TrimSpace(q.Place)
	if place == "" {
		return WeatherResult{}, ErrLocationRequired
	}

	return s.lookupByPlace(ctx, id, place, units), nil
}

// lookupByCoords fetches current conditions and the 7-day forecast
// concurrently and joins them before normalization. Either call failing
// makes the whole provider path unavailable; partial provider data is
// never returned.
func (s *Service) lookupByCoords(ctx context.Context, id string, lat, lon float64, units Units) WeatherResult {
	key := coordKey(lat, lon, units)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			log.Printf("weather[%s]: cache hit for %s", id, key)
			return cached
		}
	}

	log.Printf("weather[%s]: coordinate lookup lat=%.4f lon=%.4f units=%s", id, lat, lon, units)

	var (
		wg     sync.WaitGroup
		cur    CurrentObservation
		days   []ForecastObservation
		curErr error
		fcErr  error
	)

	// Panics inside the fetch goroutines cannot be caught by the caller's
	// recover, so each one converts its own into a plain failure.
	wg.Add(2)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				curErr = fmt.Errorf("current conditions panicked: %v", r)
			}
		}()
		cur, curErr = s.conditions.Current(ctx, lat, lon)
	}()
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				fcErr = fmt.Errorf("forecast panicked: %v", r)
			}
		}()
		days, fcErr = s.forecast.Forecast(ctx, lat, lon, 7)
	}()
	wg.Wait()

	if curErr != nil || fcErr != nil {
		log.Printf("weather[%s]: provider path unavailable (current=%v forecast=%v); using fallback", id, curErr, fcErr)
		return FallbackResult(s.now(), units)
	}

	current, tempC := normalizeCurrent(cur, units)
	forecast := normalizeForecast(days, tempC, units)

	// Today's real range supersedes the coarse estimate.
	if len(forecast) > 0 {
		current.TempMax = forecast[0].High
		current.TempMin = forecast[0].Low
	}

	result := WeatherResult{
		Current:         current,
		Forecast:        forecast,
		Recommendations: Recommend(tempC, current.Condition),
		Alerts:          []string{},
		Source:          SourceProvider,
	}

	if s.cache != nil {
		s.cache.Set(key, result)
	}
	return result
}

// lookupByPlace geocodes the place name and delegates to the coordinate
// path. When geocoding yields nothing it cascades to the text-based
// inference source, and from there to the synthetic fallback.
func (s *Service) lookupByPlace(ctx context.Context, id string, place string, units Units) WeatherResult {
	if s.geocoder != nil {
		loc, err := s.geocoder.Geocode(ctx, place)
		if err == nil {
			log.Printf("weather[%s]: geocoded %q to lat=%.4f lon=%.4f", id, place, loc.Lat, loc.Lon)
			return s.lookupByCoords(ctx, id, loc.Lat, loc.Lon, units)
		}
		log.Printf("weather[%s]: geocoding failed for %q: %v", id, place, err)
	}

	if s.inference != nil {
		key := placeKey(place, units)
		if s.cache != nil {
			if cached, ok := s.cache.Get(key); ok {
				log.Printf("weather[%s]: cache hit for %s", id, key)
				return cached
			}
		}

		res, err := s.inference.Infer(ctx, place, units)
		if err == nil {
			log.Printf("weather[%s]: text inference served %q via %s", id, place, s.inference.Name())
			res.Source = SourceProvider
			if res.Alerts == nil {
				res.Alerts = []string{}
			}
			if s.cache != nil {
				s.cache.Set(key, res)
			}
			return res
		}
		log.Printf("weather[%s]: text inference failed for %q: %v", id, place, err)
	}

	log.Printf("weather[%s]: all provider paths exhausted for %q; using fallback", id, place)
	return FallbackResult(s.now(), units)
}

// coordKey builds a cache key from coordinates rounded to two decimals
// (roughly 1.1km), so nearby requests share an entry.
func coordKey(lat, lon float64, units Units) string {
	return fmt.Sprintf("%.2f:%.2f:%s", math.Round(lat*100)/100, math.Round(lon*100)/100, units)
}

func placeKey(place string, units Units) string {
	return "place:" + strings.ToLower(strings.TrimSpace(place)) + ":" + string(units)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
