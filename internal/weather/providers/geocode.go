package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/kasiv/weather-lookup/internal/weather"
	"github.com/kelvins/geocoder"
)

// GoogleGeocoder implements weather.Geocoder on top of the Google Geocoding
// API via the kelvins/geocoder package.
type GoogleGeocoder struct{}

// NewGoogleGeocoder configures the geocoder package with the shared Google
// API credential. The package keeps the key in a package-level variable, so
// only one key is supported per process.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{}
}

// Geocode resolves a free-text place name to the first candidate's
// coordinates. The underlying package has no context support; the bound on
// the call comes from its internal HTTP client.
func (g *GoogleGeocoder) Geocode(_ context.Context, place string) (weather.Location, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return weather.Location{}, fmt.Errorf("empty place name")
	}
	if geocoder.ApiKey == "" {
		return weather.Location{}, fmt.Errorf("google geocoding api key is not configured")
	}

	loc, err := geocoder.Geocoding(geocoder.Address{City: place})
	if err != nil {
		return weather.Location{}, fmt.Errorf("geocode %q: %w", place, err)
	}

	return weather.Location{Lat: loc.Latitude, Lon: loc.Longitude}, nil
}
