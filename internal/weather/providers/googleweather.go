package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kasiv/weather-lookup/internal/weather"
	"github.com/sony/gobreaker"
)

// GoogleWeatherProvider implements the weather.ConditionsProvider and
// weather.ForecastProvider interfaces against the Google Weather API.
type GoogleWeatherProvider struct {
	name        string
	apiKey      string
	currentURL  string
	forecastURL string
	httpCfg     HTTPClientConfig
	currentCB   *gobreaker.CircuitBreaker
	forecastCB  *gobreaker.CircuitBreaker
}

func NewGoogleWeatherProvider(client *http.Client, apiKey string) *GoogleWeatherProvider {
	return &GoogleWeatherProvider{
		name:        "google-weather",
		apiKey:      apiKey,
		currentURL:  "https://weather.googleapis.com/v1/currentConditions:lookup",
		forecastURL: "https://weather.googleapis.com/v1/forecast/days:lookup",
		httpCfg:     HTTPClientConfig{Client: client},
		currentCB:   newBreaker("google-weather-current"),
		forecastCB:  newBreaker("google-weather-forecast"),
	}
}

func (p *GoogleWeatherProvider) Name() string {
	return p.name
}

// Current fetches current conditions for the coordinates.
func (p *GoogleWeatherProvider) Current(ctx context.Context, lat, lon float64) (weather.CurrentObservation, error) {
	if p.apiKey == "" {
		return weather.CurrentObservation{}, fmt.Errorf("google weather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		values.Set("location.latitude", fmt.Sprintf("%f", lat))
		values.Set("location.longitude", fmt.Sprintf("%f", lon))

		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.currentURL, values.Encode()), nil)
	}

	resp, err := doRequestWithBreaker(ctx, p.httpCfg, p.currentCB, buildRequest)
	if err != nil {
		return weather.CurrentObservation{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Temperature struct {
			Degrees *float64 `json:"degrees"`
		} `json:"temperature"`
		RelativeHumidity *float64 `json:"relativeHumidity"`
		Wind             struct {
			Speed struct {
				Value *float64 `json:"value"`
			} `json:"speed"`
			Direction struct {
				Degrees  *int   `json:"degrees"`
				Cardinal string `json:"cardinal"`
			} `json:"direction"`
		} `json:"wind"`
		WeatherCondition struct {
			Type        string `json:"type"`
			Description struct {
				Text string `json:"text"`
			} `json:"description"`
		} `json:"weatherCondition"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.CurrentObservation{}, err
	}

	return weather.CurrentObservation{
		TemperatureC:  payload.Temperature.Degrees,
		HumidityPct:   payload.RelativeHumidity,
		WindSpeed:     payload.Wind.Speed.Value,
		WindDeg:       payload.Wind.Direction.Degrees,
		WindCardinal:  payload.Wind.Direction.Cardinal,
		Condition:     payload.WeatherCondition.Description.Text,
		ConditionType: payload.WeatherCondition.Type,
	}, nil
}

// Forecast fetches up to days daily records for the coordinates.
func (p *GoogleWeatherProvider) Forecast(ctx context.Context, lat, lon float64, days int) ([]weather.ForecastObservation, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("google weather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		values.Set("location.latitude", fmt.Sprintf("%f", lat))
		values.Set("location.longitude", fmt.Sprintf("%f", lon))
		values.Set("days", fmt.Sprintf("%d", days))

		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.forecastURL, values.Encode()), nil)
	}

	resp, err := doRequestWithBreaker(ctx, p.httpCfg, p.forecastCB, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		ForecastDays []struct {
			MaxTemperature struct {
				Degrees *float64 `json:"degrees"`
			} `json:"maxTemperature"`
			MinTemperature struct {
				Degrees *float64 `json:"degrees"`
			} `json:"minTemperature"`
			DaytimeForecast struct {
				WeatherCondition struct {
					Type        string `json:"type"`
					Description struct {
						Text string `json:"text"`
					} `json:"description"`
				} `json:"weatherCondition"`
			} `json:"daytimeForecast"`
		} `json:"forecastDays"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	out := make([]weather.ForecastObservation, 0, len(payload.ForecastDays))
	for _, d := range payload.ForecastDays {
		out = append(out, weather.ForecastObservation{
			MaxTempC:      d.MaxTemperature.Degrees,
			MinTempC:      d.MinTemperature.Degrees,
			Condition:     d.DaytimeForecast.WeatherCondition.Description.Text,
			ConditionType: d.DaytimeForecast.WeatherCondition.Type,
		})
	}
	return out, nil
}
