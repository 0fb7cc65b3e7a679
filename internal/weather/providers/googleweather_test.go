package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const currentConditionsBody = `{
	"temperature": {"degrees": 27.3, "unit": "CELSIUS"},
	"relativeHumidity": 74,
	"wind": {
		"speed": {"value": 14.2, "unit": "KILOMETERS_PER_HOUR"},
		"direction": {"degrees": 210, "cardinal": "SSW"}
	},
	"weatherCondition": {
		"type": "SCATTERED_SHOWERS",
		"description": {"text": "Scattered showers"}
	}
}`

const forecastDaysBody = `{
	"forecastDays": [
		{
			"maxTemperature": {"degrees": 30.1},
			"minTemperature": {"degrees": 23.4},
			"daytimeForecast": {
				"weatherCondition": {"type": "RAIN", "description": {"text": "Rain"}}
			}
		},
		{
			"maxTemperature": {"degrees": 29.0},
			"daytimeForecast": {
				"weatherCondition": {"type": "CLEAR", "description": {"text": "Clear"}}
			}
		}
	]
}`

func newGoogleTestProvider(t *testing.T, handler http.HandlerFunc) *GoogleWeatherProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := NewGoogleWeatherProvider(&http.Client{Timeout: 2 * time.Second}, "test-key")
	p.currentURL = srv.URL + "/currentConditions:lookup"
	p.forecastURL = srv.URL + "/forecast/days:lookup"
	return p
}

func TestGoogleWeatherCurrent(t *testing.T) {
	var gotQuery string
	p := newGoogleTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(currentConditionsBody))
	})

	obs, err := p.Current(context.Background(), 19.076, 72.8777)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if obs.TemperatureC == nil || *obs.TemperatureC != 27.3 {
		t.Fatalf("unexpected temperature: %v", obs.TemperatureC)
	}
	if obs.HumidityPct == nil || *obs.HumidityPct != 74 {
		t.Fatalf("unexpected humidity: %v", obs.HumidityPct)
	}
	if obs.WindDeg == nil || *obs.WindDeg != 210 || obs.WindCardinal != "SSW" {
		t.Fatalf("unexpected wind direction: %v %q", obs.WindDeg, obs.WindCardinal)
	}
	if obs.ConditionType != "SCATTERED_SHOWERS" || obs.Condition != "Scattered showers" {
		t.Fatalf("unexpected condition: %q (%q)", obs.Condition, obs.ConditionType)
	}
	if gotQuery == "" {
		t.Fatal("expected query parameters on the request")
	}
}

func TestGoogleWeatherForecast(t *testing.T) {
	p := newGoogleTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(forecastDaysBody))
	})

	days, err := p.Forecast(context.Background(), 19.076, 72.8777, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(days) != 2 {
		t.Fatalf("expected 2 forecast days, got %d", len(days))
	}
	if days[0].MaxTempC == nil || *days[0].MaxTempC != 30.1 {
		t.Fatalf("unexpected day 0 max: %v", days[0].MaxTempC)
	}
	if days[0].ConditionType != "RAIN" {
		t.Fatalf("unexpected day 0 condition type: %q", days[0].ConditionType)
	}
	// Missing minTemperature stays nil so normalization can default it.
	if days[1].MinTempC != nil {
		t.Fatalf("expected nil min for day 1, got %v", *days[1].MinTempC)
	}
}

func TestGoogleWeatherNonSuccessStatus(t *testing.T) {
	p := newGoogleTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})

	if _, err := p.Current(context.Background(), 1, 2); err == nil {
		t.Fatal("expected an error for non-success status")
	}
	if _, err := p.Forecast(context.Background(), 1, 2, 7); err == nil {
		t.Fatal("expected an error for non-success status")
	}
}

func TestGoogleWeatherMissingKey(t *testing.T) {
	p := NewGoogleWeatherProvider(&http.Client{}, "")

	if _, err := p.Current(context.Background(), 1, 2); err == nil {
		t.Fatal("expected an error without an api key")
	}
	if _, err := p.Forecast(context.Background(), 1, 2, 7); err == nil {
		t.Fatal("expected an error without an api key")
	}
}

func TestBreakerOpensAfterServerErrors(t *testing.T) {
	var calls int
	p := newGoogleTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	// Default gobreaker settings trip after five consecutive failures.
	for i := 0; i < 6; i++ {
		p.Current(context.Background(), 1, 2)
	}

	before := calls
	if _, err := p.Current(context.Background(), 1, 2); err == nil {
		t.Fatal("expected an error while breaker is open")
	}
	if calls != before {
		t.Fatalf("expected no upstream call while breaker is open, got %d extra", calls-before)
	}
}
