package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/kasiv/weather-lookup/internal/common"
	"github.com/kasiv/weather-lookup/internal/weather"
	"github.com/sony/gobreaker"
)

// WttrProvider implements weather.InferenceProvider against wttr.in, a
// keyless weather source addressed by place name. It is the best-effort
// path used when geocoding yields nothing.
type WttrProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWttrProvider(client *http.Client) *WttrProvider {
	return &WttrProvider{
		name:    "wttr.in",
		baseURL: "https://wttr.in",
		httpCfg: HTTPClientConfig{Client: client},
		circuit: newBreaker("wttr"),
	}
}

func (p *WttrProvider) Name() string {
	return p.name
}

// Infer fetches a complete best-effort result for the place name.
func (p *WttrProvider) Infer(ctx context.Context, place string, units weather.Units) (weather.WeatherResult, error) {
	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s/%s?format=j1", p.baseURL, url.PathEscape(place))
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	resp, err := doRequestWithBreaker(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.WeatherResult{}, err
	}
	defer resp.Body.Close()

	// wttr.in encodes every numeric field as a string.
	var payload struct {
		CurrentCondition []struct {
			TempC          string `json:"temp_C"`
			Humidity       string `json:"humidity"`
			WindspeedKmph  string `json:"windspeedKmph"`
			WinddirDegree  string `json:"winddirDegree"`
			Winddir16Point string `json:"winddir16Point"`
			WeatherDesc    []struct {
				Value string `json:"value"`
			} `json:"weatherDesc"`
		} `json:"current_condition"`
		Weather []struct {
			MaxTempC string `json:"maxtempC"`
			MinTempC string `json:"mintempC"`
			Hourly   []struct {
				WeatherDesc []struct {
					Value string `json:"value"`
				} `json:"weatherDesc"`
			} `json:"hourly"`
		} `json:"weather"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.WeatherResult{}, err
	}
	if len(payload.CurrentCondition) == 0 {
		return weather.WeatherResult{}, fmt.Errorf("wttr.in returned no current conditions for %q", place)
	}

	cc := payload.CurrentCondition[0]
	tempC := parseFloatDefault(cc.TempC, 22)
	condition := "Clear"
	if len(cc.WeatherDesc) > 0 && strings.TrimSpace(cc.WeatherDesc[0].Value) != "" {
		condition = strings.TrimSpace(cc.WeatherDesc[0].Value)
	}

	temperature := weather.ConvertTemp(tempC, units)
	current := weather.CurrentConditions{
		Temperature: temperature,
		TempMin:     temperature - 5,
		TempMax:     temperature,
		Condition:   condition,
		Humidity:    int(parseFloatDefault(cc.Humidity, 60)),
		WindSpeed:   int(parseFloatDefault(cc.WindspeedKmph, 10)),
		WindDeg:     int(parseFloatDefault(cc.WinddirDegree, 0)),
		WindDir:     cardinalOrDefault(cc.Winddir16Point),
		Icon:        weather.IconFor(conditionTypeFromText(condition)),
	}

	forecast := make([]weather.ForecastDay, 0, len(payload.Weather))
	for i, d := range payload.Weather {
		if i >= 7 {
			break
		}

		dayCondition := condition
		// Midday hour when present; wttr.in returns 8 three-hour slots.
		if len(d.Hourly) > 4 && len(d.Hourly[4].WeatherDesc) > 0 {
			dayCondition = strings.TrimSpace(d.Hourly[4].WeatherDesc[0].Value)
		}

		forecast = append(forecast, weather.ForecastDay{
			Day:       weather.DayLabel(i),
			High:      weather.ConvertTemp(parseFloatDefault(d.MaxTempC, tempC), units),
			Low:       weather.ConvertTemp(parseFloatDefault(d.MinTempC, tempC-5), units),
			Condition: dayCondition,
			Icon:      weather.IconFor(conditionTypeFromText(dayCondition)),
		})
	}

	result := weather.WeatherResult{
		Current:         current,
		Forecast:        forecast,
		Recommendations: weather.Recommend(tempC, condition),
		Alerts:          []string{},
		Source:          weather.SourceProvider,
	}

	if len(forecast) > 0 {
		result.Current.TempMax = forecast[0].High
		result.Current.TempMin = forecast[0].Low
	}

	return result, nil
}

// conditionTypeFromText maps a free-text description onto the provider
// condition type vocabulary so the shared icon table applies.
func conditionTypeFromText(text string) string {
	t := strings.ToLower(text)
	switch {
	case common.HasAny(t, "thunder", "storm"):
		return "THUNDERSTORM"
	case common.HasAny(t, "drizzle"):
		return "DRIZZLE"
	case common.HasAny(t, "rain", "shower"):
		return "RAIN"
	case common.HasAny(t, "snow", "sleet", "blizzard", "ice"):
		return "SNOW"
	case common.HasAny(t, "mist", "fog", "haze"):
		return "MIST"
	case common.HasAny(t, "wind"):
		return "WIND"
	case common.HasAny(t, "partly"):
		return "PARTLY_CLOUDY"
	case common.HasAny(t, "cloud", "overcast"):
		return "CLOUDY"
	case common.HasAny(t, "sunny", "clear"):
		return "CLEAR"
	default:
		return ""
	}
}

func parseFloatDefault(s string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return f
}

func cardinalOrDefault(dir string) string {
	if strings.TrimSpace(dir) == "" {
		return "N"
	}
	return dir
}
