package weather

import "time"

// seasonalBaseline holds a generic seasonal climate curve in Celsius,
// indexed by zero-based calendar month.
var seasonalBaseline = []float64{20, 22, 26, 30, 32, 33, 32, 31, 30, 28, 24, 21}

const baselineDefault = 28.0

// fallbackConditions cycle through the synthetic forecast on day index mod 4.
var fallbackConditions = []string{"Sunny", "Partly Cloudy", "Cloudy", "Rain"}

var fallbackRecommendations = []string{
	"Carry light cotton clothing",
	"Stay hydrated",
	"Use sunscreen during midday",
}

const fallbackIcon = "fas fa-cloud-sun"

// baselineTemp picks the seasonal baseline for the given time.
func baselineTemp(now time.Time) float64 {
	idx := int(now.Month()) - 1
	if idx < 0 || idx >= len(seasonalBaseline) {
		return baselineDefault
	}
	return seasonalBaseline[idx]
}

// baselineCondition derives a coarse condition label from the baseline.
func baselineCondition(base float64) string {
	switch {
	case base >= 30:
		return "Sunny"
	case base >= 25:
		return "Partly Cloudy"
	default:
		return "Cloudy"
	}
}

// FallbackResult synthesizes a deterministic, network-free result from the
// seasonal baseline. It is the terminal recovery state of every lookup and
// never fails.
func FallbackResult(now time.Time, units Units) WeatherResult {
	base := baselineTemp(now)
	temperature := ConvertTemp(base, units)

	current := CurrentConditions{
		Temperature: temperature,
		TempMin:     temperature - 5,
		TempMax:     temperature,
		Condition:   baselineCondition(base),
		Humidity:    int(defaultHumidityPct),
		WindSpeed:   int(defaultWindSpeed),
		WindDir:     defaultCardinal,
		Icon:        fallbackIcon,
	}

	forecast := make([]ForecastDay, 0, 7)
	for i := 0; i < 7; i++ {
		forecast = append(forecast, ForecastDay{
			Day:       DayLabel(i),
			High:      ConvertTemp(base+float64(i%3)-1, units),
			Low:       ConvertTemp(base-5+float64(i%2), units),
			Condition: fallbackConditions[i%4],
			Icon:      fallbackIcon,
		})
	}

	recs := make([]string, len(fallbackRecommendations))
	copy(recs, fallbackRecommendations)

	return WeatherResult{
		Current:         current,
		Forecast:        forecast,
		Recommendations: recs,
		Alerts:          []string{},
		Source:          SourceFallback,
	}
}
