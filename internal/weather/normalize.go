package weather

import (
	"fmt"
	"math"
	"strings"

	"github.com/kasiv/weather-lookup/internal/common"
)

// Documented defaults applied when a provider omits a numeric field.
// Partial data is preferable to failing the whole lookup.
const (
	defaultTemperatureC = 22.0
	defaultHumidityPct  = 60.0
	defaultWindSpeed    = 10.0
	defaultCondition    = "Clear"
	defaultCardinal     = "N"
)

// ConvertTemp expresses a Celsius temperature in the requested unit system,
// rounded to the nearest integer.
func ConvertTemp(celsius float64, units Units) int {
	if units == UnitsImperial {
		return int(math.Round(celsius*9/5 + 32))
	}
	return int(math.Round(celsius))
}

// DayLabel names a forecast day by its zero-based offset from today.
func DayLabel(i int) string {
	switch i {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return fmt.Sprintf("Day %d", i+1)
	}
}

// Recommend derives advice strings from the current conditions. The
// temperature threshold is evaluated in Celsius regardless of the
// requested unit system.
func Recommend(tempC float64, condition string) []string {
	var recs []string
	if tempC >= 30 {
		recs = append(recs, "Stay hydrated")
	}
	if common.HasAny(strings.ToLower(condition), "rain", "shower") {
		recs = append(recs, "Carry a raincoat")
	}
	recs = append(recs, "Use sunscreen during midday")
	return recs
}

// normalizeCurrent converts a raw provider observation into the normalized
// current-conditions view, filling defaults for missing fields.
func normalizeCurrent(obs CurrentObservation, units Units) (CurrentConditions, float64) {
	tempC := valueOr(obs.TemperatureC, defaultTemperatureC)
	temperature := ConvertTemp(tempC, units)

	condition := obs.Condition
	if condition == "" {
		condition = defaultCondition
	}

	cardinal := obs.WindCardinal
	if cardinal == "" {
		cardinal = defaultCardinal
	}

	windDeg := 0
	if obs.WindDeg != nil {
		windDeg = *obs.WindDeg
	}

	return CurrentConditions{
		Temperature: temperature,
		// Coarse estimate until the forecast supplies today's real range.
		TempMin:   temperature - 5,
		TempMax:   temperature,
		Condition: condition,
		Humidity:  int(math.Round(valueOr(obs.HumidityPct, defaultHumidityPct))),
		WindSpeed: int(math.Round(valueOr(obs.WindSpeed, defaultWindSpeed))),
		WindDeg:   windDeg,
		WindDir:   cardinal,
		Icon:      IconFor(obs.ConditionType),
	}, tempC
}

// normalizeForecast converts raw forecast days into the normalized view,
// capped at seven entries. Missing temperatures borrow from the current
// reading so a sparse forecast still renders.
func normalizeForecast(days []ForecastObservation, currentTempC float64, units Units) []ForecastDay {
	if len(days) > 7 {
		days = days[:7]
	}

	forecast := make([]ForecastDay, 0, len(days))
	for i, d := range days {
		condition := d.Condition
		if condition == "" {
			condition = defaultCondition
		}

		forecast = append(forecast, ForecastDay{
			Day:       DayLabel(i),
			High:      ConvertTemp(valueOr(d.MaxTempC, currentTempC), units),
			Low:       ConvertTemp(valueOr(d.MinTempC, currentTempC-5), units),
			Condition: condition,
			Icon:      IconFor(d.ConditionType),
		})
	}
	return forecast
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
