package weather

// Units selects the temperature representation of a lookup result.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// Source tags where the data in a WeatherResult came from. Callers may use
// it to decide whether a result is worth caching or retrying.
type Source string

const (
	// SourceProvider marks data obtained from a live upstream source.
	SourceProvider Source = "provider"
	// SourceFallback marks synthetic, seasonally-estimated data.
	SourceFallback Source = "fallback"
)

// Location is a resolved coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// WeatherQuery is a single lookup request. Either Lat+Lon or Place must be
// set; Units defaults to the service-wide default when empty.
type WeatherQuery struct {
	Lat   *float64
	Lon   *float64
	Place string
	Units Units
}

// CurrentConditions is the normalized present weather.
// Temperature fields are integers in the requested unit system.
type CurrentConditions struct {
	Temperature int    `json:"temperature"`
	TempMin     int    `json:"tempMin"`
	TempMax     int    `json:"tempMax"`
	Condition   string `json:"condition"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"windSpeed"`
	WindDeg     int    `json:"windDeg"`
	WindDir     string `json:"windDir"`
	Icon        string `json:"icon"`
}

// ForecastDay is one day's outlook. Days are ordered chronologically
// starting today; a forecast holds at most seven of them.
type ForecastDay struct {
	Day       string `json:"day"`
	High      int    `json:"high"`
	Low       int    `json:"low"`
	Condition string `json:"condition"`
	Icon      string `json:"icon"`
}

// WeatherResult is the full lookup payload returned to the caller.
type WeatherResult struct {
	Current         CurrentConditions `json:"current"`
	Forecast        []ForecastDay     `json:"forecast"`
	Recommendations []string          `json:"recommendations"`
	Alerts          []string          `json:"alerts"`
	Source          Source            `json:"source"`
}

// CurrentObservation is a raw current-conditions reading from a provider.
// Pointer fields distinguish a missing value from a real zero so that
// normalization can apply the documented defaults instead of failing.
type CurrentObservation struct {
	TemperatureC  *float64
	HumidityPct   *float64
	WindSpeed     *float64
	WindDeg       *int
	WindCardinal  string
	Condition     string
	ConditionType string
}

// ForecastObservation is one raw forecast day from a provider.
type ForecastObservation struct {
	MaxTempC      *float64
	MinTempC      *float64
	Condition     string
	ConditionType string
}
