package weather

// iconByConditionType maps provider condition type codes to the fixed icon
// vocabulary used in responses. Unrecognized codes map to a plain cloud.
var iconByConditionType = map[string]string{
	"CLEAR":             "fas fa-sun",
	"PARTLY_CLOUDY":     "fas fa-cloud-sun",
	"CLOUDY":            "fas fa-cloud",
	"RAIN":              "fas fa-cloud-rain",
	"SCATTERED_SHOWERS": "fas fa-cloud-rain",
	"DRIZZLE":           "fas fa-cloud-rain",
	"THUNDERSTORM":      "fas fa-bolt",
	"SNOW":              "fas fa-snowflake",
	"MIST":              "fas fa-smog",
	"FOG":               "fas fa-smog",
	"WIND":              "fas fa-wind",
}

const iconDefault = "fas fa-cloud"

// IconFor returns the icon identifier for a provider condition type.
func IconFor(conditionType string) string {
	if icon, ok := iconByConditionType[conditionType]; ok {
		return icon
	}
	return iconDefault
}
