package entity

// WeatherCondition is the human-readable rendering of an upstream weather code.
type WeatherCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Label renders the condition as "<icon> <description>", matching how the
// dashboard displays it in tables.
func (w WeatherCondition) Label() string {
	if w.Icon == "" {
		return w.Description
	}
	return w.Icon + " " + w.Description
}

// weatherCodes maps WMO weather codes reported by the upstream API to
// descriptions and icons.
var weatherCodes = map[int]WeatherCondition{
	0:  {Description: "Clear", Icon: "☀️"},
	1:  {Description: "Mainly clear", Icon: "🌤️"},
	2:  {Description: "Partly cloudy", Icon: "⛅️"},
	3:  {Description: "Overcast", Icon: "☁️"},
	45: {Description: "Fog", Icon: "🌫️"},
	48: {Description: "Rime fog", Icon: "🌫️"},
	51: {Description: "Light drizzle", Icon: "💧"},
	53: {Description: "Mod. drizzle", Icon: "💧"},
	55: {Description: "Dense drizzle", Icon: "💧"},
	61: {Description: "Slight rain", Icon: "🌧️"},
	63: {Description: "Mod. rain", Icon: "🌧️"},
	65: {Description: "Heavy rain", Icon: "🌧️"},
	80: {Description: "Rain showers", Icon: "🌦️"},
	81: {Description: "Rain showers", Icon: "🌦️"},
	82: {Description: "Violent showers", Icon: "🌦️"},
	95: {Description: "Thunderstorm", Icon: "⛈️"},
}

// DescribeWeatherCode resolves a weather code to its condition. Codes outside
// the table resolve to ("Unknown", "") so the mapping is total.
func DescribeWeatherCode(code int) WeatherCondition {
	if condition, ok := weatherCodes[code]; ok {
		return condition
	}
	return WeatherCondition{Description: "Unknown", Icon: ""}
}
