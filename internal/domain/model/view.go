package model

// NavigationView lists the sidebar options: the home marker followed by the
// sorted city names.
type NavigationView struct {
	Options []string `json:"options"`
}

// HomeOption is the navigation entry selecting the national overview.
const HomeOption = "--- HOME ---"

// MapPoint is one marker on the national overview map. MarkerSize carries a
// floor value when precipitation is zero so the marker stays visible.
type MapPoint struct {
	Name          string  `json:"name"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Temperature   float64 `json:"temperature"`
	Precipitation float64 `json:"precipitation"`
	MarkerSize    float64 `json:"markerSize"`
}

// SummaryRow is one city's row in the national summary table.
type SummaryRow struct {
	City          string  `json:"city"`
	Condition     string  `json:"condition"`
	Temperature   float64 `json:"temperatureC"`
	Precipitation float64 `json:"rainMmHr"`
	Humidity      float64 `json:"humidityPercent"`
	WindSpeed     float64 `json:"windKmH"`
}

// CityStat names a city together with the value that singled it out.
type CityStat struct {
	City  string  `json:"city"`
	Value float64 `json:"value"`
}

// OverviewAnalytics is the aggregate panel over the current bulk fetch.
type OverviewAnalytics struct {
	AverageTemperature float64  `json:"averageTemperature"`
	Hottest            CityStat `json:"hottest"`
	Coldest            CityStat `json:"coldest"`
	Rainiest           CityStat `json:"rainiest"`
}

// OverviewView is the national overview: map, summary table and analytics.
type OverviewView struct {
	MapPoints []MapPoint        `json:"mapPoints"`
	Summary   []SummaryRow      `json:"summary"`
	Analytics OverviewAnalytics `json:"analytics"`
}

// CurrentMetrics is the four-metric header of the city detail view.
type CurrentMetrics struct {
	Temperature         float64 `json:"temperatureC"`
	ApparentTemperature float64 `json:"feelsLikeC"`
	Condition           string  `json:"condition"`
	ConditionIcon       string  `json:"conditionIcon"`
	Humidity            float64 `json:"humidityPercent"`
	WindSpeed           float64 `json:"windKmH"`
}

// HourlyPoint is one point of the dual-axis 24-hour chart.
type HourlyPoint struct {
	Time                     string  `json:"time"`
	Temperature              float64 `json:"temperatureC"`
	PrecipitationProbability float64 `json:"precipitationProbability"`
}

// DailyForecastRow is one row of the 7-day forecast table.
type DailyForecastRow struct {
	Date      string  `json:"date"`
	High      float64 `json:"highC"`
	Low       float64 `json:"lowC"`
	Condition string  `json:"condition"`
}

// MonthlyRainfall is one bar of the monthly rainfall chart.
type MonthlyRainfall struct {
	Month            string  `json:"month"`
	PrecipitationSum float64 `json:"totalRainfallMm"`
}

// CityDetailView is the per-city detail view. MonthlyRainfall is empty and
// HistoricalNote set when no historical data is available.
type CityDetailView struct {
	City            string             `json:"city"`
	Current         CurrentMetrics     `json:"current"`
	Hourly          []HourlyPoint      `json:"hourly"`
	Daily           []DailyForecastRow `json:"daily"`
	MonthlyRainfall []MonthlyRainfall  `json:"monthlyRainfall"`
	HistoricalNote  string             `json:"historicalNote,omitempty"`
}
