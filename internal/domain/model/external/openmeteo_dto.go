package external

import (
	"bytes"
	"encoding/json"
)

// CurrentConditionsDTO represents the "current" block of a forecast response.
type CurrentConditionsDTO struct {
	Time                string  `json:"time"`
	Temperature         float64 `json:"temperature_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	Humidity            float64 `json:"relative_humidity_2m"`
	Precipitation       float64 `json:"precipitation"`
	WeatherCode         int     `json:"weather_code"`
	WindSpeed           float64 `json:"wind_speed_10m"`
	WindDirection       float64 `json:"wind_direction_10m"`
}

// CurrentWeatherResponse represents one city's entry in a bulk current-conditions response.
type CurrentWeatherResponse struct {
	Latitude  float64              `json:"latitude"`
	Longitude float64              `json:"longitude"`
	Current   CurrentConditionsDTO `json:"current"`
}

// BulkCurrentResponse is the bulk current-conditions payload. The upstream
// API returns a bare object for a single coordinate pair and an array for
// several, so decoding accepts both.
type BulkCurrentResponse []CurrentWeatherResponse

func (b *BulkCurrentResponse) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var single CurrentWeatherResponse
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return err
		}
		*b = BulkCurrentResponse{single}
		return nil
	}

	var many []CurrentWeatherResponse
	if err := json.Unmarshal(trimmed, &many); err != nil {
		return err
	}
	*b = many
	return nil
}

// HourlySeriesDTO represents the parallel hourly arrays of a forecast response.
type HourlySeriesDTO struct {
	Time                     []string  `json:"time"`
	Temperature              []float64 `json:"temperature_2m"`
	PrecipitationProbability []float64 `json:"precipitation_probability"`
}

// DailySeriesDTO represents the parallel daily arrays of a forecast response.
type DailySeriesDTO struct {
	Time           []string  `json:"time"`
	WeatherCode    []int     `json:"weather_code"`
	TemperatureMax []float64 `json:"temperature_2m_max"`
	TemperatureMin []float64 `json:"temperature_2m_min"`
}

// ForecastResponse represents a single-city forecast response.
type ForecastResponse struct {
	Latitude  float64              `json:"latitude"`
	Longitude float64              `json:"longitude"`
	Current   CurrentConditionsDTO `json:"current"`
	Hourly    HourlySeriesDTO      `json:"hourly"`
	Daily     DailySeriesDTO       `json:"daily"`
}

// HistoricalDailyDTO represents the parallel daily arrays of a historical response.
type HistoricalDailyDTO struct {
	Time             []string  `json:"time"`
	TemperatureMean  []float64 `json:"temperature_2m_mean"`
	PrecipitationSum []float64 `json:"precipitation_sum"`
}

// HistoricalResponse represents a historical daily-aggregates response. Daily
// is a pointer so its absence in the payload is detectable.
type HistoricalResponse struct {
	Latitude  float64             `json:"latitude"`
	Longitude float64             `json:"longitude"`
	Daily     *HistoricalDailyDTO `json:"daily"`
}

// APIErrorResponse represents error payloads from the weather API.
type APIErrorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}
