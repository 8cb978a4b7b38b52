package api

import (
	"weather-dash/internal/domain/entity"
	"weather-dash/internal/domain/model"
	"weather-dash/internal/domain/model/external"
)

// WeatherGateway defines the interface for weather-related external API calls
type WeatherGateway interface {
	// GetCurrentBulk gets current conditions for all given cities in one
	// request. The result has exactly one entry per city, in input order.
	GetCurrentBulk(cities []entity.City) ([]external.CurrentWeatherResponse, error)

	// GetForecast gets current conditions plus hourly and daily forecast
	// series for one coordinate pair.
	GetForecast(latitude, longitude float64) (*external.ForecastResponse, error)

	// GetHistorical gets observed daily aggregates for one coordinate pair
	// between startDate and endDate (inclusive, YYYY-MM-DD). The result is
	// only valid when the upstream payload carries a daily block.
	GetHistorical(latitude, longitude float64, startDate, endDate string) (*external.HistoricalResponse, error)

	// Health reports the gateway's view of upstream availability.
	Health() model.ComponentHealthStatus
}
