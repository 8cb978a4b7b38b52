package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"weather-dash/internal/domain/entity"
	"weather-dash/internal/domain/model"
	"weather-dash/internal/domain/model/external"
	"weather-dash/pkg/http"
)

const (
	currentParams  = "temperature_2m,relative_humidity_2m,precipitation,weather_code,wind_speed_10m"
	forecastParams = "temperature_2m,relative_humidity_2m,apparent_temperature,weather_code,wind_speed_10m,wind_direction_10m"
	hourlyParams   = "temperature_2m,precipitation_probability"
	dailyParams    = "weather_code,temperature_2m_max,temperature_2m_min"
	historicalDailyParams = "temperature_2m_mean,precipitation_sum"
)

// weatherGatewayImpl implements the WeatherGateway interface against the
// Open-Meteo forecast API. A circuit breaker sheds load when the upstream
// keeps failing; individual requests are never retried.
type weatherGatewayImpl struct {
	httpClient *http.Client
	timezone   string
	circuit    *gobreaker.CircuitBreaker
}

// NewWeatherGateway creates a new instance of WeatherGateway with HTTP client
func NewWeatherGateway(baseUrl string, timezone string, clientOptions http.ClientOptions) WeatherGateway {
	httpClient := http.NewHttpClient(baseUrl, clientOptions)

	circuit := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "open-meteo",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &weatherGatewayImpl{
		httpClient: httpClient,
		timezone:   timezone,
		circuit:    circuit,
	}
}

// GetCurrentBulk gets current conditions for all given cities in one request.
func (w *weatherGatewayImpl) GetCurrentBulk(cities []entity.City) ([]external.CurrentWeatherResponse, error) {
	if len(cities) == 0 {
		return nil, fmt.Errorf("at least one city is required")
	}

	latitudes := make([]string, len(cities))
	longitudes := make([]string, len(cities))
	for i, city := range cities {
		latitudes[i] = formatCoord(city.Latitude)
		longitudes[i] = formatCoord(city.Longitude)
	}

	params := map[string]string{
		"latitude":  strings.Join(latitudes, ","),
		"longitude": strings.Join(longitudes, ","),
		"current":   currentParams,
	}

	response := &external.BulkCurrentResponse{}
	if err := w.execute(params, response); err != nil {
		return nil, err
	}

	return []external.CurrentWeatherResponse(*response), nil
}

// GetForecast gets current conditions plus forecast series for one coordinate pair.
func (w *weatherGatewayImpl) GetForecast(latitude, longitude float64) (*external.ForecastResponse, error) {
	params := map[string]string{
		"latitude":  formatCoord(latitude),
		"longitude": formatCoord(longitude),
		"current":   forecastParams,
		"hourly":    hourlyParams,
		"daily":     dailyParams,
		"timezone":  w.timezone,
	}

	response := &external.ForecastResponse{}
	if err := w.execute(params, response); err != nil {
		return nil, err
	}

	return response, nil
}

// GetHistorical gets observed daily aggregates for one coordinate pair.
func (w *weatherGatewayImpl) GetHistorical(latitude, longitude float64, startDate, endDate string) (*external.HistoricalResponse, error) {
	params := map[string]string{
		"latitude":   formatCoord(latitude),
		"longitude":  formatCoord(longitude),
		"start_date": startDate,
		"end_date":   endDate,
		"daily":      historicalDailyParams,
		"timezone":   w.timezone,
	}

	response := &external.HistoricalResponse{}
	if err := w.execute(params, response); err != nil {
		return nil, err
	}

	if response.Daily == nil {
		return nil, fmt.Errorf("historical response is missing daily data")
	}

	return response, nil
}

// Health reports upstream availability from the circuit breaker state.
func (w *weatherGatewayImpl) Health() model.ComponentHealthStatus {
	state := w.circuit.State()
	if state == gobreaker.StateOpen {
		return model.ComponentHealthStatus{
			Status: model.StatusDown,
			Details: map[string]string{
				"message": "circuit breaker open, upstream weather API unavailable",
			},
		}
	}

	return model.ComponentHealthStatus{
		Status: model.StatusUp,
		Details: map[string]string{
			"message": "circuit breaker " + state.String(),
		},
	}
}

// execute issues a single GET against the forecast endpoint through the
// circuit breaker, decoding into successResp.
func (w *weatherGatewayImpl) execute(params map[string]string, successResp any) error {
	_, err := w.circuit.Execute(func() (interface{}, error) {
		_, errResp, _, err := w.httpClient.Request().
			WithMethod(http.GET).
			WithPath("/forecast").
			WithQueryParams(params).
			WithSuccessResp(successResp).
			WithErrorResp(&external.APIErrorResponse{}).
			Execute()

		if err == nil {
			return nil, nil
		}

		if errResp != nil {
			errorResponse := errResp.(*external.APIErrorResponse)
			if errorResponse.Reason != "" {
				return nil, fmt.Errorf("weather API error: %s", errorResponse.Reason)
			}
		}

		return nil, err
	})

	return err
}

// formatCoord renders a coordinate the way the upstream expects it.
func formatCoord(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
