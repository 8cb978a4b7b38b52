package dashboard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dash/internal/domain/entity"
	"weather-dash/internal/domain/model"
	"weather-dash/internal/domain/model/external"
	"weather-dash/internal/domain/registry"
)

var testLocation = time.FixedZone("MYT", 8*3600)

type stubGateway struct {
	bulk          []external.CurrentWeatherResponse
	bulkErr       error
	forecast      *external.ForecastResponse
	forecastErr   error
	historical    *external.HistoricalResponse
	historicalErr error

	gotStartDate string
	gotEndDate   string
}

func (g *stubGateway) GetCurrentBulk([]entity.City) ([]external.CurrentWeatherResponse, error) {
	return g.bulk, g.bulkErr
}

func (g *stubGateway) GetForecast(float64, float64) (*external.ForecastResponse, error) {
	return g.forecast, g.forecastErr
}

func (g *stubGateway) GetHistorical(_, _ float64, startDate, endDate string) (*external.HistoricalResponse, error) {
	g.gotStartDate = startDate
	g.gotEndDate = endDate
	return g.historical, g.historicalErr
}

func (g *stubGateway) Health() model.ComponentHealthStatus {
	return model.ComponentHealthStatus{Status: model.StatusUp}
}

func newTestUseCase(reg *registry.Registry, gateway *stubGateway, now time.Time) *dashboardUseCase {
	return &dashboardUseCase{
		registry:        reg,
		apiGateway:      gateway,
		location:        testLocation,
		historicalStart: "2025-04-22",
		now:             func() time.Time { return now },
	}
}

func testRegistry() *registry.Registry {
	return registry.New([]entity.City{
		{Name: "Kuala Lumpur", Latitude: 3.14, Longitude: 101.69},
		{Name: "Ipoh", Latitude: 4.60, Longitude: 101.08},
		{Name: "Kuantan", Latitude: 3.81, Longitude: 103.33},
	})
}

func TestNavigation(t *testing.T) {
	useCase := newTestUseCase(testRegistry(), &stubGateway{}, time.Now())

	navigation := useCase.Navigation()

	assert.Equal(t, []string{model.HomeOption, "Ipoh", "Kuala Lumpur", "Kuantan"}, navigation.Options)
}

func TestOverview(t *testing.T) {
	gateway := &stubGateway{
		bulk: []external.CurrentWeatherResponse{
			{Latitude: 3.125, Longitude: 101.6875, Current: external.CurrentConditionsDTO{Temperature: 33.0, Precipitation: 0, WeatherCode: 0, Humidity: 70, WindSpeed: 8}},
			{Latitude: 4.625, Longitude: 101.0625, Current: external.CurrentConditionsDTO{Temperature: 26.0, Precipitation: 1.4, WeatherCode: 61, Humidity: 90, WindSpeed: 5}},
			{Latitude: 3.8125, Longitude: 103.3125, Current: external.CurrentConditionsDTO{Temperature: 29.5, Precipitation: 6.2, WeatherCode: 95, Humidity: 85, WindSpeed: 12}},
		},
	}
	useCase := newTestUseCase(testRegistry(), gateway, time.Now())

	overview, err := useCase.Overview()

	require.NoError(t, err)
	require.Len(t, overview.MapPoints, 3)
	require.Len(t, overview.Summary, 3)

	// Dry city keeps a visible marker; wet cities scale with precipitation.
	assert.Equal(t, 0.1, overview.MapPoints[0].MarkerSize)
	assert.Equal(t, 1.4, overview.MapPoints[1].MarkerSize)

	// Coordinates come from the API echo, not the registry.
	assert.Equal(t, 3.125, overview.MapPoints[0].Latitude)

	assert.Equal(t, "☀️ Clear", overview.Summary[0].Condition)
	assert.Equal(t, "⛈️ Thunderstorm", overview.Summary[2].Condition)

	assert.Equal(t, 29.5, overview.Analytics.AverageTemperature)
	assert.Equal(t, model.CityStat{City: "Kuala Lumpur", Value: 33.0}, overview.Analytics.Hottest)
	assert.Equal(t, model.CityStat{City: "Ipoh", Value: 26.0}, overview.Analytics.Coldest)
	assert.Equal(t, model.CityStat{City: "Kuantan", Value: 6.2}, overview.Analytics.Rainiest)
}

func TestOverviewGatewayError(t *testing.T) {
	gateway := &stubGateway{bulkErr: errors.New("upstream down")}
	useCase := newTestUseCase(testRegistry(), gateway, time.Now())

	_, err := useCase.Overview()

	assert.Error(t, err)
}

func TestOverviewLengthMismatch(t *testing.T) {
	gateway := &stubGateway{
		bulk: []external.CurrentWeatherResponse{{Latitude: 3.125, Longitude: 101.6875}},
	}
	useCase := newTestUseCase(testRegistry(), gateway, time.Now())

	_, err := useCase.Overview()

	assert.Error(t, err)
}

func TestCityDetailUnknownCity(t *testing.T) {
	useCase := newTestUseCase(testRegistry(), &stubGateway{}, time.Now())

	_, err := useCase.CityDetail("Atlantis", 24)

	assert.ErrorIs(t, err, ErrCityNotFound)
}

func TestCityDetailForecastError(t *testing.T) {
	gateway := &stubGateway{forecastErr: errors.New("upstream down")}
	useCase := newTestUseCase(testRegistry(), gateway, time.Now())

	_, err := useCase.CityDetail("Ipoh", 24)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCityNotFound)
}

func TestCityDetail(t *testing.T) {
	now := time.Date(2025, 8, 29, 10, 30, 0, 0, testLocation)
	gateway := &stubGateway{
		forecast: &external.ForecastResponse{
			Current: external.CurrentConditionsDTO{
				Temperature:         31.4,
				ApparentTemperature: 35.8,
				Humidity:            74,
				WindSpeed:           7.9,
				WeatherCode:         2,
			},
			Hourly: external.HourlySeriesDTO{
				Time:                     []string{"2025-08-29T09:00", "2025-08-29T10:00", "2025-08-29T11:00", "2025-08-29T12:00"},
				Temperature:              []float64{29.0, 30.5, 31.4, 32.0},
				PrecipitationProbability: []float64{5, 10, 20, 40},
			},
			Daily: external.DailySeriesDTO{
				Time:           []string{"2025-08-29", "2025-08-30"},
				WeatherCode:    []int{80, 3},
				TemperatureMax: []float64{32.0, 31.0},
				TemperatureMin: []float64{25.0, 24.5},
			},
		},
		historical: &external.HistoricalResponse{
			Daily: &external.HistoricalDailyDTO{
				Time:             []string{"2025-04-22", "2025-04-30", "2025-05-01"},
				PrecipitationSum: []float64{4.239, 1.101, 7.5},
			},
		},
	}
	useCase := newTestUseCase(testRegistry(), gateway, now)

	detail, err := useCase.CityDetail("Kuala Lumpur", 24)

	require.NoError(t, err)
	assert.Equal(t, "Kuala Lumpur", detail.City)
	assert.Equal(t, 31.4, detail.Current.Temperature)
	assert.Equal(t, "Partly cloudy", detail.Current.Condition)
	assert.Equal(t, "⛅️", detail.Current.ConditionIcon)

	// The hourly window starts at the first timestamp at or after now.
	require.Len(t, detail.Hourly, 2)
	assert.Equal(t, "2025-08-29T11:00", detail.Hourly[0].Time)
	assert.Equal(t, 31.4, detail.Hourly[0].Temperature)

	require.Len(t, detail.Daily, 2)
	assert.Equal(t, "🌦️ Rain showers", detail.Daily[0].Condition)
	assert.Equal(t, 32.0, detail.Daily[0].High)
	assert.Equal(t, 25.0, detail.Daily[0].Low)

	// Historical dailies roll up by calendar month, ascending.
	require.Len(t, detail.MonthlyRainfall, 2)
	assert.Equal(t, model.MonthlyRainfall{Month: "2025-04", PrecipitationSum: 5.34}, detail.MonthlyRainfall[0])
	assert.Equal(t, model.MonthlyRainfall{Month: "2025-05", PrecipitationSum: 7.5}, detail.MonthlyRainfall[1])
	assert.Empty(t, detail.HistoricalNote)

	// Historical range runs from the fixed start to yesterday.
	assert.Equal(t, "2025-04-22", gateway.gotStartDate)
	assert.Equal(t, "2025-08-28", gateway.gotEndDate)
}

func TestCityDetailHourlyWindowIsLimited(t *testing.T) {
	now := time.Date(2025, 8, 29, 0, 0, 0, 0, testLocation)

	times := make([]string, 48)
	temps := make([]float64, 48)
	for i := range times {
		times[i] = now.Add(time.Duration(i) * time.Hour).Format("2006-01-02T15:04")
		temps[i] = 25 + float64(i%5)
	}

	gateway := &stubGateway{
		forecast: &external.ForecastResponse{
			Hourly: external.HourlySeriesDTO{Time: times, Temperature: temps},
		},
		historicalErr: errors.New("not relevant here"),
	}
	useCase := newTestUseCase(testRegistry(), gateway, now)

	detail, err := useCase.CityDetail("Ipoh", 24)

	require.NoError(t, err)
	assert.Len(t, detail.Hourly, 24)

	short, err := useCase.CityDetail("Ipoh", 6)
	require.NoError(t, err)
	assert.Len(t, short.Hourly, 6)
}

func TestCityDetailHistoricalFailureDegrades(t *testing.T) {
	gateway := &stubGateway{
		forecast:      &external.ForecastResponse{},
		historicalErr: errors.New("archive down"),
	}
	useCase := newTestUseCase(testRegistry(), gateway, time.Now())

	detail, err := useCase.CityDetail("Kuantan", 24)

	require.NoError(t, err)
	assert.Empty(t, detail.MonthlyRainfall)
	assert.NotEmpty(t, detail.HistoricalNote)
}

func TestCityDetailEmptyHistoricalDegrades(t *testing.T) {
	gateway := &stubGateway{
		forecast:   &external.ForecastResponse{},
		historical: &external.HistoricalResponse{Daily: &external.HistoricalDailyDTO{}},
	}
	useCase := newTestUseCase(testRegistry(), gateway, time.Now())

	detail, err := useCase.CityDetail("Kuantan", 24)

	require.NoError(t, err)
	assert.Empty(t, detail.MonthlyRainfall)
	assert.NotEmpty(t, detail.HistoricalNote)
}
