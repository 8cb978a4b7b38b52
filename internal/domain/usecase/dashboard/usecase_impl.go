package dashboard

import (
	"fmt"
	"math"
	"sort"
	"time"

	"weather-dash/internal/domain/entity"
	"weather-dash/internal/domain/gateway/api"
	"weather-dash/internal/domain/model"
	"weather-dash/internal/domain/model/external"
	"weather-dash/internal/domain/registry"
	"weather-dash/pkg/log"
	"weather-dash/pkg/msg"
)

const (
	dateLayout = "2006-01-02"
	hourLayout = "2006-01-02T15:04"

	// minMarkerSize keeps dry cities visible on the overview map.
	minMarkerSize = 0.1
)

type dashboardUseCase struct {
	registry        *registry.Registry
	apiGateway      api.WeatherGateway
	location        *time.Location
	historicalStart string
	now             func() time.Time
}

func NewDashboardUseCase(reg *registry.Registry, apiGateway api.WeatherGateway, location *time.Location, historicalStart string) UseCase {
	return &dashboardUseCase{
		registry:        reg,
		apiGateway:      apiGateway,
		location:        location,
		historicalStart: historicalStart,
		now:             time.Now,
	}
}

// Navigation returns the sidebar options: home followed by sorted city names
func (uc *dashboardUseCase) Navigation() model.NavigationView {
	return model.NavigationView{
		Options: append([]string{model.HomeOption}, uc.registry.Names()...),
	}
}

// Overview builds the national overview from a bulk current-conditions fetch
func (uc *dashboardUseCase) Overview() (*model.OverviewView, error) {
	cities := uc.registry.Cities()

	results, err := uc.apiGateway.GetCurrentBulk(cities)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch national overview: %w", err)
	}
	if len(results) != len(cities) {
		return nil, fmt.Errorf("bulk response has %d entries for %d cities", len(results), len(cities))
	}

	view := &model.OverviewView{
		MapPoints: make([]model.MapPoint, 0, len(cities)),
		Summary:   make([]model.SummaryRow, 0, len(cities)),
	}

	var tempSum float64
	for i, city := range cities {
		current := results[i].Current

		size := current.Precipitation
		if size <= 0 {
			size = minMarkerSize
		}
		view.MapPoints = append(view.MapPoints, model.MapPoint{
			Name: city.Name,
			// Coordinates come from the API echo, which snaps them to its grid.
			Latitude:      results[i].Latitude,
			Longitude:     results[i].Longitude,
			Temperature:   current.Temperature,
			Precipitation: current.Precipitation,
			MarkerSize:    size,
		})

		view.Summary = append(view.Summary, model.SummaryRow{
			City:          city.Name,
			Condition:     entity.DescribeWeatherCode(current.WeatherCode).Label(),
			Temperature:   current.Temperature,
			Precipitation: current.Precipitation,
			Humidity:      current.Humidity,
			WindSpeed:     current.WindSpeed,
		})

		tempSum += current.Temperature
		uc.trackExtremes(&view.Analytics, city, current, i == 0)
	}

	view.Analytics.AverageTemperature = math.Round(tempSum/float64(len(cities))*10) / 10
	return view, nil
}

// trackExtremes folds one city's conditions into the analytics panel.
func (uc *dashboardUseCase) trackExtremes(analytics *model.OverviewAnalytics, city entity.City, current external.CurrentConditionsDTO, first bool) {
	if first || current.Temperature > analytics.Hottest.Value {
		analytics.Hottest = model.CityStat{City: city.Name, Value: current.Temperature}
	}
	if first || current.Temperature < analytics.Coldest.Value {
		analytics.Coldest = model.CityStat{City: city.Name, Value: current.Temperature}
	}
	if first || current.Precipitation > analytics.Rainiest.Value {
		analytics.Rainiest = model.CityStat{City: city.Name, Value: current.Precipitation}
	}
}

// CityDetail builds the detail view for one city
func (uc *dashboardUseCase) CityDetail(name string, hours int) (*model.CityDetailView, error) {
	city, ok := uc.registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCityNotFound, name)
	}

	forecast, err := uc.apiGateway.GetForecast(city.Latitude, city.Longitude)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast for %s: %w", name, err)
	}

	condition := entity.DescribeWeatherCode(forecast.Current.WeatherCode)
	now := uc.now().In(uc.location)

	view := &model.CityDetailView{
		City: city.Name,
		Current: model.CurrentMetrics{
			Temperature:         forecast.Current.Temperature,
			ApparentTemperature: forecast.Current.ApparentTemperature,
			Condition:           condition.Description,
			ConditionIcon:       condition.Icon,
			Humidity:            forecast.Current.Humidity,
			WindSpeed:           forecast.Current.WindSpeed,
		},
		Hourly: selectHourlyWindow(forecast.Hourly, now, hours),
		Daily:  dailyRows(forecast.Daily),
	}

	uc.attachMonthlyRainfall(view, city, now)
	return view, nil
}

// attachMonthlyRainfall fills the rainfall chart from historical data, or the
// placeholder note when none is available. Historical failures never fail the
// detail view.
func (uc *dashboardUseCase) attachMonthlyRainfall(view *model.CityDetailView, city entity.City, now time.Time) {
	endDate := now.AddDate(0, 0, -1).Format(dateLayout)

	historical, err := uc.apiGateway.GetHistorical(city.Latitude, city.Longitude, uc.historicalStart, endDate)
	if err != nil {
		log.Warnf("Historical data unavailable for city %s: %v", city.Name, err)
		view.HistoricalNote = msg.GetMessage("dashboard.detail.no-historical")
		return
	}

	monthly := aggregateMonthly(historical.Daily)
	if len(monthly) == 0 {
		view.HistoricalNote = msg.GetMessage("dashboard.detail.no-historical")
		return
	}
	view.MonthlyRainfall = monthly
}

// selectHourlyWindow slices the hourly series at the first timestamp >= now
// and returns at most `hours` points.
func selectHourlyWindow(series external.HourlySeriesDTO, now time.Time, hours int) []model.HourlyPoint {
	start := len(series.Time)
	for i, raw := range series.Time {
		t, err := time.ParseInLocation(hourLayout, raw, now.Location())
		if err != nil {
			continue
		}
		if !t.Before(now) {
			start = i
			break
		}
	}

	var points []model.HourlyPoint
	for i := start; i < len(series.Time) && len(points) < hours; i++ {
		point := model.HourlyPoint{Time: series.Time[i]}
		if i < len(series.Temperature) {
			point.Temperature = series.Temperature[i]
		}
		if i < len(series.PrecipitationProbability) {
			point.PrecipitationProbability = series.PrecipitationProbability[i]
		}
		points = append(points, point)
	}
	return points
}

// dailyRows converts the daily series into forecast table rows.
func dailyRows(series external.DailySeriesDTO) []model.DailyForecastRow {
	rows := make([]model.DailyForecastRow, 0, len(series.Time))
	for i, date := range series.Time {
		row := model.DailyForecastRow{Date: date}
		if i < len(series.TemperatureMax) {
			row.High = series.TemperatureMax[i]
		}
		if i < len(series.TemperatureMin) {
			row.Low = series.TemperatureMin[i]
		}
		if i < len(series.WeatherCode) {
			row.Condition = entity.DescribeWeatherCode(series.WeatherCode[i]).Label()
		}
		rows = append(rows, row)
	}
	return rows
}

// aggregateMonthly groups the historical dailies by calendar month and sums
// precipitation, returning months in ascending order.
func aggregateMonthly(daily *external.HistoricalDailyDTO) []model.MonthlyRainfall {
	if daily == nil {
		return nil
	}

	totals := make(map[string]float64)
	for i, raw := range daily.Time {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			continue
		}
		month := t.Format("2006-01")
		if i < len(daily.PrecipitationSum) {
			totals[month] += daily.PrecipitationSum[i]
		} else {
			totals[month] += 0
		}
	}

	months := make([]string, 0, len(totals))
	for month := range totals {
		months = append(months, month)
	}
	sort.Strings(months)

	result := make([]model.MonthlyRainfall, 0, len(months))
	for _, month := range months {
		result = append(result, model.MonthlyRainfall{
			Month:            month,
			PrecipitationSum: math.Round(totals[month]*100) / 100,
		})
	}
	return result
}
