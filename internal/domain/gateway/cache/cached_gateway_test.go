package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dash/internal/domain/entity"
	"weather-dash/internal/domain/model"
	"weather-dash/internal/domain/model/external"
	"weather-dash/pkg/memcache"
)

type countingGateway struct {
	bulkCalls       atomic.Int64
	forecastCalls   atomic.Int64
	historicalCalls atomic.Int64
	err             error
}

func (g *countingGateway) GetCurrentBulk(cities []entity.City) ([]external.CurrentWeatherResponse, error) {
	g.bulkCalls.Add(1)
	if g.err != nil {
		return nil, g.err
	}
	results := make([]external.CurrentWeatherResponse, len(cities))
	for i, city := range cities {
		results[i] = external.CurrentWeatherResponse{
			Latitude:  city.Latitude,
			Longitude: city.Longitude,
			Current:   external.CurrentConditionsDTO{Temperature: 30 + float64(i)},
		}
	}
	return results, nil
}

func (g *countingGateway) GetForecast(latitude, longitude float64) (*external.ForecastResponse, error) {
	g.forecastCalls.Add(1)
	if g.err != nil {
		return nil, g.err
	}
	return &external.ForecastResponse{Latitude: latitude, Longitude: longitude}, nil
}

func (g *countingGateway) GetHistorical(latitude, longitude float64, startDate, endDate string) (*external.HistoricalResponse, error) {
	g.historicalCalls.Add(1)
	if g.err != nil {
		return nil, g.err
	}
	return &external.HistoricalResponse{
		Latitude:  latitude,
		Longitude: longitude,
		Daily:     &external.HistoricalDailyDTO{Time: []string{startDate, endDate}},
	}, nil
}

func (g *countingGateway) Health() model.ComponentHealthStatus {
	return model.ComponentHealthStatus{Status: model.StatusUp}
}

var testCities = []entity.City{
	{Name: "Kuala Lumpur", Latitude: 3.14, Longitude: 101.69},
	{Name: "Ipoh", Latitude: 4.60, Longitude: 101.08},
}

func TestBulkIsFetchedOncePerWindow(t *testing.T) {
	upstream := &countingGateway{}
	gateway := NewCachedWeatherGateway(upstream, memcache.New(), 10*time.Minute, time.Hour)

	first, err := gateway.GetCurrentBulk(testCities)
	require.NoError(t, err)

	second, err := gateway.GetCurrentBulk(testCities)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), upstream.bulkCalls.Load())
}

func TestBulkRefetchedAfterExpiry(t *testing.T) {
	now := time.Now()
	store := memcache.New().WithClock(func() time.Time { return now })
	upstream := &countingGateway{}
	gateway := NewCachedWeatherGateway(upstream, store, 10*time.Minute, time.Hour)

	_, err := gateway.GetCurrentBulk(testCities)
	require.NoError(t, err)

	now = now.Add(11 * time.Minute)

	_, err = gateway.GetCurrentBulk(testCities)
	require.NoError(t, err)
	assert.Equal(t, int64(2), upstream.bulkCalls.Load())
}

func TestConcurrentMissesCollapse(t *testing.T) {
	upstream := &countingGateway{}
	gateway := NewCachedWeatherGateway(upstream, memcache.New(), 10*time.Minute, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := gateway.GetForecast(3.14, 101.69)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), upstream.forecastCalls.Load())
}

func TestDistinctKeysAreIndependent(t *testing.T) {
	upstream := &countingGateway{}
	gateway := NewCachedWeatherGateway(upstream, memcache.New(), 10*time.Minute, time.Hour)

	_, err := gateway.GetForecast(3.14, 101.69)
	require.NoError(t, err)
	_, err = gateway.GetForecast(4.60, 101.08)
	require.NoError(t, err)
	_, err = gateway.GetForecast(3.14, 101.69)
	require.NoError(t, err)

	assert.Equal(t, int64(2), upstream.forecastCalls.Load())
}

func TestHistoricalUsesItsOwnTTL(t *testing.T) {
	now := time.Now()
	store := memcache.New().WithClock(func() time.Time { return now })
	upstream := &countingGateway{}
	gateway := NewCachedWeatherGateway(upstream, store, 10*time.Minute, time.Hour)

	_, err := gateway.GetHistorical(3.14, 101.69, "2025-04-22", "2025-08-28")
	require.NoError(t, err)

	// Past the current-conditions window but inside the historical one.
	now = now.Add(30 * time.Minute)

	_, err = gateway.GetHistorical(3.14, 101.69, "2025-04-22", "2025-08-28")
	require.NoError(t, err)
	assert.Equal(t, int64(1), upstream.historicalCalls.Load())

	now = now.Add(31 * time.Minute)

	_, err = gateway.GetHistorical(3.14, 101.69, "2025-04-22", "2025-08-28")
	require.NoError(t, err)
	assert.Equal(t, int64(2), upstream.historicalCalls.Load())
}

func TestUpstreamErrorIsNotCached(t *testing.T) {
	upstream := &countingGateway{err: errors.New("boom")}
	gateway := NewCachedWeatherGateway(upstream, memcache.New(), 10*time.Minute, time.Hour)

	_, err := gateway.GetCurrentBulk(testCities)
	require.Error(t, err)

	upstream.err = nil

	results, err := gateway.GetCurrentBulk(testCities)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, int64(2), upstream.bulkCalls.Load())
}

type failingStore struct{}

func (failingStore) Get(context.Context, string, interface{}) (bool, error) {
	return false, errors.New("backend down")
}

func (failingStore) Set(context.Context, string, interface{}, time.Duration) error {
	return errors.New("backend down")
}

func (failingStore) Ping(context.Context) error {
	return errors.New("backend down")
}

func TestStoreFailureDegradesToFetch(t *testing.T) {
	upstream := &countingGateway{}
	gateway := NewCachedWeatherGateway(upstream, failingStore{}, 10*time.Minute, time.Hour)

	results, err := gateway.GetCurrentBulk(testCities)

	require.NoError(t, err)
	assert.Len(t, results, 2)
}
