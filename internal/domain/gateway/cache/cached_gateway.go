package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"weather-dash/internal/domain/entity"
	"weather-dash/internal/domain/gateway/api"
	"weather-dash/internal/domain/model"
	"weather-dash/internal/domain/model/external"
	"weather-dash/pkg/log"
)

// cachedWeatherGateway decorates a WeatherGateway with TTL memoization keyed
// by call arguments. Concurrent misses on the same key are collapsed by a
// singleflight group, so within a window at most one upstream fetch happens
// per key. There is no manual invalidation; entries simply expire.
type cachedWeatherGateway struct {
	next          api.WeatherGateway
	store         Store
	group         singleflight.Group
	currentTTL    time.Duration
	historicalTTL time.Duration
}

// NewCachedWeatherGateway wraps the given gateway with caching. currentTTL
// covers bulk-current and forecast calls, historicalTTL the historical calls.
func NewCachedWeatherGateway(next api.WeatherGateway, store Store, currentTTL, historicalTTL time.Duration) api.WeatherGateway {
	return &cachedWeatherGateway{
		next:          next,
		store:         store,
		currentTTL:    currentTTL,
		historicalTTL: historicalTTL,
	}
}

// GetCurrentBulk serves bulk current conditions from cache when fresh.
func (g *cachedWeatherGateway) GetCurrentBulk(cities []entity.City) ([]external.CurrentWeatherResponse, error) {
	key := bulkKey(cities)

	var cached []external.CurrentWeatherResponse
	if hit := g.lookup(key, &cached); hit {
		return cached, nil
	}

	result, err, _ := g.group.Do(key, func() (interface{}, error) {
		var fresh []external.CurrentWeatherResponse
		if hit := g.lookup(key, &fresh); hit {
			return fresh, nil
		}

		fetched, err := g.next.GetCurrentBulk(cities)
		if err != nil {
			return nil, err
		}
		g.save(key, fetched, g.currentTTL)
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]external.CurrentWeatherResponse), nil
}

// GetForecast serves a single-city forecast from cache when fresh.
func (g *cachedWeatherGateway) GetForecast(latitude, longitude float64) (*external.ForecastResponse, error) {
	key := fmt.Sprintf("forecast::%s,%s", coord(latitude), coord(longitude))

	cached := &external.ForecastResponse{}
	if hit := g.lookup(key, cached); hit {
		return cached, nil
	}

	result, err, _ := g.group.Do(key, func() (interface{}, error) {
		fresh := &external.ForecastResponse{}
		if hit := g.lookup(key, fresh); hit {
			return fresh, nil
		}

		fetched, err := g.next.GetForecast(latitude, longitude)
		if err != nil {
			return nil, err
		}
		g.save(key, fetched, g.currentTTL)
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*external.ForecastResponse), nil
}

// GetHistorical serves historical aggregates from cache when fresh.
func (g *cachedWeatherGateway) GetHistorical(latitude, longitude float64, startDate, endDate string) (*external.HistoricalResponse, error) {
	key := fmt.Sprintf("historical::%s,%s::%s..%s", coord(latitude), coord(longitude), startDate, endDate)

	cached := &external.HistoricalResponse{}
	if hit := g.lookup(key, cached); hit {
		return cached, nil
	}

	result, err, _ := g.group.Do(key, func() (interface{}, error) {
		fresh := &external.HistoricalResponse{}
		if hit := g.lookup(key, fresh); hit {
			return fresh, nil
		}

		fetched, err := g.next.GetHistorical(latitude, longitude, startDate, endDate)
		if err != nil {
			return nil, err
		}
		g.save(key, fetched, g.historicalTTL)
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*external.HistoricalResponse), nil
}

// Health delegates to the wrapped gateway; the cache itself is probed
// separately through the store.
func (g *cachedWeatherGateway) Health() model.ComponentHealthStatus {
	return g.next.Health()
}

// lookup reads a key from the store, degrading a backend failure to a miss.
func (g *cachedWeatherGateway) lookup(key string, dest interface{}) bool {
	hit, err := g.store.Get(context.Background(), key, dest)
	if err != nil {
		log.Warnf("Cache lookup failed for key %s: %v", key, err)
		return false
	}
	return hit
}

// save writes a key to the store; a backend failure only loses the memo.
func (g *cachedWeatherGateway) save(key string, value interface{}, ttl time.Duration) {
	if err := g.store.Set(context.Background(), key, value, ttl); err != nil {
		log.Warnf("Cache write failed for key %s: %v", key, err)
	}
}

// bulkKey derives the cache key for a bulk-current call from its arguments.
func bulkKey(cities []entity.City) string {
	var b strings.Builder
	b.WriteString("current::")
	for i, city := range cities {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(coord(city.Latitude))
		b.WriteByte(',')
		b.WriteString(coord(city.Longitude))
	}
	return b.String()
}

func coord(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
