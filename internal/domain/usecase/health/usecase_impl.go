package health

import (
	"context"
	"time"

	"weather-dash/internal/domain/gateway/api"
	"weather-dash/internal/domain/gateway/cache"
	"weather-dash/internal/domain/model"
)

const pingTimeout = 2 * time.Second

type healthUseCase struct {
	cacheStore cache.Store
	apiGateway api.WeatherGateway
}

func NewHealthUseCase(cacheStore cache.Store, apiGateway api.WeatherGateway) UseCase {
	return &healthUseCase{
		cacheStore: cacheStore,
		apiGateway: apiGateway,
	}
}

func (useCase *healthUseCase) CheckHealth() model.HealthResponse {
	cacheHealth := useCase.cacheHealth()
	upstreamHealth := useCase.apiGateway.Health()

	overallStatus := model.StatusUp
	if cacheHealth.Status != model.StatusUp || upstreamHealth.Status != model.StatusUp {
		overallStatus = model.StatusDown
	}

	return model.HealthResponse{
		Status:   overallStatus,
		Cache:    cacheHealth,
		Upstream: upstreamHealth,
	}
}

// cacheHealth probes the configured cache backend.
func (useCase *healthUseCase) cacheHealth() model.ComponentHealthStatus {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := useCase.cacheStore.Ping(ctx); err != nil {
		return model.ComponentHealthStatus{
			Status: model.StatusDown,
			Details: map[string]string{
				"message": err.Error(),
			},
		}
	}

	return model.ComponentHealthStatus{
		Status: model.StatusUp,
		Details: map[string]string{
			"message": string(model.StatusUp),
		},
	}
}
