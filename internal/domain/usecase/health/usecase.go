package health

import (
	"weather-dash/internal/domain/model"
)

type UseCase interface {
	// CheckHealth aggregates component statuses into the application health
	CheckHealth() model.HealthResponse
}
