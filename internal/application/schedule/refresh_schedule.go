package schedule

import (
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"weather-dash/internal/domain/usecase/dashboard"
	"weather-dash/pkg/log"
	"weather-dash/pkg/msg"
)

// OverviewRefreshScheduler periodically rebuilds the national overview so the
// cache window never lapses between user requests.
type OverviewRefreshScheduler struct {
	cron           *cron.Cron
	useCase        dashboard.UseCase
	cronExpression string
}

func NewOverviewRefreshScheduler(useCase dashboard.UseCase, cronExpression string) *OverviewRefreshScheduler {
	return &OverviewRefreshScheduler{
		cron:           cron.New(),
		useCase:        useCase,
		cronExpression: cronExpression,
	}
}

// InitRefreshScheduleTasks initializes the overview refresh task.
func (scheduler *OverviewRefreshScheduler) InitRefreshScheduleTasks() {
	_, err := scheduler.cron.AddFunc(scheduler.cronExpression, scheduler.RefreshOverview)
	if err != nil {
		log.Errorf("Failed to initialize overview refresh scheduler, cron will not be started: %v", err)
		return
	}

	scheduler.cron.Start()
	log.Infof("Overview refresh scheduler started with cron expression: %s", scheduler.cronExpression)
}

// RefreshOverview runs one refresh pass through the cached gateway.
func (scheduler *OverviewRefreshScheduler) RefreshOverview() {
	requestID := uuid.New().String()

	log.Info(msg.GetMessage("refresh.cron.start"), zap.String("request_id", requestID))

	if _, err := scheduler.useCase.Overview(); err != nil {
		log.Warn(msg.GetMessage("refresh.cron.failed"), zap.String("request_id", requestID), zap.Error(err))
		return
	}

	log.Info(msg.GetMessage("refresh.cron.end"), zap.String("request_id", requestID))
}

// Stop gracefully stops the scheduler.
func (scheduler *OverviewRefreshScheduler) Stop() {
	if scheduler.cron != nil {
		ctx := scheduler.cron.Stop()
		<-ctx.Done()
	}
}
