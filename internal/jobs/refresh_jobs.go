package jobs

import (
	"context"
	"time"

	"github.com/parcauto/fleet-dashboard/internal/backend"
	"github.com/parcauto/fleet-dashboard/internal/config"
	"github.com/parcauto/fleet-dashboard/internal/service"
	"go.uber.org/zap"
)

// RefreshJobs keeps the read caches warm and watches stock levels outside of
// any browser session. Backend calls authenticate with the dedicated service
// token, never with a user's token.
type RefreshJobs struct {
	dashboards *service.DashboardService
	spareParts *service.SparePartService
	cfg        *config.JobsConfig
	logger     *zap.Logger
}

func NewRefreshJobs(
	dashboards *service.DashboardService,
	spareParts *service.SparePartService,
	cfg *config.JobsConfig,
	logger *zap.Logger,
) *RefreshJobs {
	return &RefreshJobs{
		dashboards: dashboards,
		spareParts: spareParts,
		cfg:        cfg,
		logger:     logger,
	}
}

// Register wires the jobs into the scheduler
func (j *RefreshJobs) Register(scheduler *Scheduler) error {
	if err := scheduler.AddJob("dashboard-refresh", j.cfg.DashboardRefreshCron, j.RefreshDashboard); err != nil {
		return err
	}
	return scheduler.AddJob("low-stock-poll", j.cfg.LowStockPollCron, j.PollLowStock)
}

// RefreshDashboard re-fetches the current-year dashboard so the cache never
// goes cold between browser visits
func (j *RefreshJobs) RefreshDashboard() {
	ctx, cancel := j.jobContext()
	defer cancel()

	year := time.Now().Year()
	if err := j.dashboards.Refresh(ctx, year); err != nil {
		j.logger.Warn("dashboard refresh failed",
			zap.Int("year", year),
			zap.Error(err),
		)
		return
	}
	j.logger.Debug("dashboard cache warmed", zap.Int("year", year))
}

// PollLowStock checks for parts below their minimum and logs each one. The
// log line is what hooks the alerting pipeline.
func (j *RefreshJobs) PollLowStock() {
	ctx, cancel := j.jobContext()
	defer cancel()

	parts, err := j.spareParts.LowStock(ctx)
	if err != nil {
		j.logger.Warn("low stock poll failed", zap.Error(err))
		return
	}
	for _, part := range parts {
		j.logger.Warn("spare part below minimum stock",
			zap.Int("spare_part_id", part.ID),
			zap.String("code", part.Code),
			zap.String("name", part.Name),
			zap.Int("quantity_in_stock", part.QuantityInStock),
			zap.Int("minimum_stock", part.MinimumStock),
		)
	}
	if len(parts) == 0 {
		j.logger.Debug("no spare parts below minimum stock")
	}
}

func (j *RefreshJobs) jobContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	return backend.WithToken(ctx, j.cfg.ServiceToken), cancel
}
