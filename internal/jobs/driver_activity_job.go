package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DriverActivityJob periodically reclassifies driver activity from fix
// recency. Queries derive activity on the fly; the sweep keeps the stored
// projection from drifting for drivers that stop reporting.
type DriverActivityJob struct {
	handler commands.RefreshDriverActivityCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDriverActivityJob creates the activity sweep job.
func NewDriverActivityJob(handler commands.RefreshDriverActivityCommandHandler, logger *slog.Logger) *DriverActivityJob {
	return &DriverActivityJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "driver_activity_job"),
	}
}

// Start begins the sweep, running every thirty seconds.
func (j *DriverActivityJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewRefreshDriverActivityCommand()

		changed, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Driver activity sweep failed", "error", err)
			return
		}
		if changed > 0 {
			j.logger.DebugContext(ctx, "Driver activity refreshed", "changed", changed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Driver activity job started (running every 30 seconds)")
	return nil
}

// Stop stops the sweep.
func (j *DriverActivityJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Driver activity job stopped")
}
