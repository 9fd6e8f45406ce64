package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// AutoDispatchJob assigns the oldest unassigned pending order to the best
// available driver. Runs every five seconds so a driver coming online picks
// up backlog promptly.
type AutoDispatchJob struct {
	handler commands.DispatchPendingOrderCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAutoDispatchJob creates the dispatch job.
func NewAutoDispatchJob(handler commands.DispatchPendingOrderCommandHandler, logger *slog.Logger) *AutoDispatchJob {
	return &AutoDispatchJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "auto_dispatch_job"),
	}
}

// Start begins the dispatch job to run every five seconds.
func (j *AutoDispatchJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewDispatchPendingOrderCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An empty backlog or a fully busy fleet is the normal state.
			if !errors.Is(err, commands.ErrNoPendingOrder) && !errors.Is(err, services.ErrNoDriverAvailable) {
				j.logger.ErrorContext(ctx, "Auto dispatch job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto dispatch job started (running every 5 seconds)")
	return nil
}

// Stop stops the dispatch job.
func (j *AutoDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Auto dispatch job stopped")
}
