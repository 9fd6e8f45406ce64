package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	driverActivityJob *DriverActivityJob
	autoDispatchJob   *AutoDispatchJob
	autoDispatch      bool
}

// NewJobManager creates a new job manager with all required jobs. The auto
// dispatch job is only started when autoDispatch is set; the activity sweep
// always runs.
func NewJobManager(
	refreshActivityHandler commands.RefreshDriverActivityCommandHandler,
	dispatchHandler commands.DispatchPendingOrderCommandHandler,
	autoDispatch bool,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		driverActivityJob: NewDriverActivityJob(refreshActivityHandler, logger),
		autoDispatchJob:   NewAutoDispatchJob(dispatchHandler, logger),
		autoDispatch:      autoDispatch,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.driverActivityJob.Start(); err != nil {
		return fmt.Errorf("failed to start driver activity job: %w", err)
	}

	if jm.autoDispatch {
		if err := jm.autoDispatchJob.Start(); err != nil {
			jm.driverActivityJob.Stop()
			return fmt.Errorf("failed to start auto dispatch job: %w", err)
		}
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.autoDispatch {
		jm.autoDispatchJob.Stop()
	}
	jm.driverActivityJob.Stop()
}
