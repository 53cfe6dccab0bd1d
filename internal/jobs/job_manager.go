package jobs

import (
	"fmt"
	"log/slog"

	"parcelhub/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	slaMonitorJob *SLAMonitorJob
}

// NewJobManager creates a job manager wired to the sweep handler.
func NewJobManager(
	checkSLAHandler commands.CheckSLACommandHandler,
	slaSweepSpec string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		slaMonitorJob: NewSLAMonitorJob(checkSLAHandler, slaSweepSpec, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.slaMonitorJob.Start(); err != nil {
		return fmt.Errorf("failed to start sla monitor job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.slaMonitorJob.Stop()
}
