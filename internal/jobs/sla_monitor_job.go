package jobs

import (
	"context"
	"log/slog"
	"time"

	"parcelhub/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SLAMonitorJob runs the service-level sweep on a schedule. Each run
// evaluates the three rules against the current database state; violations
// already carrying a live deduplication marker stay silent, so overlapping
// runs never double-alert.
type SLAMonitorJob struct {
	handler commands.CheckSLACommandHandler
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSLAMonitorJob creates the sweep job. spec is a six-field cron
// expression with a seconds column.
func NewSLAMonitorJob(handler commands.CheckSLACommandHandler, spec string, logger *slog.Logger) *SLAMonitorJob {
	return &SLAMonitorJob{
		handler: handler,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "sla_monitor_job"),
	}
}

// Start schedules the sweep.
func (j *SLAMonitorJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()

		cmd, err := commands.NewCheckSLACommand(time.Now().UTC())
		if err != nil {
			j.logger.ErrorContext(ctx, "sla sweep command rejected", "error", err)
			return
		}

		result, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "sla sweep failed", "error", err)
			return
		}

		emitted := 0
		for _, n := range result.Emitted {
			emitted += n
		}
		if emitted > 0 || result.Suppressed > 0 {
			j.logger.InfoContext(ctx, "sla sweep finished",
				"emitted", emitted,
				"suppressed", result.Suppressed,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "sla monitor started", "spec", j.spec)
	return nil
}

// Stop stops the schedule. A sweep already in flight finishes on its own.
func (j *SLAMonitorJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "sla monitor stopped")
}
