// Package jobs provides scheduled background tasks for the parcel service.
//
// Jobs are built on github.com/robfig/cron/v3 and managed through JobManager:
//
//	jobManager := jobs.NewJobManager(checkSLAHandler, cfg.SLASweepSpec, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// SLAMonitorJob sweeps for service-level violations: pickups not collected in
// time, deliveries running late, and in-transit shipments that went silent.
// The schedule comes from configuration as a six-field cron expression with a
// seconds column, every ten minutes by default. Deduplication markers in the
// cache keep overlapping or densely scheduled runs from re-alerting the same
// violation.
package jobs
