// Package jobs provides scheduled background tasks for the shipping service.
//
// Jobs are cron-based, built on github.com/robfig/cron/v3 with seconds precision.
//
// # Available Jobs
//
// 1. MatchReaperJob - Deletes matches whose checkout was never paid once they
// outlive the configured time to live. Runs every minute by default.
//
// # Usage
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(&reapHandler, 24*time.Hour, jobs.DefaultReaperSchedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed pass is logged and retried on the next tick. A payment that arrives for
// a reaped match is handled as a missing match.
package jobs
