package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	matchReaperJob *MatchReaperJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	reaper MatchReaper,
	matchTTL time.Duration,
	reaperSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		matchReaperJob: NewMatchReaperJob(reaper, matchTTL, reaperSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.matchReaperJob.Start(); err != nil {
		return fmt.Errorf("failed to start match reaper job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.matchReaperJob.Stop()
}
