package jobs

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultReaperSchedule runs the reaper at the top of every minute.
const DefaultReaperSchedule = "0 * * * * *"

// MatchReaper removes matches whose checkout was never completed.
type MatchReaper interface {
	Handle(ctx context.Context, cmd commands.ReapExpiredMatchesCommand) (int64, error)
}

// MatchReaperJob periodically deletes matches older than their time to live.
type MatchReaperJob struct {
	reaper   MatchReaper
	ttl      time.Duration
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewMatchReaperJob creates the job. An empty schedule falls back to
// DefaultReaperSchedule.
func NewMatchReaperJob(reaper MatchReaper, ttl time.Duration, schedule string, logger *slog.Logger) *MatchReaperJob {
	if schedule == "" {
		schedule = DefaultReaperSchedule
	}
	return &MatchReaperJob{
		reaper:   reaper,
		ttl:      ttl,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "match_reaper_job"),
	}
}

// Start registers the job with its schedule and starts the scheduler.
func (j *MatchReaperJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Match reaper job started",
		"schedule", j.schedule, "ttl", j.ttl.String())
	return nil
}

// RunOnce performs a single reaping pass.
func (j *MatchReaperJob) RunOnce(ctx context.Context) {
	cmd, err := commands.NewReapExpiredMatchesCommand(j.ttl)
	if err != nil {
		j.logger.ErrorContext(ctx, "Invalid match reaper configuration", "error", err)
		return
	}

	deleted, err := j.reaper.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Match reaper job failed", "error", err)
		return
	}

	if deleted > 0 {
		j.logger.InfoContext(ctx, "Expired matches removed", "count", deleted)
	}
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *MatchReaperJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Match reaper job stopped")
}
