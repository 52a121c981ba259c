package events

import (
	"context"
	"strconv"
	"time"

	"github.com/szrnka-peter/give-my-secret/internal/logging"
	"github.com/szrnka-peter/give-my-secret/internal/server/models"
	eventsrepo "github.com/szrnka-peter/give-my-secret/internal/server/repositories/events"
	"github.com/szrnka-peter/give-my-secret/internal/server/sysprops"
)

// CleanupJob prunes audit events older than the configured retention.
// A retention of zero days disables pruning.
type CleanupJob struct {
	repo     eventsrepo.Repository
	props    *sysprops.Service
	logger   logging.Logger
	interval time.Duration

	now func() time.Time
}

func NewCleanupJob(repo eventsrepo.Repository, props *sysprops.Service,
	logger logging.Logger, interval time.Duration) *CleanupJob {
	return &CleanupJob{
		repo:     repo,
		props:    props,
		logger:   logger,
		interval: interval,
		now:      time.Now,
	}
}

// Run executes the job on every tick until the context is cancelled.
func (j *CleanupJob) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.Execute(ctx)
		}
	}
}

// Execute performs a single cleanup pass.
func (j *CleanupJob) Execute(ctx context.Context) {
	days, err := j.retentionDays(ctx)
	if err != nil {
		j.logger.Error(ctx, "error reading event retention", "error", err.Error())
		return
	}
	if days <= 0 {
		return
	}

	threshold := j.now().Add(-time.Duration(days) * 24 * time.Hour)

	deleted, err := j.repo.DeleteOlderThan(ctx, threshold)
	if err != nil {
		j.logger.Error(ctx, "error deleting old audit events", "error", err.Error())
		return
	}

	if deleted > 0 {
		j.logger.Info(ctx, "old audit events deleted", "deleted", deleted)
	}
}

func (j *CleanupJob) retentionDays(ctx context.Context) (int, error) {
	v, err := j.props.Get(ctx, models.PropOldEventCleanupDays, "0")
	if err != nil {
		return 0, err
	}

	days, err := strconv.Atoi(v)
	if err != nil {
		j.logger.Warn(ctx, "malformed event retention value", "value", v)
		return 0, nil
	}
	return days, nil
}
