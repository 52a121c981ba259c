package rotation

import (
	"context"
	"time"

	"github.com/szrnka-peter/give-my-secret/internal/logging"
	"github.com/szrnka-peter/give-my-secret/internal/server/metrics"
	"github.com/szrnka-peter/give-my-secret/internal/server/models"
	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/secrets"
	"github.com/szrnka-peter/give-my-secret/internal/server/sysprops"
)

// Rotator rotates one secret; implemented by Service.
type Rotator interface {
	RotateSecret(ctx context.Context, secret *models.Secret) error
}

// Job periodically scans for secrets due for rotation. The repository
// query uses a coarse grace-window threshold and intentionally returns a
// superset; each row is then refined against its own rotation period.
type Job struct {
	repo     secrets.Repository
	service  Rotator
	props    *sysprops.Service
	metrics  *metrics.Metrics
	logger   logging.Logger
	interval time.Duration
	grace    time.Duration

	// multiNode enables the runner-id check: when several instances
	// share the database, only the node whose name matches the stored
	// runner id executes the job.
	multiNode bool
	runnerID  string

	now func() time.Time
}

func NewJob(repo secrets.Repository, service Rotator, props *sysprops.Service, m *metrics.Metrics,
	logger logging.Logger, interval, grace time.Duration, multiNode bool, runnerID string) *Job {
	return &Job{
		repo:      repo,
		service:   service,
		props:     props,
		metrics:   m,
		logger:    logger,
		interval:  interval,
		grace:     grace,
		multiNode: multiNode,
		runnerID:  runnerID,
		now:       time.Now,
	}
}

// Run executes the job on every tick until the context is cancelled.
func (j *Job) Run(ctx context.Context) {
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

// Execute performs a single rotation pass.
func (j *Job) Execute(ctx context.Context) {
	if !j.shouldRun(ctx) {
		return
	}

	j.metrics.RotationRuns.Inc()

	now := j.now()
	candidates, err := j.repo.FindAllRotationEligible(ctx, now.Add(-j.grace))
	if err != nil {
		j.logger.Error(ctx, "error querying rotation candidates", "error", err.Error())
		return
	}

	var rotated int64
	for _, secret := range candidates {
		if j.shouldNotRotate(secret, now) {
			continue
		}

		// one bad row must not block the rest of the batch
		if err := j.service.RotateSecret(ctx, secret); err != nil {
			j.metrics.RotationFailures.Inc()
			j.logger.Error(ctx, "error rotating secret", "secret_id", secret.ID, "user_id", secret.UserID, "error", err.Error())
			continue
		}

		j.metrics.RotatedSecrets.Inc()
		rotated++
	}

	if rotated > 0 {
		j.logger.Info(ctx, "rotation run finished", "rotated", rotated)
	}
}

func (j *Job) shouldRun(ctx context.Context) bool {
	enabled, err := j.props.GetBool(ctx, models.PropRotationJobEnabled, true)
	if err != nil {
		j.logger.Error(ctx, "error reading rotation job toggle", "error", err.Error())
		return false
	}
	if !enabled {
		j.logger.Debug(ctx, "rotation job disabled, skipping run")
		return false
	}

	if !j.multiNode {
		return true
	}

	runner, err := j.props.Get(ctx, models.PropRotationRunnerID, "")
	if err != nil {
		j.logger.Error(ctx, "error reading rotation runner id", "error", err.Error())
		return false
	}

	return runner == "" || runner == j.runnerID
}

// shouldNotRotate refines the coarse query: the secret is skipped while
// its lastRotated is still newer than now minus its own period.
func (j *Job) shouldNotRotate(secret *models.Secret, now time.Time) bool {
	period := secret.RotationPeriod.Duration()
	if period == 0 {
		return true
	}

	return secret.LastRotated.After(now.Add(-period))
}
