package rotation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/szrnka-peter/give-my-secret/internal/server/metrics"
	"github.com/szrnka-peter/give-my-secret/internal/server/models"
	"github.com/szrnka-peter/give-my-secret/internal/server/sysprops"
	"github.com/szrnka-peter/give-my-secret/internal/shared"
)

type fakePropsRepo struct {
	props map[string]string
}

func (f *fakePropsRepo) FindByKey(_ context.Context, key string) (*models.SystemProperty, error) {
	v, ok := f.props[key]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &models.SystemProperty{Key: key, Value: v}, nil
}

func (f *fakePropsRepo) Upsert(_ context.Context, key, value string) error {
	f.props[key] = value
	return nil
}

func newProps(props map[string]string) *sysprops.Service {
	if props == nil {
		props = map[string]string{}
	}
	return sysprops.NewService(&fakePropsRepo{props: props}, time.Minute)
}

type fakeRotator struct {
	rotated []int64
	failID  int64
}

func (f *fakeRotator) RotateSecret(_ context.Context, secret *models.Secret) error {
	if secret.ID == f.failID {
		return errors.New("cipher failure")
	}
	f.rotated = append(f.rotated, secret.ID)
	return nil
}

func newJob(repo *fakeSecretRepo, rotator Rotator, props *sysprops.Service, multiNode bool, runnerID string) *Job {
	return NewJob(repo, rotator, props, metrics.New(prometheus.NewRegistry()), discardLogger(),
		time.Minute, 55*time.Second, multiNode, runnerID)
}

func TestExecute_RotatesDueSecrets(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	repo := &fakeSecretRepo{eligible: []*models.Secret{
		{ID: 1, RotationPeriod: models.RotationDaily, LastRotated: now.Add(-25 * time.Hour)},
		{ID: 2, RotationPeriod: models.RotationDaily, LastRotated: now.Add(-23 * time.Hour)},
		{ID: 3, RotationPeriod: models.RotationYearly, LastRotated: now.Add(-2 * 365 * 24 * time.Hour)},
		{ID: 4, RotationPeriod: models.RotationYearly, LastRotated: now.Add(-30 * 24 * time.Hour)},
		{ID: 5, RotationPeriod: models.RotationNever, LastRotated: now.Add(-10 * 365 * 24 * time.Hour)},
	}}
	rotator := &fakeRotator{}

	job := newJob(repo, rotator, newProps(nil), false, "")
	job.now = func() time.Time { return now }

	job.Execute(context.Background())

	require.Equal(t, []int64{1, 3}, rotator.rotated,
		"only secrets past their own period rotate; NEVER never rotates")
}

func TestExecute_OneFailureDoesNotStopTheBatch(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	repo := &fakeSecretRepo{eligible: []*models.Secret{
		{ID: 1, RotationPeriod: models.RotationHourly, LastRotated: now.Add(-2 * time.Hour)},
		{ID: 2, RotationPeriod: models.RotationHourly, LastRotated: now.Add(-2 * time.Hour)},
		{ID: 3, RotationPeriod: models.RotationHourly, LastRotated: now.Add(-2 * time.Hour)},
	}}
	rotator := &fakeRotator{failID: 2}

	job := newJob(repo, rotator, newProps(nil), false, "")
	job.now = func() time.Time { return now }

	job.Execute(context.Background())

	require.Equal(t, []int64{1, 3}, rotator.rotated)
}

func TestExecute_DisabledByProperty(t *testing.T) {
	repo := &fakeSecretRepo{eligible: []*models.Secret{
		{ID: 1, RotationPeriod: models.RotationHourly},
	}}
	rotator := &fakeRotator{}
	props := newProps(map[string]string{models.PropRotationJobEnabled: "false"})

	job := newJob(repo, rotator, props, false, "")
	job.Execute(context.Background())

	require.Empty(t, rotator.rotated)
}

func TestExecute_MultiNodeRunnerID(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	due := func() []*models.Secret {
		return []*models.Secret{{ID: 1, RotationPeriod: models.RotationHourly, LastRotated: now.Add(-2 * time.Hour)}}
	}

	t.Run("matching runner executes", func(t *testing.T) {
		rotator := &fakeRotator{}
		props := newProps(map[string]string{models.PropRotationRunnerID: "node-a"})
		job := newJob(&fakeSecretRepo{eligible: due()}, rotator, props, true, "node-a")
		job.now = func() time.Time { return now }

		job.Execute(context.Background())
		require.Len(t, rotator.rotated, 1)
	})

	t.Run("other runner skips", func(t *testing.T) {
		rotator := &fakeRotator{}
		props := newProps(map[string]string{models.PropRotationRunnerID: "node-a"})
		job := newJob(&fakeSecretRepo{eligible: due()}, rotator, props, true, "node-b")
		job.now = func() time.Time { return now }

		job.Execute(context.Background())
		require.Empty(t, rotator.rotated)
	})

	t.Run("unset runner id lets any node execute", func(t *testing.T) {
		rotator := &fakeRotator{}
		job := newJob(&fakeSecretRepo{eligible: due()}, rotator, newProps(nil), true, "node-b")
		job.now = func() time.Time { return now }

		job.Execute(context.Background())
		require.Len(t, rotator.rotated, 1)
	})
}

func TestExecute_QueryErrorAborts(t *testing.T) {
	rotator := &fakeRotator{}
	job := newJob(&fakeSecretRepo{findErr: errors.New("db down")}, rotator, newProps(nil), false, "")

	job.Execute(context.Background())
	require.Empty(t, rotator.rotated)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	job := newJob(&fakeSecretRepo{}, &fakeRotator{}, newProps(nil), false, "")
	job.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not stop on context cancel")
	}
}
