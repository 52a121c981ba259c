package events

import (
	"context"
	"testing"
	"time"

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

func newProps(t *testing.T, props map[string]string) *sysprops.Service {
	t.Helper()
	if props == nil {
		props = map[string]string{}
	}
	return sysprops.NewService(&fakePropsRepo{props: props}, time.Minute)
}
