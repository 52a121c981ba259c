package events

import (
	"context"
	"time"

	"github.com/szrnka-peter/give-my-secret/internal/server/models"
)

type Repository interface {
	Save(ctx context.Context, event *models.Event) error
	DeleteOlderThan(ctx context.Context, threshold time.Time) (int64, error)
}
