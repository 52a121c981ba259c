package systemproperties

import (
	"context"

	"github.com/szrnka-peter/give-my-secret/internal/server/models"
)

type Repository interface {
	FindByKey(ctx context.Context, key string) (*models.SystemProperty, error)
	Upsert(ctx context.Context, key, value string) error
}
