package apikeys

import (
	"context"

	"github.com/szrnka-peter/give-my-secret/internal/server/models"
)

type Repository interface {
	FindByID(ctx context.Context, id int64) (*models.ApiKey, error)
	FindByIDAndUserID(ctx context.Context, id, userID int64) (*models.ApiKey, error)
	FindByDigest(ctx context.Context, digest string) (*models.ApiKey, error)
	Save(ctx context.Context, key *models.ApiKey) (*models.ApiKey, error)
}
