package apikeyrestrictions

import (
	"context"

	"github.com/szrnka-peter/give-my-secret/internal/server/models"
)

type Repository interface {
	FindAllByUserIDAndSecretID(ctx context.Context, userID, secretID int64) ([]*models.ApiKeyRestriction, error)
	Save(ctx context.Context, restriction *models.ApiKeyRestriction) error
	DeleteByUserIDAndSecretIDAndApiKeyID(ctx context.Context, userID, secretID, apiKeyID int64) error
}
