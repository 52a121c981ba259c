package keystores

import (
	"context"

	"github.com/szrnka-peter/give-my-secret/internal/server/models"
)

type Repository interface {
	FindByID(ctx context.Context, id int64) (*models.Keystore, error)
	FindByIDAndUserID(ctx context.Context, id, userID int64) (*models.Keystore, error)
	FindByIDAndUserIDAndStatus(ctx context.Context, id, userID int64, status models.EntityStatus) (*models.Keystore, error)
	Save(ctx context.Context, keystore *models.Keystore) (*models.Keystore, error)
}

type AliasRepository interface {
	FindByID(ctx context.Context, id int64) (*models.KeystoreAlias, error)
	FindAllByKeystoreID(ctx context.Context, keystoreID int64) ([]*models.KeystoreAlias, error)
	Save(ctx context.Context, alias *models.KeystoreAlias) (*models.KeystoreAlias, error)
	Delete(ctx context.Context, id int64) error
}
