package iprestrictions

import (
	"context"

	"github.com/szrnka-peter/give-my-secret/internal/server/models"
)

type Repository interface {
	FindByID(ctx context.Context, id int64) (*models.IpRestriction, error)
	FindAllGlobal(ctx context.Context) ([]*models.IpRestriction, error)
	FindAllBySecretID(ctx context.Context, secretID int64) ([]*models.IpRestriction, error)
	Save(ctx context.Context, restriction *models.IpRestriction) (*models.IpRestriction, error)
	Delete(ctx context.Context, id int64) error
}
