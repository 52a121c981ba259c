package secrets

import (
	"context"
	"time"

	"github.com/szrnka-peter/give-my-secret/internal/server/models"
)

type Repository interface {
	FindByID(ctx context.Context, id int64) (*models.Secret, error)
	FindByIDAndUserID(ctx context.Context, id, userID int64) (*models.Secret, error)
	FindAllByUserID(ctx context.Context, userID int64) ([]*models.Secret, error)
	ExistsByUserIDAndSecretID(ctx context.Context, userID int64, secretID string, excludeID int64) (bool, error)
	Save(ctx context.Context, secret *models.Secret) (*models.Secret, error)
	Delete(ctx context.Context, id, userID int64) error
	Count(ctx context.Context, userID int64) (int64, error)

	// FindAllRotationEligible returns rotation-enabled secrets whose
	// lastRotated is older than the given threshold. The result is a
	// superset of the secrets actually due; callers refine per row.
	FindAllRotationEligible(ctx context.Context, olderThan time.Time) ([]*models.Secret, error)
}
