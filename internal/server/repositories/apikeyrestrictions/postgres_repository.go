package apikeyrestrictions

import (
	"context"
	"fmt"

	"github.com/szrnka-peter/give-my-secret/internal/dbx"
	"github.com/szrnka-peter/give-my-secret/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindAllByUserIDAndSecretID(ctx context.Context, userID, secretID int64) ([]*models.ApiKeyRestriction, error) {
	query := `SELECT id, user_id, secret_id, api_key_id FROM api_key_restrictions WHERE user_id = $1 AND secret_id = $2 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID, secretID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	var result []*models.ApiKeyRestriction
	for rows.Next() {
		a := &models.ApiKeyRestriction{}
		if err := rows.Scan(&a.ID, &a.UserID, &a.SecretID, &a.ApiKeyID); err != nil {
			return nil, fmt.Errorf("error scanning row: %v", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %v", err)
	}

	return result, nil
}

func (r *PostgresRepository) Save(ctx context.Context, restriction *models.ApiKeyRestriction) error {
	query :=
		`INSERT INTO api_key_restrictions (user_id, secret_id, api_key_id)
		 VALUES ($1, $2, $3)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		restriction.UserID, restriction.SecretID, restriction.ApiKeyID).Scan(&restriction.ID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return nil
}

func (r *PostgresRepository) DeleteByUserIDAndSecretIDAndApiKeyID(ctx context.Context, userID, secretID, apiKeyID int64) error {
	query := `DELETE FROM api_key_restrictions WHERE user_id = $1 AND secret_id = $2 AND api_key_id = $3`

	_, err := r.db.ExecContext(ctx, query, userID, secretID, apiKeyID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return nil
}
