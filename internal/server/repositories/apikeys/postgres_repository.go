package apikeys

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/szrnka-peter/give-my-secret/internal/dbx"
	"github.com/szrnka-peter/give-my-secret/internal/server/models"
	"github.com/szrnka-peter/give-my-secret/internal/shared"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const apiKeyColumns = `id, user_id, name, value, digest, status, description, creation_date`

func scanApiKey(row *sql.Row) (*models.ApiKey, error) {
	k := &models.ApiKey{}
	err := row.Scan(&k.ID, &k.UserID, &k.Name, &k.Value, &k.Digest, &k.Status, &k.Description, &k.CreationDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	return k, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.ApiKey, error) {
	query := `SELECT ` + apiKeyColumns + ` FROM api_keys WHERE id = $1`
	return scanApiKey(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) FindByIDAndUserID(ctx context.Context, id, userID int64) (*models.ApiKey, error) {
	query := `SELECT ` + apiKeyColumns + ` FROM api_keys WHERE id = $1 AND user_id = $2`
	return scanApiKey(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *PostgresRepository) FindByDigest(ctx context.Context, digest string) (*models.ApiKey, error) {
	query := `SELECT ` + apiKeyColumns + ` FROM api_keys WHERE digest = $1`
	return scanApiKey(r.db.QueryRowContext(ctx, query, digest))
}

func (r *PostgresRepository) Save(ctx context.Context, key *models.ApiKey) (*models.ApiKey, error) {
	if key.ID == 0 {
		query :=
			`INSERT INTO api_keys (user_id, name, value, digest, status, description, creation_date)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id`

		err := r.db.QueryRowContext(ctx, query,
			key.UserID, key.Name, key.Value, key.Digest, key.Status, key.Description, key.CreationDate).Scan(&key.ID)
		if err != nil {
			return nil, fmt.Errorf("error performing sql request: %v", err)
		}

		return key, nil
	}

	query := `UPDATE api_keys SET name = $1, status = $2, description = $3 WHERE id = $4`

	_, err := r.db.ExecContext(ctx, query, key.Name, key.Status, key.Description, key.ID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return key, nil
}
