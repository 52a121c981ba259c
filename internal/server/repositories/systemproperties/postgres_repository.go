package systemproperties

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

func (r *PostgresRepository) FindByKey(ctx context.Context, key string) (*models.SystemProperty, error) {
	query := `SELECT id, key, value, last_modified FROM system_properties WHERE key = $1`

	p := &models.SystemProperty{}
	err := r.db.QueryRowContext(ctx, query, key).Scan(&p.ID, &p.Key, &p.Value, &p.LastModified)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return p, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, key, value string) error {
	query :=
		`INSERT INTO system_properties (key, value, last_modified)
		 VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, last_modified = now()`

	_, err := r.db.ExecContext(ctx, query, key, value)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return nil
}
