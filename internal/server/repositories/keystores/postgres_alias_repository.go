package keystores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/szrnka-peter/give-my-secret/internal/dbx"
	"github.com/szrnka-peter/give-my-secret/internal/server/models"
	"github.com/szrnka-peter/give-my-secret/internal/shared"
)

type PostgresAliasRepository struct {
	db dbx.DBTX
}

func NewPostgresAliasRepository(db dbx.DBTX) *PostgresAliasRepository {
	return &PostgresAliasRepository{db: db}
}

func (r *PostgresAliasRepository) FindByID(ctx context.Context, id int64) (*models.KeystoreAlias, error) {
	query := `SELECT id, keystore_id, alias, alias_credential, algorithm FROM keystore_aliases WHERE id = $1`

	a := &models.KeystoreAlias{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.KeystoreID, &a.Alias, &a.AliasCredential, &a.Algorithm)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return a, nil
}

func (r *PostgresAliasRepository) FindAllByKeystoreID(ctx context.Context, keystoreID int64) ([]*models.KeystoreAlias, error) {
	query := `SELECT id, keystore_id, alias, alias_credential, algorithm FROM keystore_aliases WHERE keystore_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, keystoreID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	var result []*models.KeystoreAlias
	for rows.Next() {
		a := &models.KeystoreAlias{}
		if err := rows.Scan(&a.ID, &a.KeystoreID, &a.Alias, &a.AliasCredential, &a.Algorithm); err != nil {
			return nil, fmt.Errorf("error scanning row: %v", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %v", err)
	}

	return result, nil
}

func (r *PostgresAliasRepository) Save(ctx context.Context, alias *models.KeystoreAlias) (*models.KeystoreAlias, error) {
	if alias.ID == 0 {
		query :=
			`INSERT INTO keystore_aliases (keystore_id, alias, alias_credential, algorithm)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`

		err := r.db.QueryRowContext(ctx, query,
			alias.KeystoreID, alias.Alias, alias.AliasCredential, alias.Algorithm).Scan(&alias.ID)
		if err != nil {
			return nil, fmt.Errorf("error performing sql request: %v", err)
		}

		return alias, nil
	}

	query := `UPDATE keystore_aliases SET alias = $1, alias_credential = $2, algorithm = $3 WHERE id = $4`

	_, err := r.db.ExecContext(ctx, query, alias.Alias, alias.AliasCredential, alias.Algorithm, alias.ID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return alias, nil
}

func (r *PostgresAliasRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM keystore_aliases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return nil
}
