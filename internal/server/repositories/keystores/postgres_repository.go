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

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const keystoreColumns = `id, user_id, name, file_name, type, credential, status, description, creation_date`

func scanKeystore(row *sql.Row) (*models.Keystore, error) {
	k := &models.Keystore{}
	err := row.Scan(&k.ID, &k.UserID, &k.Name, &k.FileName, &k.Type, &k.Credential, &k.Status, &k.Description, &k.CreationDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	return k, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.Keystore, error) {
	query := `SELECT ` + keystoreColumns + ` FROM keystores WHERE id = $1`
	return scanKeystore(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) FindByIDAndUserID(ctx context.Context, id, userID int64) (*models.Keystore, error) {
	query := `SELECT ` + keystoreColumns + ` FROM keystores WHERE id = $1 AND user_id = $2`
	return scanKeystore(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *PostgresRepository) FindByIDAndUserIDAndStatus(ctx context.Context, id, userID int64, status models.EntityStatus) (*models.Keystore, error) {
	query := `SELECT ` + keystoreColumns + ` FROM keystores WHERE id = $1 AND user_id = $2 AND status = $3`
	return scanKeystore(r.db.QueryRowContext(ctx, query, id, userID, status))
}

func (r *PostgresRepository) Save(ctx context.Context, keystore *models.Keystore) (*models.Keystore, error) {
	if keystore.ID == 0 {
		query :=
			`INSERT INTO keystores (user_id, name, file_name, type, credential, status, description, creation_date)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 RETURNING id`

		err := r.db.QueryRowContext(ctx, query,
			keystore.UserID, keystore.Name, keystore.FileName, keystore.Type, keystore.Credential,
			keystore.Status, keystore.Description, keystore.CreationDate).Scan(&keystore.ID)
		if err != nil {
			return nil, fmt.Errorf("error performing sql request: %v", err)
		}

		return keystore, nil
	}

	query :=
		`UPDATE keystores SET name = $1, file_name = $2, type = $3, credential = $4, status = $5, description = $6
		 WHERE id = $7`

	_, err := r.db.ExecContext(ctx, query,
		keystore.Name, keystore.FileName, keystore.Type, keystore.Credential, keystore.Status,
		keystore.Description, keystore.ID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return keystore, nil
}
