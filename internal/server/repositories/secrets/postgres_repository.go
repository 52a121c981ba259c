package secrets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

const secretColumns = `id, user_id, secret_id, keystore_alias_id, value, status, type,
	rotation_period, rotation_enabled, return_decrypted, creation_date, last_updated, last_rotated`

func scanSecret(row interface{ Scan(dest ...any) error }) (*models.Secret, error) {
	s := &models.Secret{}
	err := row.Scan(&s.ID, &s.UserID, &s.SecretID, &s.KeystoreAliasID, &s.Value, &s.Status, &s.Type,
		&s.RotationPeriod, &s.RotationEnabled, &s.ReturnDecrypted, &s.CreationDate, &s.LastUpdated, &s.LastRotated)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.Secret, error) {
	query := `SELECT ` + secretColumns + ` FROM secrets WHERE id = $1`

	s, err := scanSecret(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return s, nil
}

func (r *PostgresRepository) FindByIDAndUserID(ctx context.Context, id, userID int64) (*models.Secret, error) {
	query := `SELECT ` + secretColumns + ` FROM secrets WHERE id = $1 AND user_id = $2`

	s, err := scanSecret(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return s, nil
}

func (r *PostgresRepository) FindAllByUserID(ctx context.Context, userID int64) ([]*models.Secret, error) {
	query := `SELECT ` + secretColumns + ` FROM secrets WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	return collectSecrets(rows)
}

func (r *PostgresRepository) ExistsByUserIDAndSecretID(ctx context.Context, userID int64, secretID string, excludeID int64) (bool, error) {
	query := `SELECT COUNT(1) FROM secrets WHERE user_id = $1 AND secret_id = $2 AND id <> $3`

	var count int64
	if err := r.db.QueryRowContext(ctx, query, userID, secretID, excludeID).Scan(&count); err != nil {
		return false, fmt.Errorf("error performing sql request: %v", err)
	}

	return count > 0, nil
}

func (r *PostgresRepository) Save(ctx context.Context, secret *models.Secret) (*models.Secret, error) {
	if secret.ID == 0 {
		query :=
			`INSERT INTO secrets (user_id, secret_id, keystore_alias_id, value, status, type,
				rotation_period, rotation_enabled, return_decrypted, creation_date, last_updated, last_rotated)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			 RETURNING id`

		err := r.db.QueryRowContext(ctx, query,
			secret.UserID, secret.SecretID, secret.KeystoreAliasID, secret.Value, secret.Status, secret.Type,
			secret.RotationPeriod, secret.RotationEnabled, secret.ReturnDecrypted,
			secret.CreationDate, secret.LastUpdated, secret.LastRotated).Scan(&secret.ID)
		if err != nil {
			return nil, fmt.Errorf("error performing sql request: %v", err)
		}

		return secret, nil
	}

	query :=
		`UPDATE secrets SET secret_id = $1, keystore_alias_id = $2, value = $3, status = $4, type = $5,
			rotation_period = $6, rotation_enabled = $7, return_decrypted = $8, last_updated = $9, last_rotated = $10
		 WHERE id = $11`

	_, err := r.db.ExecContext(ctx, query,
		secret.SecretID, secret.KeystoreAliasID, secret.Value, secret.Status, secret.Type,
		secret.RotationPeriod, secret.RotationEnabled, secret.ReturnDecrypted,
		secret.LastUpdated, secret.LastRotated, secret.ID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return secret, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID int64) error {
	query := `DELETE FROM secrets WHERE id = $1 AND user_id = $2`

	_, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return nil
}

func (r *PostgresRepository) Count(ctx context.Context, userID int64) (int64, error) {
	query := `SELECT COUNT(1) FROM secrets WHERE user_id = $1`

	var count int64
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("error performing sql request: %v", err)
	}

	return count, nil
}

func (r *PostgresRepository) FindAllRotationEligible(ctx context.Context, olderThan time.Time) ([]*models.Secret, error) {
	query := `SELECT ` + secretColumns + ` FROM secrets
		 WHERE rotation_enabled AND status = $1 AND last_rotated < $2`

	rows, err := r.db.QueryContext(ctx, query, models.StatusActive, olderThan)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	return collectSecrets(rows)
}

func collectSecrets(rows *sql.Rows) ([]*models.Secret, error) {
	var result []*models.Secret
	for rows.Next() {
		s, err := scanSecret(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %v", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %v", err)
	}
	return result, nil
}
