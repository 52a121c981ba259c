package iprestrictions

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

const restrictionColumns = `id, user_id, secret_id, ip_pattern, allow, status, creation_date, last_modified`

func scanRestriction(row interface{ Scan(dest ...any) error }) (*models.IpRestriction, error) {
	ir := &models.IpRestriction{}
	err := row.Scan(&ir.ID, &ir.UserID, &ir.SecretID, &ir.IpPattern, &ir.Allow, &ir.Status, &ir.CreationDate, &ir.LastModified)
	if err != nil {
		return nil, err
	}
	return ir, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.IpRestriction, error) {
	query := `SELECT ` + restrictionColumns + ` FROM ip_restrictions WHERE id = $1`

	ir, err := scanRestriction(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return ir, nil
}

func (r *PostgresRepository) FindAllGlobal(ctx context.Context) ([]*models.IpRestriction, error) {
	query := `SELECT ` + restrictionColumns + ` FROM ip_restrictions WHERE secret_id IS NULL ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	return collectRestrictions(rows)
}

func (r *PostgresRepository) FindAllBySecretID(ctx context.Context, secretID int64) ([]*models.IpRestriction, error) {
	query := `SELECT ` + restrictionColumns + ` FROM ip_restrictions WHERE secret_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, secretID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	return collectRestrictions(rows)
}

func (r *PostgresRepository) Save(ctx context.Context, restriction *models.IpRestriction) (*models.IpRestriction, error) {
	if restriction.ID == 0 {
		query :=
			`INSERT INTO ip_restrictions (user_id, secret_id, ip_pattern, allow, status, creation_date, last_modified)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id`

		err := r.db.QueryRowContext(ctx, query,
			restriction.UserID, restriction.SecretID, restriction.IpPattern, restriction.Allow,
			restriction.Status, restriction.CreationDate, restriction.LastModified).Scan(&restriction.ID)
		if err != nil {
			return nil, fmt.Errorf("error performing sql request: %v", err)
		}

		return restriction, nil
	}

	query :=
		`UPDATE ip_restrictions SET ip_pattern = $1, allow = $2, status = $3, last_modified = $4
		 WHERE id = $5`

	_, err := r.db.ExecContext(ctx, query,
		restriction.IpPattern, restriction.Allow, restriction.Status, restriction.LastModified, restriction.ID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return restriction, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM ip_restrictions WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return nil
}

func collectRestrictions(rows *sql.Rows) ([]*models.IpRestriction, error) {
	var result []*models.IpRestriction
	for rows.Next() {
		ir, err := scanRestriction(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %v", err)
		}
		result = append(result, ir)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %v", err)
	}
	return result, nil
}
