package events

import (
	"context"
	"fmt"
	"time"

	"github.com/szrnka-peter/give-my-secret/internal/dbx"
	"github.com/szrnka-peter/give-my-secret/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, event *models.Event) error {
	query :=
		`INSERT INTO events (user_id, entity_id, operation, target, creation_date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		event.UserID, event.EntityID, event.Operation, event.Target, event.CreationDate).Scan(&event.ID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return nil
}

func (r *PostgresRepository) DeleteOlderThan(ctx context.Context, threshold time.Time) (int64, error) {
	query := `DELETE FROM events WHERE creation_date < $1`

	res, err := r.db.ExecContext(ctx, query, threshold)
	if err != nil {
		return 0, fmt.Errorf("error performing sql request: %v", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error reading affected rows: %v", err)
	}

	return affected, nil
}
