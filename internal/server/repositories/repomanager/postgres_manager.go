package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/szrnka-peter/give-my-secret/internal/dbx"
	"github.com/szrnka-peter/give-my-secret/internal/server/migrations"
	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/apikeyrestrictions"
	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/apikeys"
	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/events"
	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/iprestrictions"
	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/keystores"
	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/secrets"
	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/systemproperties"
)

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Secrets(db dbx.DBTX) secrets.Repository {
	return secrets.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Keystores(db dbx.DBTX) keystores.Repository {
	return keystores.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) KeystoreAliases(db dbx.DBTX) keystores.AliasRepository {
	return keystores.NewPostgresAliasRepository(db)
}

func (m *PostgresRepositoryManager) ApiKeys(db dbx.DBTX) apikeys.Repository {
	return apikeys.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) ApiKeyRestrictions(db dbx.DBTX) apikeyrestrictions.Repository {
	return apikeyrestrictions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) IpRestrictions(db dbx.DBTX) iprestrictions.Repository {
	return iprestrictions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) SystemProperties(db dbx.DBTX) systemproperties.Repository {
	return systemproperties.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Events(db dbx.DBTX) events.Repository {
	return events.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
