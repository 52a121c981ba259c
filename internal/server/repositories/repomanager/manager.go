// Package repomanager assembles the per-entity repositories over a shared
// database handle, so services can run several repositories inside one
// transaction by passing the same dbx.DBTX.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/szrnka-peter/give-my-secret/internal/dbx"
	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/apikeyrestrictions"
	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/apikeys"
	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/events"
	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/iprestrictions"
	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/keystores"
	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/secrets"
	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/systemproperties"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Secrets(db dbx.DBTX) secrets.Repository
	Keystores(db dbx.DBTX) keystores.Repository
	KeystoreAliases(db dbx.DBTX) keystores.AliasRepository
	ApiKeys(db dbx.DBTX) apikeys.Repository
	ApiKeyRestrictions(db dbx.DBTX) apikeyrestrictions.Repository
	IpRestrictions(db dbx.DBTX) iprestrictions.Repository
	SystemProperties(db dbx.DBTX) systemproperties.Repository
	Events(db dbx.DBTX) events.Repository
}
