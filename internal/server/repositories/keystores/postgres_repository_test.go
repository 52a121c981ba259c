package keystores

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/szrnka-peter/give-my-secret/internal/server/models"
	"github.com/szrnka-peter/give-my-secret/internal/shared"
)

var keystoreRows = []string{"id", "user_id", "name", "file_name", "type", "credential", "status",
	"description", "creation_date"}

func testKeystore() *models.Keystore {
	return &models.Keystore{
		ID: 10, UserID: 1, Name: "primary", FileName: "store.p12",
		Type: models.KeystoreTypePKCS12, Credential: "store-pass",
		Status: models.StatusActive, Description: "signing keys",
		CreationDate: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

func keystoreRow(mock sqlmock.Sqlmock, k *models.Keystore) *sqlmock.Rows {
	return mock.NewRows(keystoreRows).AddRow(
		k.ID, k.UserID, k.Name, k.FileName, k.Type, k.Credential, k.Status, k.Description, k.CreationDate)
}

func TestFindByIDAndUserIDAndStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	want := testKeystore()
	mock.ExpectQuery(`SELECT (.+) FROM keystores WHERE id = \$1 AND user_id = \$2 AND status = \$3`).
		WithArgs(int64(10), int64(1), models.StatusActive).
		WillReturnRows(keystoreRow(mock, want))

	got, err := repo.FindByIDAndUserIDAndStatus(context.Background(), 10, 1, models.StatusActive)
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDAndUserIDAndStatus_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM keystores WHERE id = \$1 AND user_id = \$2 AND status = \$3`).
		WithArgs(int64(10), int64(1), models.StatusDisabled).
		WillReturnRows(mock.NewRows(keystoreRows))

	_, err = repo.FindByIDAndUserIDAndStatus(context.Background(), 10, 1, models.StatusDisabled)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestKeystoreSave_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	ks := testKeystore()
	ks.ID = 0
	mock.ExpectQuery(`INSERT INTO keystores`).
		WithArgs(ks.UserID, ks.Name, ks.FileName, ks.Type, ks.Credential, ks.Status, ks.Description, ks.CreationDate).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow(int64(42)))

	saved, err := repo.Save(context.Background(), ks)
	require.NoError(t, err)
	require.Equal(t, int64(42), saved.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestKeystoreSave_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	ks := testKeystore()
	mock.ExpectExec(`UPDATE keystores SET`).
		WithArgs(ks.Name, ks.FileName, ks.Type, ks.Credential, ks.Status, ks.Description, ks.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err = repo.Save(context.Background(), ks)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAliasFindAllByKeystoreID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresAliasRepository(db)

	rows := mock.NewRows([]string{"id", "keystore_id", "alias", "alias_credential", "algorithm"}).
		AddRow(int64(20), int64(10), "signing", "alias-pass", "RSA").
		AddRow(int64(21), int64(10), "backup", "alias-pass", "RSA")

	mock.ExpectQuery(`SELECT (.+) FROM keystore_aliases WHERE keystore_id = \$1 ORDER BY id`).
		WithArgs(int64(10)).
		WillReturnRows(rows)

	aliases, err := repo.FindAllByKeystoreID(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, aliases, 2)
	require.Equal(t, "signing", aliases[0].Alias)
	require.Equal(t, int64(21), aliases[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAliasSave_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresAliasRepository(db)

	a := &models.KeystoreAlias{KeystoreID: 10, Alias: "signing", AliasCredential: "alias-pass", Algorithm: "RSA"}
	mock.ExpectQuery(`INSERT INTO keystore_aliases`).
		WithArgs(a.KeystoreID, a.Alias, a.AliasCredential, a.Algorithm).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow(int64(20)))

	saved, err := repo.Save(context.Background(), a)
	require.NoError(t, err)
	require.Equal(t, int64(20), saved.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAliasSave_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresAliasRepository(db)

	a := &models.KeystoreAlias{ID: 20, KeystoreID: 10, Alias: "signing", AliasCredential: "alias-pass", Algorithm: "RSA"}
	mock.ExpectExec(`UPDATE keystore_aliases SET`).
		WithArgs(a.Alias, a.AliasCredential, a.Algorithm, a.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err = repo.Save(context.Background(), a)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAliasDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresAliasRepository(db)

	mock.ExpectExec(`DELETE FROM keystore_aliases WHERE id = \$1`).
		WithArgs(int64(20)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 20))
	require.NoError(t, mock.ExpectationsWereMet())
}
