package secrets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/szrnka-peter/give-my-secret/internal/server/models"
	"github.com/szrnka-peter/give-my-secret/internal/shared"
)

var secretRows = []string{"id", "user_id", "secret_id", "keystore_alias_id", "value", "status", "type",
	"rotation_period", "rotation_enabled", "return_decrypted", "creation_date", "last_updated", "last_rotated"}

func secretRow(mock sqlmock.Sqlmock, s *models.Secret) *sqlmock.Rows {
	return mock.NewRows(secretRows).AddRow(
		s.ID, s.UserID, s.SecretID, s.KeystoreAliasID, s.Value, s.Status, s.Type,
		s.RotationPeriod, s.RotationEnabled, s.ReturnDecrypted, s.CreationDate, s.LastUpdated, s.LastRotated)
}

func testSecret() *models.Secret {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	return &models.Secret{
		ID: 5, UserID: 1, SecretID: "db-password", KeystoreAliasID: 20,
		Value: "enc:x", Status: models.StatusActive, Type: models.SimpleCredential,
		RotationPeriod: models.RotationDaily, RotationEnabled: true,
		CreationDate: now, LastUpdated: now, LastRotated: now,
	}
}

func TestFindByIDAndUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	want := testSecret()
	mock.ExpectQuery(`SELECT (.+) FROM secrets WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(5), int64(1)).
		WillReturnRows(secretRow(mock, want))

	got, err := repo.FindByIDAndUserID(context.Background(), 5, 1)
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDAndUserID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM secrets WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(5), int64(2)).
		WillReturnRows(mock.NewRows(secretRows))

	_, err = repo.FindByIDAndUserID(context.Background(), 5, 2)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestExistsByUserIDAndSecretID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(1\) FROM secrets WHERE user_id = \$1 AND secret_id = \$2 AND id <> \$3`).
		WithArgs(int64(1), "db-password", int64(5)).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByUserIDAndSecretID(context.Background(), 1, "db-password", 5)
	require.NoError(t, err)
	require.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_InsertAssignsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	s := testSecret()
	s.ID = 0

	mock.ExpectQuery(`INSERT INTO secrets`).
		WithArgs(s.UserID, s.SecretID, s.KeystoreAliasID, s.Value, s.Status, s.Type,
			s.RotationPeriod, s.RotationEnabled, s.ReturnDecrypted,
			s.CreationDate, s.LastUpdated, s.LastRotated).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow(int64(42)))

	saved, err := repo.Save(context.Background(), s)
	require.NoError(t, err)
	require.Equal(t, int64(42), saved.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_UpdateExistingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	s := testSecret()

	mock.ExpectExec(`UPDATE secrets SET`).
		WithArgs(s.SecretID, s.KeystoreAliasID, s.Value, s.Status, s.Type,
			s.RotationPeriod, s.RotationEnabled, s.ReturnDecrypted,
			s.LastUpdated, s.LastRotated, s.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err = repo.Save(context.Background(), s)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec(`DELETE FROM secrets WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(5), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 5, 1))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAllRotationEligible(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	first := testSecret()
	second := testSecret()
	second.ID = 6
	second.SecretID = "api-token"
	rows := secretRow(mock, first).AddRow(
		second.ID, second.UserID, second.SecretID, second.KeystoreAliasID, second.Value, second.Status, second.Type,
		second.RotationPeriod, second.RotationEnabled, second.ReturnDecrypted,
		second.CreationDate, second.LastUpdated, second.LastRotated)

	threshold := time.Date(2026, 9, 1, 11, 59, 5, 0, time.UTC)
	mock.ExpectQuery(`SELECT (.+) FROM secrets\s+WHERE rotation_enabled AND status = \$1 AND last_rotated < \$2`).
		WithArgs(models.StatusActive, threshold).
		WillReturnRows(rows)

	got, err := repo.FindAllRotationEligible(context.Background(), threshold)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "api-token", got[1].SecretID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM secrets WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnError(errors.New("connection reset"))

	_, err = repo.FindByID(context.Background(), 5)
	require.Error(t, err)
	require.NotErrorIs(t, err, shared.ErrNotFound)
}
