// Package secrets orchestrates the secret lifecycle: validation chain,
// encryption, persistence and restriction synchronization.
package secrets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/szrnka-peter/give-my-secret/internal/dbx"
	"github.com/szrnka-peter/give-my-secret/internal/logging"
	"github.com/szrnka-peter/give-my-secret/internal/server/crypto"
	"github.com/szrnka-peter/give-my-secret/internal/server/events"
	"github.com/szrnka-peter/give-my-secret/internal/server/models"
	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/apikeyrestrictions"
	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/repomanager"
	"github.com/szrnka-peter/give-my-secret/internal/shared"
)

// KeystoreValidator is the validation gate run before every write and
// cipher operation.
type KeystoreValidator interface {
	ValidateSecretKeystore(ctx context.Context, secret *models.Secret) error
}

// Service implements the secret operations. All multi-step writes run
// inside a database transaction; the database is the only
// synchronization point between concurrent requests.
type Service struct {
	db        *sql.DB
	repos     repomanager.RepositoryManager
	validator KeystoreValidator
	cipher    crypto.Service
	publisher events.Publisher
	logger    logging.Logger
}

func NewService(db *sql.DB, repos repomanager.RepositoryManager, validator KeystoreValidator,
	cipher crypto.Service, publisher events.Publisher, logger logging.Logger) *Service {
	return &Service{db: db, repos: repos, validator: validator, cipher: cipher, publisher: publisher, logger: logger}
}

// Save creates (req.ID == 0) or updates a secret. The validation chain
// is: keystore alias presence, alias/keystore ownership, identifier
// uniqueness (create only), type-specific value format, persist,
// API-key restriction sync. On update, an empty value keeps the stored
// ciphertext; only a non-empty value triggers re-encryption.
func (s *Service) Save(ctx context.Context, userID int64, req *models.SaveSecretRequest) (*models.Secret, error) {
	if req.ID == 0 && req.KeystoreAliasID == 0 {
		return nil, shared.ErrWrongKeystoreAlias
	}

	var entity *models.Secret

	if req.ID == 0 {
		now := time.Now()
		entity = &models.Secret{
			UserID:          userID,
			SecretID:        req.SecretID,
			KeystoreAliasID: req.KeystoreAliasID,
			Status:          models.StatusActive,
			Type:            req.Type,
			RotationPeriod:  req.RotationPeriod,
			RotationEnabled: req.RotationEnabled,
			ReturnDecrypted: req.ReturnDecrypted,
			CreationDate:    now,
			LastUpdated:     now,
			LastRotated:     now,
		}
	} else {
		existing, err := s.repos.Secrets(s.db).FindByIDAndUserID(ctx, req.ID, userID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.ErrSecretNotFound
			}
			return nil, err
		}

		entity = existing
		entity.SecretID = req.SecretID
		if req.KeystoreAliasID != 0 {
			entity.KeystoreAliasID = req.KeystoreAliasID
		}
		if req.Status != "" {
			entity.Status = req.Status
		}
		entity.Type = req.Type
		entity.RotationPeriod = req.RotationPeriod
		entity.RotationEnabled = req.RotationEnabled
		entity.ReturnDecrypted = req.ReturnDecrypted
		entity.LastUpdated = time.Now()
	}

	if err := s.validator.ValidateSecretKeystore(ctx, entity); err != nil {
		return nil, err
	}

	exists, err := s.repos.Secrets(s.db).ExistsByUserIDAndSecretID(ctx, userID, req.SecretID, entity.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrDuplicateSecretID
	}

	if req.Type == models.MultipleCredential && req.Value != "" {
		if _, err := ParseCredentialPairs(req.Value); err != nil {
			return nil, err
		}
	}

	if req.Value != "" {
		encrypted, err := s.cipher.Encrypt(ctx, entity, req.Value)
		if err != nil {
			return nil, err
		}
		entity.Value = encrypted
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		saved, err := s.repos.Secrets(tx).Save(ctx, entity)
		if err != nil {
			return err
		}
		entity = saved

		return s.syncApiKeyRestrictions(ctx, s.repos.ApiKeyRestrictions(tx), userID, entity.ID, req.ApiKeyRestrictions)
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, models.Event{
		UserID:    userID,
		EntityID:  entity.ID,
		Operation: models.EventSave,
		Target:    models.TargetSecret,
	})

	return entity, nil
}

// syncApiKeyRestrictions diffs the desired API key ids against the
// stored associations: missing ones are inserted, extra ones deleted,
// the intersection is left untouched.
func (s *Service) syncApiKeyRestrictions(ctx context.Context, repo apikeyrestrictions.Repository,
	userID, secretID int64, desired []int64) error {

	existing, err := repo.FindAllByUserIDAndSecretID(ctx, userID, secretID)
	if err != nil {
		return err
	}

	existingSet := make(map[int64]struct{}, len(existing))
	for _, e := range existing {
		existingSet[e.ApiKeyID] = struct{}{}
	}

	desiredSet := make(map[int64]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
		if _, ok := existingSet[id]; ok {
			continue
		}
		err := repo.Save(ctx, &models.ApiKeyRestriction{UserID: userID, SecretID: secretID, ApiKeyID: id})
		if err != nil {
			return err
		}
	}

	for _, e := range existing {
		if _, ok := desiredSet[e.ApiKeyID]; ok {
			continue
		}
		if err := repo.DeleteByUserIDAndSecretIDAndApiKeyID(ctx, userID, secretID, e.ApiKeyID); err != nil {
			return err
		}
	}

	return nil
}

// GetByID returns an owned secret. The value is decrypted only when the
// secret was saved with the returnDecrypted flag; otherwise the stored
// ciphertext is returned as-is.
func (s *Service) GetByID(ctx context.Context, userID, id int64) (*models.Secret, error) {
	entity, err := s.repos.Secrets(s.db).FindByIDAndUserID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrSecretNotFound
		}
		return nil, err
	}

	if entity.ReturnDecrypted && entity.Value != "" {
		decrypted, err := s.cipher.Decrypt(ctx, entity)
		if err != nil {
			return nil, err
		}
		entity.Value = decrypted
	}

	return entity, nil
}

// GetSecretValue returns the decrypted value of an owned secret.
// Multi-credential values are parsed into their pairs; simple values
// are returned under the "value" key.
func (s *Service) GetSecretValue(ctx context.Context, userID, id int64) (map[string]string, error) {
	entity, err := s.repos.Secrets(s.db).FindByIDAndUserID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrSecretNotFound
		}
		return nil, err
	}

	if err := s.validator.ValidateSecretKeystore(ctx, entity); err != nil {
		return nil, err
	}

	decrypted, err := s.cipher.Decrypt(ctx, entity)
	if err != nil {
		return nil, err
	}

	if entity.Type == models.MultipleCredential {
		pairs, err := ParseCredentialPairs(decrypted)
		if err != nil {
			return nil, err
		}

		result := make(map[string]string, len(pairs))
		for _, p := range pairs {
			result[p.Key] = p.Value
		}
		return result, nil
	}

	return map[string]string{"value": decrypted}, nil
}

// ToggleStatus flips an owned secret between ACTIVE and DISABLED.
func (s *Service) ToggleStatus(ctx context.Context, userID, id int64) error {
	entity, err := s.repos.Secrets(s.db).FindByIDAndUserID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrSecretNotFound
		}
		return err
	}

	entity.Status = entity.Status.Toggle()
	entity.LastUpdated = time.Now()

	if _, err := s.repos.Secrets(s.db).Save(ctx, entity); err != nil {
		return err
	}

	s.publisher.Publish(ctx, models.Event{
		UserID:    userID,
		EntityID:  id,
		Operation: models.EventToggleStatus,
		Target:    models.TargetSecret,
	})

	return nil
}

// Delete removes an owned secret; restriction rows cascade with it.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repos.Secrets(s.db).Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("error deleting secret: %w", err)
	}

	s.publisher.Publish(ctx, models.Event{
		UserID:    userID,
		EntityID:  id,
		Operation: models.EventDelete,
		Target:    models.TargetSecret,
	})

	return nil
}

// Count returns the number of secrets owned by the user.
func (s *Service) Count(ctx context.Context, userID int64) (int64, error) {
	return s.repos.Secrets(s.db).Count(ctx, userID)
}
