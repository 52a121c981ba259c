package keystore

import (
	"context"
	"errors"
	"fmt"

	"github.com/szrnka-peter/give-my-secret/internal/logging"
	"github.com/szrnka-peter/give-my-secret/internal/server/models"
	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/keystores"
	"github.com/szrnka-peter/give-my-secret/internal/shared"
)

// Validator confirms that a secret's keystore alias resolves to an
// active keystore owned by the secret's user. It is a pure gate with no
// side effects, called before every encrypt, decrypt and save.
type Validator struct {
	keystoreRepo keystores.Repository
	aliasRepo    keystores.AliasRepository
	logger       logging.Logger
}

func NewValidator(keystoreRepo keystores.Repository, aliasRepo keystores.AliasRepository, logger logging.Logger) *Validator {
	return &Validator{keystoreRepo: keystoreRepo, aliasRepo: aliasRepo, logger: logger}
}

func (v *Validator) ValidateSecretKeystore(ctx context.Context, secret *models.Secret) error {
	alias, err := v.aliasRepo.FindByID(ctx, secret.KeystoreAliasID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			v.logger.Warn(ctx, "keystore alias not found", "alias_id", secret.KeystoreAliasID)
			return shared.ErrInvalidKeystoreAlias
		}
		return fmt.Errorf("error loading keystore alias: %w", err)
	}

	ks, err := v.keystoreRepo.FindByIDAndUserID(ctx, alias.KeystoreID, secret.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			v.logger.Warn(ctx, "keystore not found or not owned", "keystore_id", alias.KeystoreID, "user_id", secret.UserID)
			return shared.ErrInvalidKeystore
		}
		return fmt.Errorf("error loading keystore: %w", err)
	}

	if ks.Status != models.StatusActive {
		v.logger.Warn(ctx, "keystore is not active", "keystore_id", ks.ID)
		return shared.ErrInactiveKeystore
	}

	return nil
}
