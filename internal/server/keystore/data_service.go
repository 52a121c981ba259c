package keystore

import (
	"context"
	"errors"
	"fmt"

	"github.com/szrnka-peter/give-my-secret/internal/logging"
	"github.com/szrnka-peter/give-my-secret/internal/server/filestore"
	"github.com/szrnka-peter/give-my-secret/internal/server/models"
	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/keystores"
	"github.com/szrnka-peter/give-my-secret/internal/shared"
)

// KeyMaterial is the resolved alias plus its extracted key entry.
// This is the only point where raw key material leaves the keystore
// subsystem; callers must not persist it.
type KeyMaterial struct {
	Alias *models.KeystoreAlias
	Entry *KeyEntry
}

// DataService resolves a secret to its keystore container and extracts
// the referenced alias's key material.
type DataService struct {
	keystoreRepo keystores.Repository
	aliasRepo    keystores.AliasRepository
	store        filestore.Store
	logger       logging.Logger
}

func NewDataService(keystoreRepo keystores.Repository, aliasRepo keystores.AliasRepository,
	store filestore.Store, logger logging.Logger) *DataService {
	return &DataService{keystoreRepo: keystoreRepo, aliasRepo: aliasRepo, store: store, logger: logger}
}

// GetKeystoreMaterial resolves secret -> alias -> keystore, fetches the
// container bytes, opens the container with the store credential and
// extracts the alias entry with the alias credential.
func (s *DataService) GetKeystoreMaterial(ctx context.Context, secret *models.Secret) (*KeyMaterial, error) {
	alias, err := s.aliasRepo.FindByID(ctx, secret.KeystoreAliasID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidKeystoreAlias
		}
		return nil, fmt.Errorf("error loading keystore alias: %w", err)
	}

	ks, err := s.keystoreRepo.FindByID(ctx, alias.KeystoreID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidKeystore
		}
		return nil, fmt.Errorf("error loading keystore: %w", err)
	}

	data, err := s.store.Fetch(ctx, ks.UserID, ks.FileName)
	if err != nil {
		s.logger.Error(ctx, "keystore file cannot be read",
			"keystore_id", ks.ID, "user_id", ks.UserID, "file", ks.FileName)
		return nil, fmt.Errorf("%w: %v", shared.ErrKeystoreLoad, err)
	}

	reader, err := ReaderFor(ks.Type)
	if err != nil {
		return nil, err
	}

	container, err := reader.Load(data, ks.Credential)
	if err != nil {
		return nil, err
	}

	entry, err := container.GetKey(alias.Alias, alias.AliasCredential)
	if err != nil {
		return nil, err
	}

	return &KeyMaterial{Alias: alias, Entry: entry}, nil
}
