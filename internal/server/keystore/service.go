package keystore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/szrnka-peter/give-my-secret/internal/dbx"
	"github.com/szrnka-peter/give-my-secret/internal/logging"
	"github.com/szrnka-peter/give-my-secret/internal/server/events"
	"github.com/szrnka-peter/give-my-secret/internal/server/filestore"
	"github.com/szrnka-peter/give-my-secret/internal/server/models"
	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/repomanager"
	"github.com/szrnka-peter/give-my-secret/internal/shared"
)

// Service manages keystore entities and their alias entries. The
// container file itself is uploaded out of band and treated as
// immutable; Save only verifies that the stored container opens with
// the given credential and holds every alias being persisted.
type Service struct {
	db        *sql.DB
	repos     repomanager.RepositoryManager
	store     filestore.Store
	publisher events.Publisher
	logger    logging.Logger
}

func NewService(db *sql.DB, repos repomanager.RepositoryManager, store filestore.Store,
	publisher events.Publisher, logger logging.Logger) *Service {
	return &Service{db: db, repos: repos, store: store, publisher: publisher, logger: logger}
}

// Save creates (req.ID == 0) or updates a keystore and syncs its alias
// entries per their requested operation: SAVE inserts or updates the
// entry, DELETE removes it. A keystore must end up with at least one
// alias; disabled keystores cannot be edited. Every alias being saved
// is checked against the container before anything is persisted.
func (s *Service) Save(ctx context.Context, userID int64, req *models.SaveKeystoreRequest) (*models.Keystore, error) {
	var entity *models.Keystore

	if req.ID == 0 {
		entity = &models.Keystore{
			UserID:       userID,
			Name:         req.Name,
			FileName:     req.FileName,
			Type:         req.Type,
			Credential:   req.Credential,
			Status:       models.StatusActive,
			Description:  req.Description,
			CreationDate: time.Now(),
		}

		if countAliasSaves(req.Aliases) == 0 {
			return nil, shared.ErrNoKeystoreAlias
		}
	} else {
		existing, err := s.repos.Keystores(s.db).FindByIDAndUserIDAndStatus(ctx, req.ID, userID, models.StatusActive)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.ErrInvalidKeystore
			}
			return nil, err
		}

		entity = existing
		entity.Name = req.Name
		entity.Credential = req.Credential
		entity.Description = req.Description
	}

	if err := s.validateAliases(ctx, entity, req.Aliases); err != nil {
		return nil, err
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		saved, err := s.repos.Keystores(tx).Save(ctx, entity)
		if err != nil {
			return err
		}
		entity = saved

		aliasRepo := s.repos.KeystoreAliases(tx)
		for i := range req.Aliases {
			a := &req.Aliases[i]
			switch a.Operation {
			case models.AliasDelete:
				if err := aliasRepo.Delete(ctx, a.ID); err != nil {
					return err
				}
			default:
				_, err := aliasRepo.Save(ctx, &models.KeystoreAlias{
					ID:              a.ID,
					KeystoreID:      entity.ID,
					Alias:           a.Alias,
					AliasCredential: a.AliasCredential,
					Algorithm:       a.Algorithm,
				})
				if err != nil {
					return err
				}
			}
		}

		remaining, err := aliasRepo.FindAllByKeystoreID(ctx, entity.ID)
		if err != nil {
			return err
		}
		if len(remaining) == 0 {
			return shared.ErrNoKeystoreAlias
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, models.Event{
		UserID:    userID,
		EntityID:  entity.ID,
		Operation: models.EventSave,
		Target:    models.TargetKeystore,
	})

	return entity, nil
}

// validateAliases opens the stored container with the request
// credential and checks that every alias being saved resolves to an
// entry in it.
func (s *Service) validateAliases(ctx context.Context, ks *models.Keystore, aliases []models.KeystoreAliasRequest) error {
	data, err := s.store.Fetch(ctx, ks.UserID, ks.FileName)
	if err != nil {
		s.logger.Error(ctx, "keystore file cannot be read",
			"user_id", ks.UserID, "file", ks.FileName)
		return fmt.Errorf("%w: %v", shared.ErrKeystoreLoad, err)
	}

	reader, err := ReaderFor(ks.Type)
	if err != nil {
		return err
	}

	container, err := reader.Load(data, ks.Credential)
	if err != nil {
		return err
	}

	for _, a := range aliases {
		if a.Operation == models.AliasDelete {
			continue
		}
		if _, err := container.GetKey(a.Alias, a.AliasCredential); err != nil {
			s.logger.Warn(ctx, "alias missing from keystore container",
				"alias", a.Alias, "file", ks.FileName)
			return err
		}
	}

	return nil
}

// ToggleStatus flips an owned keystore between ACTIVE and DISABLED.
func (s *Service) ToggleStatus(ctx context.Context, userID, id int64) error {
	entity, err := s.repos.Keystores(s.db).FindByIDAndUserID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrInvalidKeystore
		}
		return err
	}

	entity.Status = entity.Status.Toggle()

	if _, err := s.repos.Keystores(s.db).Save(ctx, entity); err != nil {
		return err
	}

	s.publisher.Publish(ctx, models.Event{
		UserID:    userID,
		EntityID:  id,
		Operation: models.EventToggleStatus,
		Target:    models.TargetKeystore,
	})

	return nil
}

// GetByID returns an owned keystore together with its alias entries.
func (s *Service) GetByID(ctx context.Context, userID, id int64) (*models.Keystore, []*models.KeystoreAlias, error) {
	entity, err := s.repos.Keystores(s.db).FindByIDAndUserID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil, shared.ErrInvalidKeystore
		}
		return nil, nil, err
	}

	aliases, err := s.repos.KeystoreAliases(s.db).FindAllByKeystoreID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return entity, aliases, nil
}

func countAliasSaves(aliases []models.KeystoreAliasRequest) int {
	n := 0
	for _, a := range aliases {
		if a.Operation != models.AliasDelete {
			n++
		}
	}
	return n
}
