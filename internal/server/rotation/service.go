// Package rotation regenerates secret values whose rotation period has
// elapsed. The job runs on a dedicated goroutine driven by a ticker and
// reuses the same encryption path as interactive saves.
package rotation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/szrnka-peter/give-my-secret/internal/logging"
	"github.com/szrnka-peter/give-my-secret/internal/server/crypto"
	"github.com/szrnka-peter/give-my-secret/internal/server/events"
	"github.com/szrnka-peter/give-my-secret/internal/server/models"
	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/secrets"
	secretsvc "github.com/szrnka-peter/give-my-secret/internal/server/secrets"
)

// Service rotates a single secret: it generates a fresh value matching
// the secret's type, encrypts it and persists the updated row.
type Service struct {
	repo      secrets.Repository
	cipher    crypto.Service
	publisher events.Publisher
	logger    logging.Logger
}

func NewService(repo secrets.Repository, cipher crypto.Service, publisher events.Publisher, logger logging.Logger) *Service {
	return &Service{repo: repo, cipher: cipher, publisher: publisher, logger: logger}
}

// RotateSecret regenerates the secret's value and updates its rotation
// timestamps.
func (s *Service) RotateSecret(ctx context.Context, secret *models.Secret) error {
	newValue, err := s.generateValue(ctx, secret)
	if err != nil {
		return fmt.Errorf("error generating new value: %w", err)
	}

	encrypted, err := s.cipher.Encrypt(ctx, secret, newValue)
	if err != nil {
		return fmt.Errorf("error encrypting rotated value: %w", err)
	}

	now := time.Now()
	secret.Value = encrypted
	secret.LastRotated = now
	secret.LastUpdated = now

	if _, err := s.repo.Save(ctx, secret); err != nil {
		return fmt.Errorf("error saving rotated secret: %w", err)
	}

	s.publisher.Publish(ctx, models.Event{
		UserID:    secret.UserID,
		EntityID:  secret.ID,
		Operation: models.EventRotate,
		Target:    models.TargetSecret,
	})

	return nil
}

// generateValue produces a replacement value. Multi-credential secrets
// keep their keys and receive fresh values per key; everything else gets
// a single random value.
func (s *Service) generateValue(ctx context.Context, secret *models.Secret) (string, error) {
	if secret.Type != models.MultipleCredential {
		return uuid.NewString(), nil
	}

	current, err := s.cipher.Decrypt(ctx, secret)
	if err != nil {
		return "", err
	}

	pairs, err := secretsvc.ParseCredentialPairs(current)
	if err != nil {
		return "", err
	}

	items := make([]string, 0, len(pairs))
	for _, p := range pairs {
		items = append(items, p.Key+":"+uuid.NewString())
	}

	return strings.Join(items, ";"), nil
}
