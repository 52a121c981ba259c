// Package apikeys manages user API keys. Key values are stored
// field-encrypted; a deterministic argon2id digest is stored alongside
// so a presented key can be located without decrypting every row.
package apikeys

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"golang.org/x/crypto/argon2"

	"github.com/szrnka-peter/give-my-secret/internal/cryptox"
	"github.com/szrnka-peter/give-my-secret/internal/logging"
	"github.com/szrnka-peter/give-my-secret/internal/server/events"
	"github.com/szrnka-peter/give-my-secret/internal/server/models"
	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/apikeys"
	"github.com/szrnka-peter/give-my-secret/internal/shared"
)

type Service struct {
	repo       apikeys.Repository
	cipher     *cryptox.FieldCipher
	digestSalt []byte
	publisher  events.Publisher
	logger     logging.Logger
}

func NewService(repo apikeys.Repository, cipher *cryptox.FieldCipher, digestSalt []byte,
	publisher events.Publisher, logger logging.Logger) *Service {
	return &Service{repo: repo, cipher: cipher, digestSalt: digestSalt, publisher: publisher, logger: logger}
}

// Create generates a new API key value, persists it encrypted and
// returns the entity together with the plaintext value. The plaintext
// is shown to the caller exactly once.
func (s *Service) Create(ctx context.Context, userID int64, name, description string) (*models.ApiKey, string, error) {
	value, err := shared.MakeRandHexString(24)
	if err != nil {
		return nil, "", fmt.Errorf("error generating api key: %w", err)
	}

	encrypted, err := s.cipher.Encrypt(value)
	if err != nil {
		return nil, "", fmt.Errorf("error encrypting api key: %w", err)
	}

	key := &models.ApiKey{
		UserID:       userID,
		Name:         name,
		Value:        encrypted,
		Digest:       s.digest(value),
		Status:       models.StatusActive,
		Description:  description,
		CreationDate: time.Now(),
	}

	saved, err := s.repo.Save(ctx, key)
	if err != nil {
		return nil, "", err
	}

	s.publisher.Publish(ctx, models.Event{
		UserID:    userID,
		EntityID:  saved.ID,
		Operation: models.EventSave,
		Target:    models.TargetApiKey,
	})

	return saved, value, nil
}

// GetDecrypted returns the plaintext value of an owned API key.
func (s *Service) GetDecrypted(ctx context.Context, userID, id int64) (string, error) {
	key, err := s.repo.FindByIDAndUserID(ctx, id, userID)
	if err != nil {
		return "", err
	}

	return s.cipher.Decrypt(key.Value)
}

// Lookup finds the API key matching a presented plaintext value.
func (s *Service) Lookup(ctx context.Context, value string) (*models.ApiKey, error) {
	return s.repo.FindByDigest(ctx, s.digest(value))
}

// digest is deterministic on purpose: it serves as a lookup index, not
// as the stored credential (that is the encrypted value column).
func (s *Service) digest(value string) string {
	sum := argon2.IDKey([]byte(value), s.digestSalt, 1, 64*1024, 4, 32)
	return base64.StdEncoding.EncodeToString(sum)
}
