// Package crypto implements the cipher operations of the secret
// lifecycle. The algorithm is chosen by the keystore alias a secret is
// bound to: symmetric aliases use the deployment's deterministic AES-GCM
// parameters, asymmetric aliases use the RSA key pair extracted from the
// keystore container.
package crypto

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/awnumar/memguard"

	"github.com/szrnka-peter/give-my-secret/internal/logging"
	"github.com/szrnka-peter/give-my-secret/internal/server/keystore"
	"github.com/szrnka-peter/give-my-secret/internal/server/metrics"
	"github.com/szrnka-peter/give-my-secret/internal/server/models"
	"github.com/szrnka-peter/give-my-secret/internal/shared"
)

// Service encrypts and decrypts secret values.
type Service interface {
	Encrypt(ctx context.Context, secret *models.Secret, plaintext string) (string, error)
	Decrypt(ctx context.Context, secret *models.Secret) (string, error)
}

// MaterialProvider resolves a secret to keystore key material.
type MaterialProvider interface {
	GetKeystoreMaterial(ctx context.Context, secret *models.Secret) (*keystore.KeyMaterial, error)
}

// CipherService is the production Service implementation.
//
// The symmetric mode is AES-GCM with a 128-bit tag and a fixed key/IV
// pair from configuration. The IV is deterministic per deployment, so
// identical plaintext always produces identical ciphertext. This is a
// deliberate trade-off: stable ciphertext keeps equality lookups and
// audits possible at the cost of semantic security. Deployments that
// need per-record nonces must also migrate the storage format to keep a
// nonce next to every ciphertext.
type CipherService struct {
	materials MaterialProvider
	symKey    *memguard.Enclave
	iv        []byte
	metrics   *metrics.Metrics
	logger    logging.Logger
}

// NewCipherService seals the configured base64 AES key into a memguard
// enclave; the raw key bytes are wiped by memguard after sealing.
func NewCipherService(materials MaterialProvider, secretBase64, iv string,
	m *metrics.Metrics, logger logging.Logger) (*CipherService, error) {

	key, err := base64.StdEncoding.DecodeString(secretBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 crypto key: %v", shared.ErrCrypto, err)
	}

	return &CipherService{
		materials: materials,
		symKey:    memguard.NewEnclave(key),
		iv:        []byte(iv),
		metrics:   m,
		logger:    logger,
	}, nil
}

func (s *CipherService) Encrypt(ctx context.Context, secret *models.Secret, plaintext string) (string, error) {
	material, err := s.materials.GetKeystoreMaterial(ctx, secret)
	if err != nil {
		return "", err
	}

	result, mode, err := s.encryptWithMaterial(material, plaintext)
	if err != nil {
		s.metrics.CryptoFailures.WithLabelValues("encrypt").Inc()
		s.logger.Error(ctx, "encrypt failed", "user_id", secret.UserID, "secret_id", secret.ID)
		return "", err
	}

	s.metrics.CryptoOperations.WithLabelValues("encrypt", mode).Inc()
	return result, nil
}

func (s *CipherService) Decrypt(ctx context.Context, secret *models.Secret) (string, error) {
	material, err := s.materials.GetKeystoreMaterial(ctx, secret)
	if err != nil {
		return "", err
	}

	result, mode, err := s.decryptWithMaterial(material, secret.Value)
	if err != nil {
		s.metrics.CryptoFailures.WithLabelValues("decrypt").Inc()
		s.logger.Error(ctx, "decrypt failed", "user_id", secret.UserID, "secret_id", secret.ID)
		return "", err
	}

	s.metrics.CryptoOperations.WithLabelValues("decrypt", mode).Inc()
	return result, nil
}

func (s *CipherService) encryptWithMaterial(material *keystore.KeyMaterial, plaintext string) (string, string, error) {
	if symmetric(material.Alias.Algorithm) {
		out, err := s.sealSymmetric([]byte(plaintext))
		return out, "symmetric", err
	}

	out, err := wrapAsymmetric(material, []byte(plaintext))
	return out, "asymmetric", err
}

func (s *CipherService) decryptWithMaterial(material *keystore.KeyMaterial, ciphertext string) (string, string, error) {
	if symmetric(material.Alias.Algorithm) {
		out, err := s.openSymmetric(ciphertext)
		return out, "symmetric", err
	}

	out, err := unwrapAsymmetric(material, ciphertext)
	return out, "asymmetric", err
}

func symmetric(algorithm string) bool {
	return strings.HasPrefix(strings.ToUpper(algorithm), "AES")
}

func (s *CipherService) sealSymmetric(plaintext []byte) (string, error) {
	aead, err := s.openAEAD()
	if err != nil {
		return "", err
	}

	sealed := aead.Seal(nil, s.iv, plaintext, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (s *CipherService) openSymmetric(encoded string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64 ciphertext: %v", shared.ErrCrypto, err)
	}

	aead, err := s.openAEAD()
	if err != nil {
		return "", err
	}

	plaintext, err := aead.Open(nil, s.iv, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrCrypto, err)
	}

	return string(plaintext), nil
}

func (s *CipherService) openAEAD() (cipher.AEAD, error) {
	buf, err := s.symKey.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrCrypto, err)
	}
	defer buf.Destroy()

	block, err := aes.NewCipher(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrCrypto, err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, len(s.iv))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrCrypto, err)
	}

	return aead, nil
}

func wrapAsymmetric(material *keystore.KeyMaterial, plaintext []byte) (string, error) {
	pub, err := publicKey(material)
	if err != nil {
		return "", err
	}

	var sealed []byte
	if oaep(material.Alias.Algorithm) {
		sealed, err = rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, plaintext, nil)
	} else {
		sealed, err = rsa.EncryptPKCS1v15(rand.Reader, pub, plaintext)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrCrypto, err)
	}

	return base64.StdEncoding.EncodeToString(sealed), nil
}

func unwrapAsymmetric(material *keystore.KeyMaterial, encoded string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64 ciphertext: %v", shared.ErrCrypto, err)
	}

	priv, ok := material.Entry.PrivateKey.(*rsa.PrivateKey)
	if !ok {
		return "", fmt.Errorf("%w: alias %s does not hold an RSA key", shared.ErrCrypto, material.Alias.Alias)
	}

	var plaintext []byte
	if oaep(material.Alias.Algorithm) {
		plaintext, err = rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, sealed, nil)
	} else {
		plaintext, err = rsa.DecryptPKCS1v15(rand.Reader, priv, sealed)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrCrypto, err)
	}

	return string(plaintext), nil
}

func publicKey(material *keystore.KeyMaterial) (*rsa.PublicKey, error) {
	if material.Entry.Certificate != nil {
		if pub, ok := material.Entry.Certificate.PublicKey.(*rsa.PublicKey); ok {
			return pub, nil
		}
	}

	if priv, ok := material.Entry.PrivateKey.(*rsa.PrivateKey); ok {
		return &priv.PublicKey, nil
	}

	return nil, fmt.Errorf("%w: alias %s does not hold an RSA key", shared.ErrCrypto, material.Alias.Alias)
}

func oaep(algorithm string) bool {
	return strings.Contains(strings.ToUpper(algorithm), "OAEP")
}
