// Package cryptox implements the transparent at-rest encryption used for
// persisted string fields (API key values and similar columns).
//
// The cipher is AES-GCM with a 128-bit authentication tag and a fixed
// key/IV pair taken from deployment configuration. Because the IV is not
// derived per record, encrypting the same plaintext twice yields the same
// ciphertext. This is a known limitation kept for compatibility with the
// existing storage format: stable ciphertext allows equality lookups and
// audits, at the cost of semantic security. Changing it would require a
// storage migration that stores a nonce next to every encrypted column.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"

	"github.com/szrnka-peter/give-my-secret/internal/shared"
)

// FieldCipher encrypts and decrypts individual database fields.
// It is safe for concurrent use: the AEAD is stateless per call and the
// fixed IV is never mutated.
type FieldCipher struct {
	aead cipher.AEAD
	iv   []byte
}

// NewFieldCipher builds a FieldCipher from a base64-encoded AES key and a
// raw IV string. The key must decode to 16, 24 or 32 bytes.
func NewFieldCipher(secretBase64, iv string) (*FieldCipher, error) {
	key, err := base64.StdEncoding.DecodeString(secretBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 key: %v", shared.ErrCrypto, err)
	}

	block, err := aes.NewCipher(key)
	shared.WipeByteArray(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrCrypto, err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, len(iv))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrCrypto, err)
	}

	return &FieldCipher{aead: aead, iv: []byte(iv)}, nil
}

// Encrypt returns the base64-encoded AES-GCM ciphertext of value.
func (c *FieldCipher) Encrypt(value string) (string, error) {
	if len(c.iv) != c.aead.NonceSize() {
		return "", fmt.Errorf("%w: iv length mismatch", shared.ErrCrypto)
	}
	sealed := c.aead.Seal(nil, c.iv, []byte(value), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. It fails with shared.ErrCrypto on any padding,
// tag or encoding fault and never returns partial plaintext.
func (c *FieldCipher) Decrypt(encoded string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64 ciphertext: %v", shared.ErrCrypto, err)
	}

	plaintext, err := c.aead.Open(nil, c.iv, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrCrypto, err)
	}

	return string(plaintext), nil
}
