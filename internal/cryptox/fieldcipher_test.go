package cryptox

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/szrnka-peter/give-my-secret/internal/shared"
)

var (
	testKey = base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	testIV  = "123456789012"
)

func newTestCipher(t *testing.T) *FieldCipher {
	t.Helper()
	c, err := NewFieldCipher(testKey, testIV)
	require.NoError(t, err)
	return c
}

func TestNewFieldCipher_InvalidBase64Key(t *testing.T) {
	_, err := NewFieldCipher("%%%not-base64%%%", testIV)
	assert.True(t, errors.Is(err, shared.ErrCrypto))
}

func TestNewFieldCipher_InvalidKeyLength(t *testing.T) {
	_, err := NewFieldCipher(base64.StdEncoding.EncodeToString([]byte("short")), testIV)
	assert.True(t, errors.Is(err, shared.ErrCrypto))
}

func TestFieldCipher_RoundTrip(t *testing.T) {
	c := newTestCipher(t)

	for _, plaintext := range []string{"", "x", "username:test;password:y", "longer value with spaces"} {
		encrypted, err := c.Encrypt(plaintext)
		require.NoError(t, err)

		decrypted, err := c.Decrypt(encrypted)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

// The fixed key/IV pair makes ciphertext stable across calls. This is the
// intended behaviour of the at-rest format, not a regression.
func TestFieldCipher_Deterministic(t *testing.T) {
	c := newTestCipher(t)

	first, err := c.Encrypt("secret value")
	require.NoError(t, err)
	second, err := c.Encrypt("secret value")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFieldCipher_DecryptInvalidBase64(t *testing.T) {
	c := newTestCipher(t)

	_, err := c.Decrypt("!!!")
	assert.True(t, errors.Is(err, shared.ErrCrypto))
}

func TestFieldCipher_DecryptTampered(t *testing.T) {
	c := newTestCipher(t)

	encrypted, err := c.Encrypt("value")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encrypted)
	require.NoError(t, err)
	raw[0] ^= 0xff

	_, err = c.Decrypt(base64.StdEncoding.EncodeToString(raw))
	assert.True(t, errors.Is(err, shared.ErrCrypto))
}

func TestFieldCipher_DifferentIVDifferentCiphertext(t *testing.T) {
	c1 := newTestCipher(t)
	c2, err := NewFieldCipher(testKey, "210987654321")
	require.NoError(t, err)

	e1, err := c1.Encrypt("value")
	require.NoError(t, err)
	e2, err := c2.Encrypt("value")
	require.NoError(t, err)

	assert.NotEqual(t, e1, e2)
}
