// Package keystore implements the keystore subsystem: container parsing
// (PKCS#12 and JKS), validation of secret/keystore bindings, and
// extraction of key material for the crypto layer.
package keystore

import (
	"crypto"
	"crypto/x509"
	"fmt"

	"github.com/szrnka-peter/give-my-secret/internal/server/models"
	"github.com/szrnka-peter/give-my-secret/internal/shared"
)

// Reader opens a keystore container format from raw bytes.
type Reader interface {
	Load(data []byte, credential string) (Container, error)
}

// Container is an opened keystore from which named key entries can be
// extracted.
type Container interface {
	GetKey(alias, aliasCredential string) (*KeyEntry, error)
}

// KeyEntry is the material extracted for a single alias. It must never
// be persisted; it lives only for the duration of a cipher operation.
type KeyEntry struct {
	PrivateKey  crypto.PrivateKey
	Certificate *x509.Certificate
}

// ReaderFor returns the Reader implementation for a container type.
func ReaderFor(t models.KeystoreType) (Reader, error) {
	switch t {
	case models.KeystoreTypePKCS12:
		return &PKCS12Reader{}, nil
	case models.KeystoreTypeJKS:
		return &JKSReader{}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported container type %q", shared.ErrKeystoreLoad, t)
	}
}
