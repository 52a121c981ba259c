package keystore

import (
	"bytes"
	"crypto/x509"
	"fmt"

	jks "github.com/pavlo-v-chernykh/keystore-go/v4"

	"github.com/szrnka-peter/give-my-secret/internal/shared"
)

// JKSReader opens Java KeyStore containers via keystore-go.
type JKSReader struct {
}

func (r *JKSReader) Load(data []byte, credential string) (Container, error) {
	ks := jks.New()
	if err := ks.Load(bytes.NewReader(data), []byte(credential)); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrKeystoreLoad, err)
	}
	return &jksContainer{ks: ks}, nil
}

type jksContainer struct {
	ks jks.KeyStore
}

func (c *jksContainer) GetKey(alias, aliasCredential string) (*KeyEntry, error) {
	entry, err := c.ks.GetPrivateKeyEntry(alias, []byte(aliasCredential))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrAliasNotFound, alias, err)
	}

	key, err := x509.ParsePKCS8PrivateKey(entry.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing key for alias %s: %v", shared.ErrKeystoreLoad, alias, err)
	}

	result := &KeyEntry{PrivateKey: key}

	if len(entry.CertificateChain) > 0 {
		cert, err := x509.ParseCertificate(entry.CertificateChain[0].Content)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing certificate for alias %s: %v", shared.ErrKeystoreLoad, alias, err)
		}
		result.Certificate = cert
	}

	return result, nil
}
