package keystore

import (
	"fmt"

	"software.sslmate.com/src/go-pkcs12"

	"github.com/szrnka-peter/give-my-secret/internal/shared"
)

// PKCS12Reader opens PKCS#12 containers. The format protects the whole
// container with a single credential, so the store credential is needed
// at decode time and per-alias credentials are not used.
type PKCS12Reader struct {
}

func (r *PKCS12Reader) Load(data []byte, credential string) (Container, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty container", shared.ErrKeystoreLoad)
	}
	return &pkcs12Container{data: data, credential: credential}, nil
}

type pkcs12Container struct {
	data       []byte
	credential string
}

// GetKey decodes the container and returns its key pair. Generated
// containers hold exactly one key entry, so the alias only names the
// entry and does not select between several.
func (c *pkcs12Container) GetKey(alias, aliasCredential string) (*KeyEntry, error) {
	key, cert, _, err := pkcs12.DecodeChain(c.data, c.credential)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrKeystoreLoad, err)
	}

	if key == nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrAliasNotFound, alias)
	}

	return &KeyEntry{PrivateKey: key, Certificate: cert}, nil
}
