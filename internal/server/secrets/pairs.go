package secrets

import (
	"strings"

	"github.com/szrnka-peter/give-my-secret/internal/shared"
)

// CredentialPair is one key:value element of a multi-credential secret.
type CredentialPair struct {
	Key   string
	Value string
}

// ParseCredentialPairs validates and splits a multi-credential value of
// the form "key1:value1;key2:value2". Every element must contain exactly
// one colon and a non-empty key and value.
func ParseCredentialPairs(value string) ([]CredentialPair, error) {
	if value == "" {
		return nil, shared.ErrInvalidCredentialPair
	}

	items := strings.Split(strings.TrimSuffix(value, ";"), ";")

	pairs := make([]CredentialPair, 0, len(items))
	for _, item := range items {
		if strings.Count(item, ":") != 1 {
			return nil, shared.ErrInvalidCredentialPair
		}

		key, val, _ := strings.Cut(item, ":")
		if key == "" || val == "" {
			return nil, shared.ErrInvalidCredentialPair
		}

		pairs = append(pairs, CredentialPair{Key: key, Value: val})
	}

	return pairs, nil
}
