package models

import "time"

// SecretType determines how a secret's value is validated and returned.
type SecretType string

const (
	// SimpleCredential holds a single opaque value.
	SimpleCredential SecretType = "SIMPLE_CREDENTIAL"
	// MultipleCredential holds semicolon-separated key:value pairs.
	MultipleCredential SecretType = "MULTIPLE_CREDENTIAL"
)

// Secret is a user-owned named value stored encrypted. SecretID is the
// user-facing identifier, unique within the owning user; Value always
// holds ciphertext once persisted.
type Secret struct {
	ID              int64
	UserID          int64
	SecretID        string
	KeystoreAliasID int64
	Value           string
	Status          EntityStatus
	Type            SecretType
	RotationPeriod  RotationPeriod
	RotationEnabled bool
	ReturnDecrypted bool
	CreationDate    time.Time
	LastUpdated     time.Time
	LastRotated     time.Time
}

// SaveSecretRequest carries the caller-supplied fields for creating or
// updating a secret. ID == 0 means create. An empty Value on update
// keeps the previously stored ciphertext.
type SaveSecretRequest struct {
	ID                 int64
	SecretID           string
	KeystoreAliasID    int64
	Value              string
	Status             EntityStatus
	Type               SecretType
	RotationPeriod     RotationPeriod
	RotationEnabled    bool
	ReturnDecrypted    bool
	ApiKeyRestrictions []int64
}
