package models

import "time"

// KeystoreType is the container format of an uploaded keystore file.
type KeystoreType string

const (
	KeystoreTypeJKS    KeystoreType = "JKS"
	KeystoreTypePKCS12 KeystoreType = "PKCS12"
)

// Keystore is a credential-protected container of key material uploaded
// by a user and stored as a file. It is never deleted automatically while
// secrets still reference one of its aliases.
type Keystore struct {
	ID           int64
	UserID       int64
	Name         string
	FileName     string
	Type         KeystoreType
	Credential   string
	Status       EntityStatus
	Description  string
	CreationDate time.Time
}

// AliasOperation tells the keystore save flow what to do with an
// alias entry: persist it or remove it.
type AliasOperation string

const (
	AliasSave   AliasOperation = "SAVE"
	AliasDelete AliasOperation = "DELETE"
)

// KeystoreAliasRequest is one alias entry of a keystore save request.
// ID is zero for new entries.
type KeystoreAliasRequest struct {
	ID              int64
	Alias           string
	AliasCredential string
	Algorithm       string
	Operation       AliasOperation
}

// SaveKeystoreRequest carries the fields a caller may set when
// creating or updating a keystore. FileName and Type are fixed after
// creation; the container file itself is immutable.
type SaveKeystoreRequest struct {
	ID          int64
	Name        string
	FileName    string
	Type        KeystoreType
	Credential  string
	Description string
	Aliases     []KeystoreAliasRequest
}

// KeystoreAlias is a named key entry inside a keystore container.
// Secrets reference aliases by id; the parent keystore must be owned by
// the same user as the referencing secret.
type KeystoreAlias struct {
	ID              int64
	KeystoreID      int64
	Alias           string
	AliasCredential string
	Algorithm       string
}
