package models

import "time"

// ApiKey is a user-owned API credential. Value is stored field-encrypted;
// Digest is an argon2id hash kept for lookup without decryption.
type ApiKey struct {
	ID           int64
	UserID       int64
	Name         string
	Value        string
	Digest       string
	Status       EntityStatus
	Description  string
	CreationDate time.Time
}

// ApiKeyRestriction limits which API keys may fetch a given secret.
// The (SecretID, ApiKeyID) pair is unique.
type ApiKeyRestriction struct {
	ID       int64
	UserID   int64
	SecretID int64
	ApiKeyID int64
}
