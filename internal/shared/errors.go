// Package shared holds the sentinel errors and small helpers used
// across the server packages.
package shared

import "errors"

var (

	// common errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")

	// keystore-specific errors
	ErrInvalidKeystoreAlias = errors.New("keystore alias is not available")
	ErrInvalidKeystore      = errors.New("invalid keystore")
	ErrInactiveKeystore     = errors.New("please provide an active keystore")
	ErrWrongKeystoreAlias   = errors.New("wrong keystore alias")
	ErrKeystoreLoad         = errors.New("keystore cannot be loaded")
	ErrAliasNotFound        = errors.New("alias not found in keystore")
	ErrNoKeystoreAlias      = errors.New("at least one keystore alias is required")

	// secret-specific errors
	ErrSecretNotFound        = errors.New("secret not found")
	ErrDuplicateSecretID     = errors.New("secret id is not unique")
	ErrInvalidCredentialPair = errors.New("invalid credential pair format")

	// ip restriction errors
	ErrNotGlobalRestriction = errors.New("the given resource is not a global ip restriction")
	ErrGlobalRestriction    = errors.New("global ip restrictions cannot be managed here")

	// crypto errors
	ErrCrypto = errors.New("crypto operation failed")
)
