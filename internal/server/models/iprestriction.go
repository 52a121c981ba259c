package models

import (
	"database/sql"
	"time"
)

// IpRestriction is a regex pattern evaluated against a caller IP.
// SecretID is NULL for global restrictions, which are managed only
// through the global-restriction operations.
type IpRestriction struct {
	ID           int64
	UserID       int64
	SecretID     sql.NullInt64
	IpPattern    string
	Allow        bool
	Status       EntityStatus
	CreationDate time.Time
	LastModified time.Time
}

// Global reports whether the restriction applies to every secret.
func (r *IpRestriction) Global() bool {
	return !r.SecretID.Valid
}

// IpRestrictionRequest is the caller-supplied form of an IP restriction.
// ID == 0 marks a new entry during restriction sync.
type IpRestrictionRequest struct {
	ID        int64
	SecretID  int64
	IpPattern string
	Allow     bool
	Global    bool
}
