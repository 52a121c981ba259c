// Package models defines server-side data models persisted in the database.
package models

// EntityStatus is the lifecycle state shared by keystores, secrets,
// API keys and IP restrictions.
type EntityStatus string

const (
	StatusActive      EntityStatus = "ACTIVE"
	StatusDisabled    EntityStatus = "DISABLED"
	StatusToBeDeleted EntityStatus = "TO_BE_DELETED"
)

// Toggle flips between ACTIVE and DISABLED.
func (s EntityStatus) Toggle() EntityStatus {
	if s == StatusActive {
		return StatusDisabled
	}
	return StatusActive
}
