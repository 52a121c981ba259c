package models

import "time"

// EventOperation names the write that produced an audit event.
type EventOperation string

const (
	EventSave         EventOperation = "SAVE"
	EventDelete       EventOperation = "DELETE"
	EventToggleStatus EventOperation = "TOGGLE_STATUS"
	EventRotate       EventOperation = "ROTATE"
)

// EventTarget names the entity type an audit event refers to.
type EventTarget string

const (
	TargetSecret        EventTarget = "SECRET"
	TargetKeystore      EventTarget = "KEYSTORE"
	TargetIpRestriction EventTarget = "IP_RESTRICTION"
	TargetApiKey        EventTarget = "API_KEY"
)

// Event is an audit row written after successful mutations. Events are
// fire-and-forget: services never block on, or fail because of, the sink.
type Event struct {
	ID           int64
	UserID       int64
	EntityID     int64
	Operation    EventOperation
	Target       EventTarget
	CreationDate time.Time
}
