package models

import "time"

// Well-known system property keys.
const (
	PropRotationJobEnabled  = "SECRET_ROTATION_JOB_ENABLED"
	PropRotationRunnerID    = "SECRET_ROTATION_RUNNER_ID"
	PropOldEventCleanupDays = "OLD_EVENT_CLEANUP_DAYS"
)

// SystemProperty is a key/value row backing runtime toggles such as job
// enablement and the multi-node rotation runner id.
type SystemProperty struct {
	ID           int64
	Key          string
	Value        string
	LastModified time.Time
}
