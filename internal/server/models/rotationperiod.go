package models

import "time"

// RotationPeriod maps a configured rotation cadence to a concrete
// duration used to compute when a secret becomes due, measured from
// its lastRotated timestamp.
type RotationPeriod string

const (
	RotationThirtySeconds RotationPeriod = "THIRTY_SECONDS"
	RotationHourly        RotationPeriod = "HOURLY"
	RotationDaily         RotationPeriod = "DAILY"
	RotationWeekly        RotationPeriod = "WEEKLY"
	RotationMonthly       RotationPeriod = "MONTHLY"
	RotationYearly        RotationPeriod = "YEARLY"
	RotationNever         RotationPeriod = "NEVER"
)

// Duration returns the period's length. NEVER (and unknown values)
// return 0, which callers must treat as "not rotatable".
func (p RotationPeriod) Duration() time.Duration {
	switch p {
	case RotationThirtySeconds:
		return 30 * time.Second
	case RotationHourly:
		return time.Hour
	case RotationDaily:
		return 24 * time.Hour
	case RotationWeekly:
		return 7 * 24 * time.Hour
	case RotationMonthly:
		return 30 * 24 * time.Hour
	case RotationYearly:
		return 365 * 24 * time.Hour
	default:
		return 0
	}
}
