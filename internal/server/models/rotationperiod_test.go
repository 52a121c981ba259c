package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRotationPeriod_Duration(t *testing.T) {
	tests := []struct {
		period RotationPeriod
		want   time.Duration
	}{
		{RotationThirtySeconds, 30 * time.Second},
		{RotationHourly, time.Hour},
		{RotationDaily, 24 * time.Hour},
		{RotationWeekly, 7 * 24 * time.Hour},
		{RotationMonthly, 30 * 24 * time.Hour},
		{RotationYearly, 365 * 24 * time.Hour},
		{RotationNever, 0},
		{RotationPeriod("BOGUS"), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.period.Duration())
		})
	}
}
