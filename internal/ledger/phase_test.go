package ledger

import (
	"testing"
	"time"
)

func TestPhaseAt(t *testing.T) {
	t.Parallel()

	enrollmentEnd := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	payoutTime := enrollmentEnd.Add(24 * time.Hour)

	tests := []struct {
		name string
		now  time.Time
		want Phase
	}{
		{"before_enrollment_end", enrollmentEnd.Add(-time.Second), PhaseEnrollment},
		{"at_enrollment_end", enrollmentEnd, PhaseLock},
		{"inside_lock", enrollmentEnd.Add(time.Hour), PhaseLock},
		{"just_before_payout", payoutTime.Add(-time.Nanosecond), PhaseLock},
		{"at_payout", payoutTime, PhaseOpen},
		{"after_payout", payoutTime.Add(time.Hour), PhaseOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := PhaseAt(tt.now, enrollmentEnd, payoutTime)
			if got != tt.want {
				t.Fatalf("phase: want %s, got %s", tt.want, got)
			}
		})
	}
}

func TestPhaseAt_ZeroLockDuration(t *testing.T) {
	t.Parallel()

	boundary := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	// payoutTime == enrollmentEnd: the lock phase is empty.
	if got := PhaseAt(boundary, boundary, boundary); got != PhaseOpen {
		t.Fatalf("at boundary: want %s, got %s", PhaseOpen, got)
	}
	if got := PhaseAt(boundary.Add(-time.Second), boundary, boundary); got != PhaseEnrollment {
		t.Fatalf("before boundary: want %s, got %s", PhaseEnrollment, got)
	}
}
