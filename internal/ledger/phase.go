package ledger

import "time"

// Phase is the lifecycle stage of the pool at a given instant.
type Phase string

const (
	// PhaseEnrollment: deposits open, withdrawals penalty-free.
	PhaseEnrollment Phase = "enrollment"
	// PhaseLock: deposits closed, early withdrawals pay the penalty.
	PhaseLock Phase = "lock"
	// PhaseOpen: payout time reached, unrestricted penalty-free withdrawal.
	PhaseOpen Phase = "open"
)

// PhaseAt maps an instant onto the pool lifecycle:
//
//	now < enrollmentEnd              -> Enrollment
//	enrollmentEnd <= now < payoutTime -> Lock
//	now >= payoutTime                 -> Open
func PhaseAt(now, enrollmentEnd, payoutTime time.Time) Phase {
	if now.Before(enrollmentEnd) {
		return PhaseEnrollment
	}

	if now.Before(payoutTime) {
		return PhaseLock
	}

	return PhaseOpen
}
