package ledger

import "github.com/holiman/uint256"

// penaltyPolicy decides the penalty percentage for a withdrawal. The rate
// is configured at construction; 0 disables penalties entirely.
type penaltyPolicy struct {
	ratePct uint64
}

// rate returns the penalty percentage for a withdrawal, evaluated against
// pre-withdrawal figures.
//
// Precedence matters: the sole-staker exemption is checked before the phase,
// and it asks "is there anyone else in the pool right now", not "will there
// be anyone else after this withdrawal".
func (p penaltyPolicy) rate(phase Phase, accountPrincipal, totalPrincipal uint64) uint64 {
	if accountPrincipal == totalPrincipal {
		return 0
	}

	if phase != PhaseLock {
		return 0
	}

	return p.ratePct
}

// penaltyOf computes amount*ratePct/100 in 256 bits. The uint64 product
// wraps for amounts above MaxUint64/ratePct, which are still valid
// principal figures; the quotient is at most amount, so the downcast is
// safe.
func penaltyOf(amount, ratePct uint64) uint64 {
	if ratePct == 0 {
		return 0
	}

	var v uint256.Int
	v.Mul(uint256.NewInt(amount), uint256.NewInt(ratePct))
	v.Div(&v, uint256.NewInt(100))

	return v.Uint64()
}
