package ledger

import (
	"fmt"

	"github.com/holiman/uint256"
)

// precision is the fixed-point scale P for accPerShare. All divisions
// truncate toward zero, so rounding always favors the pool.
var precision = uint256.NewInt(1e18)

// accumulator carries the aggregate counters through which penalties reach
// every staker in O(1). No operation ever iterates accounts.
type accumulator struct {
	// accPerShare is the cumulative fee-per-unit-principal index, scaled
	// by precision. Monotonically non-decreasing.
	accPerShare uint256.Int

	// totalPrincipal equals the sum of all accounts' deposited principal.
	totalPrincipal uint64

	// feePool tracks fee value distributed into the index but not yet
	// harvested into any entitlement. Trends toward zero as accounts
	// harvest.
	feePool uint64
}

// owed returns deposited*accPerShare/P, the accumulated fee value for a
// stake held since index zero. Truncating. Stays in 256 bits: after a
// self-exclusion offset the raw value can exceed uint64 range even though
// the pending difference never does.
func (a *accumulator) owed(deposited uint64) uint256.Int {
	var v uint256.Int
	if deposited == 0 {
		return v
	}

	v.Mul(uint256.NewInt(deposited), &a.accPerShare)
	v.Div(&v, precision)

	return v
}

// pending returns the account's unharvested fee share since its last
// checkpoint. A negative value is unreachable under correct checkpointing
// and treated as fatal. The difference is bounded by feePool, so the final
// downcast cannot overflow.
func (a *accumulator) pending(acct *account) uint64 {
	owed := a.owed(acct.deposited)
	if owed.Lt(&acct.rewardDebt) {
		panic(fmt.Sprintf("ledger: negative pending (owed=%s rewardDebt=%s)",
			owed.String(), acct.rewardDebt.String()))
	}

	var p uint256.Int
	p.Sub(&owed, &acct.rewardDebt)

	out, overflow := p.Uint64WithOverflow()
	if overflow {
		panic(fmt.Sprintf("ledger: pending overflows uint64 (owed=%s rewardDebt=%s)",
			owed.String(), acct.rewardDebt.String()))
	}

	return out
}

// harvest moves the account's pending fee share into its entitlement and
// brings its checkpoint current. Idempotent: a second call with no
// intervening distribution changes nothing.
//
// Must run as the first step of every deposit or withdrawal, before the
// account's principal is mutated.
func (a *accumulator) harvest(acct *account) {
	p := a.pending(acct)
	if p > 0 {
		if p > a.feePool {
			panic(fmt.Sprintf("ledger: feePool underflow (pending=%d feePool=%d)", p, a.feePool))
		}

		a.feePool -= p
		acct.entitlement += p
	}

	acct.rewardDebt = a.owed(acct.deposited)
}

// distributeExcluding credits amount to every staker except payer, in O(1).
//
// Called after payer.deposited and totalPrincipal have been reduced by the
// withdrawal, so the recipient pool excludes both the withdrawn principal
// and the payer's remaining stake.
func (a *accumulator) distributeExcluding(amount uint64, payer *account) {
	recipientPool := a.totalPrincipal - payer.deposited
	if recipientPool == 0 {
		// Unreachable: the sole-staker exemption guarantees a nonzero
		// recipient pool whenever a penalty is charged.
		return
	}

	var delta uint256.Int
	delta.Mul(uint256.NewInt(amount), precision)
	delta.Div(&delta, uint256.NewInt(recipientPool))

	a.accPerShare.Add(&a.accPerShare, &delta)

	// The index bump above would also inflate the payer's own future
	// pending. Offset exactly the portion attributable to the payer's
	// remaining stake; every other account's baseline is untouched.
	if payer.deposited > 0 {
		var offset uint256.Int
		offset.Mul(uint256.NewInt(payer.deposited), &delta)
		offset.Div(&offset, precision)
		payer.rewardDebt.Add(&payer.rewardDebt, &offset)
	}

	a.feePool += amount
}
