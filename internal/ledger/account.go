package ledger

import "github.com/holiman/uint256"

// account is the per-participant record. Created zero-valued on first touch,
// never deleted: an account withdrawn to zero principal stays addressable.
type account struct {
	// deposited is the currently staked principal, in base units.
	deposited uint64

	// entitlement is fee value already harvested for this account but not
	// yet paid out.
	entitlement uint64

	// rewardDebt is the value of deposited*accPerShare/P at the last
	// checkpoint. Subtraction baseline for pending fee computation; it is
	// not money owed by the account. Kept in 256 bits: the self-exclusion
	// offset scales with penalty/recipientPool and can exceed uint64 range
	// when the recipient pool is tiny, even though the pending difference
	// always stays small.
	rewardDebt uint256.Int
}

func (l *Ledger) getOrCreate(accountID uint64) *account {
	acct, ok := l.accounts[accountID]
	if !ok {
		acct = &account{}
		l.accounts[accountID] = acct
	}

	return acct
}
