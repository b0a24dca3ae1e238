package ledger

// DepositedEvent reports a successful deposit.
type DepositedEvent struct {
	AccountID uint64
	Amount    uint64
}

// WithdrawEvent reports a successful withdrawal. Closed is true when the
// account's principal reached zero in this operation.
type WithdrawEvent struct {
	AccountID     uint64
	Requested     uint64
	PaidOut       uint64
	PenaltyToPool uint64
	Closed        bool
}

// AccountView is a read-only snapshot of one account. Entitlement includes
// the unharvested pending share.
type AccountView struct {
	AccountID   uint64
	Deposited   uint64
	Entitlement uint64
}

// PoolView is a read-only snapshot of the aggregate pool state.
type PoolView struct {
	Phase           Phase
	TotalPrincipal  uint64
	FeePool         uint64
	TimeUntilPayout int64 // seconds; 0 once payout time is reached
}
