package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Transfer is the external value-transfer primitive. Both directions are
// all-or-nothing: on error no value has moved.
type Transfer interface {
	// TransferIn pulls amount from the account's wallet into pool custody.
	TransferIn(ctx context.Context, accountID uint64, amount uint64) error
	// TransferOut pushes amount from pool custody to the account's wallet.
	// Never called with a zero amount.
	TransferOut(ctx context.Context, accountID uint64, amount uint64) error
}

// Config carries the construction-time parameters of a pool.
type Config struct {
	Clock    clockwork.Clock // optional; defaults to the real clock
	Transfer Transfer

	// EnrollmentDuration and LockDuration fix the phase boundaries:
	// enrollmentEnd = start + EnrollmentDuration,
	// payoutTime    = enrollmentEnd + LockDuration.
	EnrollmentDuration time.Duration
	LockDuration       time.Duration

	// PenaltyRatePct is the percentage charged on withdrawals during the
	// lock phase when other stakers remain.
	PenaltyRatePct uint64
}

func (cfg *Config) Validate() error {
	if cfg.Transfer == nil {
		return errors.New("transfer is required")
	}
	if cfg.EnrollmentDuration < 0 {
		return errors.New("enrollment duration must not be negative")
	}
	if cfg.LockDuration < 0 {
		return errors.New("lock duration must not be negative")
	}
	if cfg.PenaltyRatePct > 100 {
		return errors.New("penalty rate must be at most 100 percent")
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}

	return nil
}

// Ledger is the pooled-deposit accounting engine: per-account bookkeeping,
// the phase-dependent penalty policy, and O(1) penalty redistribution via
// the accumulator index.
//
// All operations are serialized behind one mutex. The harvest -> mutate ->
// distribute -> checkpoint sequence must never interleave with another
// operation, or a stale pending would be computed.
type Ledger struct {
	mu sync.Mutex

	clock    clockwork.Clock
	transfer Transfer
	policy   penaltyPolicy

	enrollmentEnd time.Time
	payoutTime    time.Time

	acc      accumulator
	accounts map[uint64]*account
}

// New constructs a pool ledger. The enrollment window opens immediately.
func New(cfg Config) (*Ledger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := cfg.Clock.Now()
	enrollmentEnd := start.Add(cfg.EnrollmentDuration)

	return &Ledger{
		clock:         cfg.Clock,
		transfer:      cfg.Transfer,
		policy:        penaltyPolicy{ratePct: cfg.PenaltyRatePct},
		enrollmentEnd: enrollmentEnd,
		payoutTime:    enrollmentEnd.Add(cfg.LockDuration),
		accounts:      make(map[uint64]*account),
	}, nil
}

func (l *Ledger) phase() Phase {
	return PhaseAt(l.clock.Now(), l.enrollmentEnd, l.payoutTime)
}

// snapshot captures everything a single operation may mutate, so a failed
// external transfer can unwind the operation completely.
type snapshot struct {
	acct account
	acc  accumulator
}

func (l *Ledger) snapshotOf(acct *account) snapshot {
	return snapshot{acct: *acct, acc: l.acc}
}

func (l *Ledger) restore(acct *account, snap snapshot) {
	*acct = snap.acct
	l.acc = snap.acc
}

// Deposit stakes amount for the account. Only allowed during enrollment.
// The inbound transfer happens before any principal is credited; if it
// fails the operation has no effect.
func (l *Ledger) Deposit(ctx context.Context, accountID, amount uint64) (DepositedEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount == 0 {
		return DepositedEvent{}, ErrInvalidAmount
	}

	if l.phase() != PhaseEnrollment {
		return DepositedEvent{}, fmt.Errorf("deposit in %s phase: %w", l.phase(), ErrInvalidOperation)
	}

	acct := l.getOrCreate(accountID)
	snap := l.snapshotOf(acct)

	l.acc.harvest(acct)

	err := l.transfer.TransferIn(ctx, accountID, amount)
	if err != nil {
		l.restore(acct, snap)

		return DepositedEvent{}, fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	acct.deposited += amount
	l.acc.totalPrincipal += amount
	acct.rewardDebt = l.acc.owed(acct.deposited)

	return DepositedEvent{AccountID: accountID, Amount: amount}, nil
}

// Withdraw removes amount of principal. During the lock phase a penalty is
// charged and redistributed to the remaining stakers; the withdrawer never
// earns on their own penalty, and a sole staker is exempt. Any harvested
// entitlement is paid out alongside the net principal.
//
// All internal mutation happens first; the outbound transfer is the single
// fallible tail step and its failure rolls the whole operation back.
func (l *Ledger) Withdraw(ctx context.Context, accountID, amount uint64) (WithdrawEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount == 0 {
		return WithdrawEvent{}, ErrInvalidAmount
	}

	acct := l.getOrCreate(accountID)
	if acct.deposited < amount {
		return WithdrawEvent{}, fmt.Errorf("withdraw %d of %d: %w", amount, acct.deposited, ErrInsufficientPrincipal)
	}

	snap := l.snapshotOf(acct)

	l.acc.harvest(acct)

	// Penalty decided on pre-withdrawal figures: the sole-staker check asks
	// whether anyone else is in the pool right now.
	rate := l.policy.rate(l.phase(), acct.deposited, l.acc.totalPrincipal)
	penalty := penaltyOf(amount, rate)
	netPrincipal := amount - penalty

	acct.deposited -= amount
	l.acc.totalPrincipal -= amount

	if penalty > 0 {
		l.acc.distributeExcluding(penalty, acct)
	}

	payout := netPrincipal + acct.entitlement
	acct.entitlement = 0
	acct.rewardDebt = l.acc.owed(acct.deposited)

	if payout > 0 {
		err := l.transfer.TransferOut(ctx, accountID, payout)
		if err != nil {
			l.restore(acct, snap)

			return WithdrawEvent{}, fmt.Errorf("%w: %w", ErrTransferFailed, err)
		}
	}

	return WithdrawEvent{
		AccountID:     accountID,
		Requested:     amount,
		PaidOut:       payout,
		PenaltyToPool: penalty,
		Closed:        acct.deposited == 0,
	}, nil
}

// Account returns a read-only view of one account. Entitlement includes the
// not-yet-harvested pending share; no state is mutated.
func (l *Ledger) Account(accountID uint64) AccountView {
	l.mu.Lock()
	defer l.mu.Unlock()

	view := AccountView{AccountID: accountID}

	acct, ok := l.accounts[accountID]
	if !ok {
		return view
	}

	view.Deposited = acct.deposited
	view.Entitlement = acct.entitlement + l.acc.pending(acct)

	return view
}

// Pool returns a read-only aggregate snapshot.
func (l *Ledger) Pool() PoolView {
	l.mu.Lock()
	defer l.mu.Unlock()

	return PoolView{
		Phase:           l.phase(),
		TotalPrincipal:  l.acc.totalPrincipal,
		FeePool:         l.acc.feePool,
		TimeUntilPayout: int64(l.timeUntilPayout().Seconds()),
	}
}

// TimeUntilPayout reports the remaining lock time, zero once payout time is
// reached.
func (l *Ledger) TimeUntilPayout() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.timeUntilPayout()
}

func (l *Ledger) timeUntilPayout() time.Duration {
	now := l.clock.Now()
	if !now.Before(l.payoutTime) {
		return 0
	}

	return l.payoutTime.Sub(now)
}
