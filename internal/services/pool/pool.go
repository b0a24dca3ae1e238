package pool

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fastprodman/lockpool/internal/ledger"
	pgwallets "github.com/fastprodman/lockpool/internal/repos/wallets/postgres"
	"github.com/jonboulle/clockwork"
)

// Config carries everything needed to stand up a pool service.
type Config struct {
	DB     *sql.DB
	Logger *slog.Logger
	Clock  clockwork.Clock // optional; defaults to the real clock

	EnrollmentDuration time.Duration
	LockDuration       time.Duration
	PenaltyRatePct     uint64
}

func (cfg *Config) Validate() error {
	if cfg.DB == nil {
		return errors.New("db is required")
	}
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}

	return nil
}

// PoolService fronts the ledger core: it binds the Postgres custody store
// to the ledger's transfer primitive and adds observability (slog events,
// Prometheus counters). It holds no ledger state of its own.
type PoolService struct {
	ledger *ledger.Ledger
	log    *slog.Logger
}

func New(cfg Config) (*PoolService, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	led, err := ledger.New(ledger.Config{
		Clock:              cfg.Clock,
		Transfer:           newWalletTransfer(pgwallets.New(cfg.DB)),
		EnrollmentDuration: cfg.EnrollmentDuration,
		LockDuration:       cfg.LockDuration,
		PenaltyRatePct:     cfg.PenaltyRatePct,
	})
	if err != nil {
		return nil, fmt.Errorf("init ledger: %w", err)
	}

	return &PoolService{ledger: led, log: cfg.Logger}, nil
}

// Deposit stakes amount (base units) for the account during enrollment.
func (s *PoolService) Deposit(ctx context.Context, accountID, amount uint64) (ledger.DepositedEvent, error) {
	ev, err := s.ledger.Deposit(ctx, accountID, amount)
	if err != nil {
		return ledger.DepositedEvent{}, fmt.Errorf("deposit: %w", err)
	}

	s.log.Info("deposited",
		"account_id", ev.AccountID,
		"amount", ev.Amount,
	)
	depositsTotal.Inc()
	depositedUnitsTotal.Add(float64(ev.Amount))
	s.observePool()

	return ev, nil
}

// Withdraw removes amount (base units) of principal and pays out the net
// principal plus any accrued entitlement.
func (s *PoolService) Withdraw(ctx context.Context, accountID, amount uint64) (ledger.WithdrawEvent, error) {
	ev, err := s.ledger.Withdraw(ctx, accountID, amount)
	if err != nil {
		return ledger.WithdrawEvent{}, fmt.Errorf("withdraw: %w", err)
	}

	msg := "partial withdrawn"
	if ev.Closed {
		msg = "withdrawn all"
	}

	s.log.Info(msg,
		"account_id", ev.AccountID,
		"requested", ev.Requested,
		"paid_out", ev.PaidOut,
		"penalty_to_pool", ev.PenaltyToPool,
	)
	withdrawalsTotal.Inc()
	penaltyUnitsTotal.Add(float64(ev.PenaltyToPool))
	s.observePool()

	return ev, nil
}

// GetAccount returns the account view; entitlement includes pending.
func (s *PoolService) GetAccount(accountID uint64) ledger.AccountView {
	return s.ledger.Account(accountID)
}

// Status returns the aggregate pool view.
func (s *PoolService) Status() ledger.PoolView {
	return s.ledger.Pool()
}

func (s *PoolService) observePool() {
	view := s.ledger.Pool()
	poolPrincipal.Set(float64(view.TotalPrincipal))
	poolFeePool.Set(float64(view.FeePool))
}
