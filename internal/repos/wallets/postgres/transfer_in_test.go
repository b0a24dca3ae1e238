package wallets

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/fastprodman/lockpool/internal/infra/pgtestutil"
	"github.com/fastprodman/lockpool/internal/repos/wallets"
	"github.com/google/uuid"
)

func seedWallet(db *sql.DB, id uint64, balance int64, t *testing.T) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO wallets (id, balance) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET balance = EXCLUDED.balance
	`, id, balance)
	if err != nil {
		t.Fatalf("seed wallet(%d): %v", id, err)
	}
}

func walletBalance(db *sql.DB, id uint64, t *testing.T) int64 {
	t.Helper()

	var balance int64

	err := db.QueryRow(`SELECT balance FROM wallets WHERE id = $1`, id).Scan(&balance)
	if err != nil {
		t.Fatalf("read wallet(%d): %v", id, err)
	}

	return balance
}

func TestWallets_TransferIn_TableDriven(t *testing.T) {
	t.Parallel()

	type tc struct {
		name        string
		seed        func(db *sql.DB, t *testing.T)
		accountID   uint64
		amount      int64
		wantErr     error
		wantWallet  int64
		wantCustody int64
	}

	tests := []tc{
		{
			name:        "ok_moves_wallet_to_custody",
			seed:        func(db *sql.DB, t *testing.T) { seedWallet(db, 1, 1_000, t) },
			accountID:   1,
			amount:      400,
			wantWallet:  600,
			wantCustody: 400,
		},
		{
			name:        "ok_exact_balance_to_zero",
			seed:        func(db *sql.DB, t *testing.T) { seedWallet(db, 2, 300, t) },
			accountID:   2,
			amount:      300,
			wantWallet:  0,
			wantCustody: 300,
		},
		{
			name:        "insufficient_funds_nothing_moves",
			seed:        func(db *sql.DB, t *testing.T) { seedWallet(db, 3, 100, t) },
			accountID:   3,
			amount:      101,
			wantErr:     wallets.ErrInsufficientWalletFunds,
			wantWallet:  100,
			wantCustody: 0,
		},
		{
			name:        "missing_wallet_treated_as_insufficient",
			accountID:   999,
			amount:      50,
			wantErr:     wallets.ErrInsufficientWalletFunds,
			wantCustody: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, cleanup := pgtestutil.NewTestDB(t)
			defer cleanup()

			if tt.seed != nil {
				tt.seed(db, t)
			}

			repo := New(db)

			ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
			defer cancel()

			err := repo.TransferIn(ctx, tt.accountID, tt.amount, uuid.NewString())

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("transfer in: %v", err)
			}

			if tt.seed != nil {
				if got := walletBalance(db, tt.accountID, t); got != tt.wantWallet {
					t.Fatalf("wallet balance: want %d, got %d", tt.wantWallet, got)
				}
			}

			if got := walletBalance(db, custodyID, t); got != tt.wantCustody {
				t.Fatalf("custody balance: want %d, got %d", tt.wantCustody, got)
			}
		})
	}
}

func TestWallets_TransferIn_DuplicateRef(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	seedWallet(db, 1, 1_000, t)

	repo := New(db)
	ref := uuid.NewString()

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	err := repo.TransferIn(ctx, 1, 100, ref)
	if err != nil {
		t.Fatalf("first transfer: %v", err)
	}

	err = repo.TransferIn(ctx, 1, 100, ref)
	if !errors.Is(err, wallets.ErrDuplicateTransfer) {
		t.Fatalf("want ErrDuplicateTransfer, got %v", err)
	}

	// The replay moved nothing.
	if got := walletBalance(db, 1, t); got != 900 {
		t.Fatalf("wallet balance after replay: want 900, got %d", got)
	}
	if got := walletBalance(db, custodyID, t); got != 100 {
		t.Fatalf("custody balance after replay: want 100, got %d", got)
	}
}
