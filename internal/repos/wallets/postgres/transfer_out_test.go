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

func TestWallets_TransferOut_TableDriven(t *testing.T) {
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
			name: "ok_custody_to_existing_wallet",
			seed: func(db *sql.DB, t *testing.T) {
				seedWallet(db, custodyID, 500, t)
				seedWallet(db, 1, 10, t)
			},
			accountID:   1,
			amount:      200,
			wantWallet:  210,
			wantCustody: 300,
		},
		{
			name: "ok_creates_missing_wallet_row",
			seed: func(db *sql.DB, t *testing.T) {
				seedWallet(db, custodyID, 500, t)
			},
			accountID:   7,
			amount:      500,
			wantWallet:  500,
			wantCustody: 0,
		},
		{
			name: "custody_short_nothing_moves",
			seed: func(db *sql.DB, t *testing.T) {
				seedWallet(db, custodyID, 100, t)
				seedWallet(db, 1, 10, t)
			},
			accountID:   1,
			amount:      101,
			wantErr:     wallets.ErrCustodyUnderflow,
			wantWallet:  10,
			wantCustody: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, cleanup := pgtestutil.NewTestDB(t)
			defer cleanup()

			tt.seed(db, t)

			repo := New(db)

			ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
			defer cancel()

			err := repo.TransferOut(ctx, tt.accountID, tt.amount, uuid.NewString())

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("transfer out: %v", err)
			}

			if got := walletBalance(db, tt.accountID, t); got != tt.wantWallet {
				t.Fatalf("wallet balance: want %d, got %d", tt.wantWallet, got)
			}

			if got := walletBalance(db, custodyID, t); got != tt.wantCustody {
				t.Fatalf("custody balance: want %d, got %d", tt.wantCustody, got)
			}
		})
	}
}

func TestWallets_Balance(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	seedWallet(db, 5, 420, t)

	repo := New(db)

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	got, err := repo.Balance(ctx, 5)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if got != 420 {
		t.Fatalf("balance: want 420, got %d", got)
	}

	_, err = repo.Balance(ctx, 404)
	if !errors.Is(err, wallets.ErrWalletNotFound) {
		t.Fatalf("want ErrWalletNotFound, got %v", err)
	}
}

func TestWallets_RoundTrip(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	seedWallet(db, 1, 1_000, t)

	repo := New(db)

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	err := repo.TransferIn(ctx, 1, 1_000, uuid.NewString())
	if err != nil {
		t.Fatalf("transfer in: %v", err)
	}

	err = repo.TransferOut(ctx, 1, 1_000, uuid.NewString())
	if err != nil {
		t.Fatalf("transfer out: %v", err)
	}

	if got := walletBalance(db, 1, t); got != 1_000 {
		t.Fatalf("wallet balance: want 1000, got %d", got)
	}
	if got := walletBalance(db, custodyID, t); got != 0 {
		t.Fatalf("custody balance: want 0, got %d", got)
	}
}
