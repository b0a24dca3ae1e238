package pool

import (
	"context"
	"fmt"
	"math"

	"github.com/fastprodman/lockpool/internal/repos/wallets"
	"github.com/google/uuid"
)

// walletTransfer adapts the Postgres custody store to the ledger's transfer
// primitive. Every transfer gets a fresh journal reference.
type walletTransfer struct {
	wallets wallets.Wallets
}

func newWalletTransfer(w wallets.Wallets) *walletTransfer {
	return &walletTransfer{wallets: w}
}

func (t *walletTransfer) TransferIn(ctx context.Context, accountID, amount uint64) error {
	signed, err := toSigned(amount)
	if err != nil {
		return err
	}

	return t.wallets.TransferIn(ctx, accountID, signed, uuid.NewString())
}

func (t *walletTransfer) TransferOut(ctx context.Context, accountID, amount uint64) error {
	signed, err := toSigned(amount)
	if err != nil {
		return err
	}

	return t.wallets.TransferOut(ctx, accountID, signed, uuid.NewString())
}

func toSigned(amount uint64) (int64, error) {
	if amount > math.MaxInt64 {
		return 0, fmt.Errorf("amount %d exceeds transferable range", amount)
	}

	return int64(amount), nil
}
