package wallets

import (
	"context"
	"errors"
)

var (
	ErrInsufficientWalletFunds = errors.New("insufficient wallet funds")
	ErrCustodyUnderflow        = errors.New("custody balance underflow")
	ErrDuplicateTransfer       = errors.New("duplicate transfer")
	ErrWalletNotFound          = errors.New("wallet not found")
)

// Wallets is the custody store backing the ledger's transfer primitive.
// Each account has a wallet row; a single custody row holds pooled funds.
// Both transfer directions run as one database transaction each, so a
// reported failure means no value moved.
type Wallets interface {
	// TransferIn moves amount from the account's wallet into custody.
	TransferIn(ctx context.Context, accountID uint64, amount int64, ref string) error
	// TransferOut moves amount from custody to the account's wallet.
	TransferOut(ctx context.Context, accountID uint64, amount int64, ref string) error
	// Balance returns the account's wallet balance.
	Balance(ctx context.Context, accountID uint64) (int64, error)
}
