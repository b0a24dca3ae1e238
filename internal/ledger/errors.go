package ledger

import "errors"

var (
	// ErrInvalidAmount rejects zero-amount deposits and withdrawals.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidOperation rejects operations outside their valid phase
	// (deposits after enrollment ends).
	ErrInvalidOperation = errors.New("operation not allowed in current phase")

	// ErrInsufficientPrincipal rejects withdrawals exceeding the account's
	// staked principal.
	ErrInsufficientPrincipal = errors.New("insufficient principal")

	// ErrTransferFailed wraps a failure of the external transfer primitive.
	// The operation has been rolled back in full; safe to retry.
	ErrTransferFailed = errors.New("transfer failed")
)
