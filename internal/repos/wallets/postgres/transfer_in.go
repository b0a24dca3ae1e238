package wallets

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fastprodman/lockpool/internal/infra/pgutils"
	"github.com/fastprodman/lockpool/internal/repos/wallets"
)

// TransferIn moves amount from the account's wallet into the custody row,
// all inside one transaction. A wallet short on funds (or missing entirely)
// leaves both rows untouched.
func (r *walletsRepo) TransferIn(ctx context.Context, accountID uint64, amount int64, ref string) error {
	err := pgutils.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			UPDATE wallets
			SET balance = balance - $2
			WHERE id = $1
			  AND balance >= $2
		`, accountID, amount)
		if err != nil {
			return fmt.Errorf("debit wallet: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}

		if affected == 0 {
			return wallets.ErrInsufficientWalletFunds
		}

		_, err = tx.Exec(`
			UPDATE wallets
			SET balance = balance + $2
			WHERE id = $1
		`, custodyID, amount)
		if err != nil {
			return fmt.Errorf("credit custody: %w", err)
		}

		err = r.journal(tx, ref, accountID, directionIn, amount)
		if err != nil {
			return fmt.Errorf("journal: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("transfer in: %w", err)
	}

	return nil
}
