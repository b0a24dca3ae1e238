package wallets

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fastprodman/lockpool/internal/infra/pgutils"
	"github.com/fastprodman/lockpool/internal/repos/wallets"
)

// TransferOut moves amount from the custody row to the account's wallet,
// all inside one transaction. The wallet row is created if the account has
// never held one.
func (r *walletsRepo) TransferOut(ctx context.Context, accountID uint64, amount int64, ref string) error {
	err := pgutils.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			UPDATE wallets
			SET balance = balance - $2
			WHERE id = $1
			  AND balance >= $2
		`, custodyID, amount)
		if err != nil {
			return fmt.Errorf("debit custody: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}

		if affected == 0 {
			// Custody holds every unit the ledger accounts for, so
			// this indicates drift between ledger and custody state.
			return wallets.ErrCustodyUnderflow
		}

		_, err = tx.Exec(`
			INSERT INTO wallets (id, balance)
			VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE
			SET balance = wallets.balance + EXCLUDED.balance
		`, accountID, amount)
		if err != nil {
			return fmt.Errorf("credit wallet: %w", err)
		}

		err = r.journal(tx, ref, accountID, directionOut, amount)
		if err != nil {
			return fmt.Errorf("journal: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("transfer out: %w", err)
	}

	return nil
}
