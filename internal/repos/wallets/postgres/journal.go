package wallets

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/lockpool/internal/repos/wallets"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	directionIn  = "in"
	directionOut = "out"
)

// journal records the transfer under its caller-supplied reference. The
// primary key makes accidental replays of the same reference visible.
func (r *walletsRepo) journal(tx *sql.Tx, ref string, accountID uint64, direction string, amount int64) error {
	_, err := tx.Exec(`
		INSERT INTO transfers (ref, account_id, direction, amount)
		VALUES ($1, $2, $3, $4)
	`, ref, accountID, direction, amount)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return wallets.ErrDuplicateTransfer
			}
		}

		return fmt.Errorf("insert transfer: %w", err)
	}

	return nil
}
