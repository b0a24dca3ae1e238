package wallets

import (
	"database/sql"

	"github.com/fastprodman/lockpool/internal/repos/wallets"
)

// custodyID is the reserved wallet row holding pooled funds.
const custodyID = 0

var _ wallets.Wallets = (*walletsRepo)(nil)

type walletsRepo struct{ db *sql.DB }

func New(db *sql.DB) *walletsRepo {
	return &walletsRepo{db: db}
}
