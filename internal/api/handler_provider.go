package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fastprodman/lockpool/internal/ledger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// tokenDecimals is the number of fractional digits per token; one token is
// 10^tokenDecimals base units.
const tokenDecimals = 9

// PoolService is the slice of the pool service the handlers need.
type PoolService interface {
	Deposit(ctx context.Context, accountID, amount uint64) (ledger.DepositedEvent, error)
	Withdraw(ctx context.Context, accountID, amount uint64) (ledger.WithdrawEvent, error)
	GetAccount(accountID uint64) ledger.AccountView
	Status() ledger.PoolView
}

// HandlerProvider wraps a PoolService and exposes HTTP handlers.
type HandlerProvider struct {
	svc PoolService
}

// NewHandler returns a new Handler provider.
func NewHandler(svc PoolService) *HandlerProvider {
	return &HandlerProvider{svc: svc}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)

		http.Error(w, `{"error":"internal json encode failure"}`, http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// parseAccountIDFromPath reads `{accountId}` from chi routes like:
//
//	GET  /account/{accountId}
//	POST /account/{accountId}/deposit
func parseAccountIDFromPath(r *http.Request) (uint64, error) {
	idStr := chi.URLParam(r, "accountId")
	if idStr == "" {
		return 0, fmt.Errorf("missing accountId")
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid accountId: %w", err)
	}
	if id == 0 {
		return 0, fmt.Errorf("invalid accountId: must be positive")
	}

	return id, nil
}

type amountRequest struct {
	Amount string `json:"amount"`
}

// parseAmountBaseUnits converts a decimal token string with up to
// tokenDecimals fractional digits into base units.
func parseAmountBaseUnits(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %w", err)
	}

	scaled := d.Shift(tokenDecimals)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("amount supports up to %d decimals", tokenDecimals)
	}

	if scaled.Sign() <= 0 {
		return 0, fmt.Errorf("amount must be > 0")
	}

	bi := scaled.BigInt()
	if !bi.IsUint64() {
		return 0, fmt.Errorf("amount out of range")
	}

	return bi.Uint64(), nil
}

func formatBaseUnits(v uint64) string {
	return decimal.NewFromUint64(v).Shift(-tokenDecimals).String()
}

func decodeAmount(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	// Limit body size; disallow unknown fields
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB cap
	defer r.Body.Close()

	var req amountRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(&req)
	if err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "empty body")
			return 0, false
		}

		writeError(w, http.StatusBadRequest, "invalid JSON")
		return 0, false
	}

	amount, err := parseAmountBaseUnits(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return 0, false
	}

	return amount, true
}

func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "invalid amount")
	case errors.Is(err, ledger.ErrInvalidOperation):
		writeError(w, http.StatusConflict, "operation not allowed in current phase")
	case errors.Is(err, ledger.ErrInsufficientPrincipal):
		writeError(w, http.StatusConflict, "insufficient principal")
	case errors.Is(err, ledger.ErrTransferFailed):
		writeError(w, http.StatusBadGateway, "transfer failed")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// --- Handlers ---

// DepositHandler handles POST /account/{accountId}/deposit
func (h *HandlerProvider) DepositHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseAccountIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accountId in path")
		return
	}

	amount, ok := decodeAmount(w, r)
	if !ok {
		return
	}

	ev, err := h.svc.Deposit(r.Context(), accountID, amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"accountId": ev.AccountID,
		"amount":    formatBaseUnits(ev.Amount),
	})
}

// WithdrawHandler handles POST /account/{accountId}/withdraw
func (h *HandlerProvider) WithdrawHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseAccountIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accountId in path")
		return
	}

	amount, ok := decodeAmount(w, r)
	if !ok {
		return
	}

	ev, err := h.svc.Withdraw(r.Context(), accountID, amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"accountId":     ev.AccountID,
		"requested":     formatBaseUnits(ev.Requested),
		"paidOut":       formatBaseUnits(ev.PaidOut),
		"penaltyToPool": formatBaseUnits(ev.PenaltyToPool),
		"closed":        ev.Closed,
	})
}

// GetAccountHandler handles GET /account/{accountId}
func (h *HandlerProvider) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseAccountIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accountId in path")
		return
	}

	view := h.svc.GetAccount(accountID)

	writeJSON(w, http.StatusOK, map[string]any{
		"accountId":   view.AccountID,
		"deposited":   formatBaseUnits(view.Deposited),
		"entitlement": formatBaseUnits(view.Entitlement),
	})
}

// PoolStatusHandler handles GET /pool
func (h *HandlerProvider) PoolStatusHandler(w http.ResponseWriter, r *http.Request) {
	view := h.svc.Status()

	writeJSON(w, http.StatusOK, map[string]any{
		"phase":                  string(view.Phase),
		"totalPrincipal":         formatBaseUnits(view.TotalPrincipal),
		"feePool":                formatBaseUnits(view.FeePool),
		"timeUntilPayoutSeconds": view.TimeUntilPayout,
	})
}
