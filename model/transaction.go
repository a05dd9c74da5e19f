package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// TransactionKind is the tagged variant for the two ledger operations.
type TransactionKind string

const (
	TransactionDeposit  TransactionKind = "deposit"
	TransactionWithdraw TransactionKind = "withdraw"
)

var (
	ErrInvalidVaultType = errors.New("invalid vault type")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidKind      = errors.New("invalid transaction kind")
)

// Transaction is a single immutable ledger record. Amounts are in the
// smallest currency unit (wei). Timestamp is client-supplied epoch millis and
// is display-only; insertion order in the ledger is the ordering truth.
type Transaction struct {
	TransactionID string          `json:"id"`
	VaultType     VaultType       `json:"vault_type"`
	Kind          TransactionKind `json:"kind"`
	Amount        *big.Int        `json:"amount"`
	Timestamp     int64           `json:"timestamp"`
	ExternalRef   string          `json:"external_ref,omitempty"`
}

// GenerateUUIDWithSuffix generates a UUID prefixed with a module name,
// giving identifiers context-specific prefixes like txn_<uuid>.
func GenerateUUIDWithSuffix(module string) string {
	id := uuid.New()
	return fmt.Sprintf("%s_%s", module, id.String())
}

// NewTransaction builds a fresh record for a confirmed vault action.
// Pure construction: validation only, no side effects beyond reading the
// clock for the display timestamp.
func NewTransaction(vaultType VaultType, kind TransactionKind, amount *big.Int, externalRef string) (*Transaction, error) {
	if !vaultType.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVaultType, vaultType)
	}
	if kind != TransactionDeposit && kind != TransactionWithdraw {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	if amount == nil || amount.Sign() < 0 {
		return nil, fmt.Errorf("%w: amount must be a non-negative integer", ErrInvalidAmount)
	}
	return &Transaction{
		TransactionID: GenerateUUIDWithSuffix("txn"),
		VaultType:     vaultType,
		Kind:          kind,
		Amount:        new(big.Int).Set(amount),
		Timestamp:     time.Now().UnixMilli(),
		ExternalRef:   externalRef,
	}, nil
}

// Validate re-checks a record read back from storage. Malformed entries are
// quarantined by the store rather than allowed into a replay.
func (transaction *Transaction) Validate() error {
	if transaction.TransactionID == "" {
		return errors.New("transaction id is empty")
	}
	if !transaction.VaultType.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidVaultType, transaction.VaultType)
	}
	if transaction.Kind != TransactionDeposit && transaction.Kind != TransactionWithdraw {
		return fmt.Errorf("%w: %q", ErrInvalidKind, transaction.Kind)
	}
	if transaction.Amount == nil || transaction.Amount.Sign() < 0 {
		return fmt.Errorf("%w: amount must be a non-negative integer", ErrInvalidAmount)
	}
	return nil
}

func (transaction *Transaction) ToJSON() ([]byte, error) {
	return json.Marshal(transaction)
}
