package model

import (
	"fmt"
	"math/big"
)

// VaultSnapshot is the derived aggregate for one vault, computed by replaying
// an account's ledger. It is never stored; every replay rebuilds it from the
// record sequence.
type VaultSnapshot struct {
	VaultType        VaultType `json:"vault_type"`
	TotalDeposited   *big.Int  `json:"total_deposited"`
	TotalWithdrawn   *big.Int  `json:"total_withdrawn"`
	CurrentBalance   *big.Int  `json:"current_balance"`
	TransactionCount int       `json:"transaction_count"`
	IsActive         bool      `json:"is_active"`
	// Inconsistent marks a vault whose raw balance went negative, meaning the
	// local ledger is missing at least one deposit record. The balance is
	// clamped to zero for display instead of being reported negative.
	Inconsistent     bool  `json:"inconsistent"`
	LastDepositAt    int64 `json:"last_deposit_at,omitempty"`
	LastWithdrawalAt int64 `json:"last_withdrawal_at,omitempty"`
}

// ReductionWarning reports a record skipped during replay. Warnings are
// data-integrity signals, never fatal.
type ReductionWarning struct {
	TransactionID string    `json:"transaction_id"`
	VaultType     VaultType `json:"vault_type"`
	Reason        string    `json:"reason"`
}

// InitializeSnapshotFields ensures all big.Int fields hold valid values so
// arithmetic never dereferences nil.
func (snapshot *VaultSnapshot) InitializeSnapshotFields() {
	if snapshot.TotalDeposited == nil {
		snapshot.TotalDeposited = big.NewInt(0)
	}
	if snapshot.TotalWithdrawn == nil {
		snapshot.TotalWithdrawn = big.NewInt(0)
	}
	if snapshot.CurrentBalance == nil {
		snapshot.CurrentBalance = big.NewInt(0)
	}
}

// applyDeposit adds the transaction amount to the deposited total and the
// running balance.
func (snapshot *VaultSnapshot) applyDeposit(transaction *Transaction) {
	snapshot.InitializeSnapshotFields()
	snapshot.TotalDeposited.Add(snapshot.TotalDeposited, transaction.Amount)
	snapshot.CurrentBalance.Add(snapshot.CurrentBalance, transaction.Amount)
	if transaction.Timestamp > snapshot.LastDepositAt {
		snapshot.LastDepositAt = transaction.Timestamp
	}
}

// applyWithdraw adds the transaction amount to the withdrawn total and
// subtracts it from the running balance. The running balance may go negative
// here; the clamp happens once at the end of the replay.
func (snapshot *VaultSnapshot) applyWithdraw(transaction *Transaction) {
	snapshot.InitializeSnapshotFields()
	snapshot.TotalWithdrawn.Add(snapshot.TotalWithdrawn, transaction.Amount)
	snapshot.CurrentBalance.Sub(snapshot.CurrentBalance, transaction.Amount)
	if transaction.Timestamp > snapshot.LastWithdrawalAt {
		snapshot.LastWithdrawalAt = transaction.Timestamp
	}
}

// ComputeSnapshots replays a transaction sequence into one snapshot per known
// vault type. The fold is deterministic and pure: identical input always
// yields identical output, and the sequence is consumed strictly in the order
// given (insertion order), never re-sorted by the client-supplied timestamps.
//
// Records with an unknown vault type or an invalid shape are skipped and
// reported as warnings. A vault whose final balance would be negative is
// clamped to zero and flagged Inconsistent.
func ComputeSnapshots(transactions []*Transaction) (map[VaultType]*VaultSnapshot, []ReductionWarning) {
	snapshots := make(map[VaultType]*VaultSnapshot, len(AllVaultTypes()))
	for _, vaultType := range AllVaultTypes() {
		snapshot := &VaultSnapshot{VaultType: vaultType}
		snapshot.InitializeSnapshotFields()
		snapshots[vaultType] = snapshot
	}

	var warnings []ReductionWarning
	for _, transaction := range transactions {
		snapshot, known := snapshots[transaction.VaultType]
		if !known {
			warnings = append(warnings, ReductionWarning{
				TransactionID: transaction.TransactionID,
				VaultType:     transaction.VaultType,
				Reason:        fmt.Sprintf("unknown vault type %d", transaction.VaultType),
			})
			continue
		}
		if err := transaction.Validate(); err != nil {
			warnings = append(warnings, ReductionWarning{
				TransactionID: transaction.TransactionID,
				VaultType:     transaction.VaultType,
				Reason:        err.Error(),
			})
			continue
		}

		switch transaction.Kind {
		case TransactionDeposit:
			snapshot.applyDeposit(transaction)
		case TransactionWithdraw:
			snapshot.applyWithdraw(transaction)
		}
		snapshot.IsActive = true
		snapshot.TransactionCount++
	}

	for _, vaultType := range AllVaultTypes() {
		snapshot := snapshots[vaultType]
		if snapshot.CurrentBalance.Sign() < 0 {
			warnings = append(warnings, ReductionWarning{
				VaultType: snapshot.VaultType,
				Reason:    "withdrawals exceed deposits, ledger is missing records",
			})
			snapshot.Inconsistent = true
			snapshot.CurrentBalance.SetInt64(0)
		}
	}

	return snapshots, warnings
}
