/*
Copyright 2026 SafeNest Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package safenest

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/safenest-labs/safenest/internal/notification"
	"github.com/safenest-labs/safenest/model"
)

var (
	ledgerTracer = otel.Tracer("safenest.ledger")
)

// snapshotCacheTTL bounds staleness when another instance appends to the same
// account; mutations on this instance invalidate eagerly.
const snapshotCacheTTL = 30 * time.Second

// SnapshotResult is the full replay output for an account: one snapshot per
// known vault plus any data-integrity warnings raised along the way.
type SnapshotResult struct {
	Snapshots map[model.VaultType]*model.VaultSnapshot `json:"snapshots"`
	Warnings  []model.ReductionWarning                 `json:"warnings,omitempty"`
}

func snapshotCacheKey(accountID string) string {
	return fmt.Sprintf("safenest:snapshots:%s", accountID)
}

// Deposit submits a deposit intent through the vault gateway and, only on
// confirmed success, appends the resulting record to the account's ledger.
// A gateway failure produces no record; there is no in-flight state.
func (s *SafeNest) Deposit(ctx context.Context, accountID string, vaultType model.VaultType, amount *big.Int) (*model.Transaction, error) {
	ctx, span := ledgerTracer.Start(ctx, "Deposit")
	defer span.End()

	return s.submit(ctx, span, accountID, vaultType, model.TransactionDeposit, amount)
}

// Withdraw is the withdrawal counterpart of Deposit. The gateway checks the
// on-chain balance; the locally replayed balance is never consulted for
// authorization since it may lag the chain.
func (s *SafeNest) Withdraw(ctx context.Context, accountID string, vaultType model.VaultType, amount *big.Int) (*model.Transaction, error) {
	ctx, span := ledgerTracer.Start(ctx, "Withdraw")
	defer span.End()

	return s.submit(ctx, span, accountID, vaultType, model.TransactionWithdraw, amount)
}

func (s *SafeNest) submit(ctx context.Context, span trace.Span, accountID string, vaultType model.VaultType, kind model.TransactionKind, amount *big.Int) (*model.Transaction, error) {
	if accountID == "" {
		return nil, fmt.Errorf("account id is required")
	}
	if !vaultType.Valid() {
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidVaultType, vaultType)
	}
	if amount == nil || amount.Sign() < 0 {
		return nil, fmt.Errorf("%w: amount must be a non-negative integer", model.ErrInvalidAmount)
	}

	var externalRef string
	var err error
	if kind == model.TransactionDeposit {
		externalRef, err = s.gateway.SubmitDeposit(ctx, vaultType, amount)
	} else {
		externalRef, err = s.gateway.SubmitWithdraw(ctx, vaultType, amount)
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.AddEvent("Gateway confirmed", trace.WithAttributes(attribute.String("external_ref", externalRef)))

	transaction, err := model.NewTransaction(vaultType, kind, amount, externalRef)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := s.store.Append(ctx, accountID, transaction); err != nil {
		// the chain accepted the action but the record could not be kept;
		// return both so callers can surface the reference to the user
		span.RecordError(err)
		notification.NotifyError(err)
		return transaction, err
	}

	s.invalidateSnapshots(ctx, accountID)
	span.AddEvent("Record appended", trace.WithAttributes(
		attribute.String("transaction.id", transaction.TransactionID),
		attribute.String("account.id", accountID),
	))
	return transaction, nil
}

// GetSnapshots replays the account's ledger into per-vault balance
// snapshots. Results are cached per account and invalidated on every append
// or clear from this instance.
func (s *SafeNest) GetSnapshots(ctx context.Context, accountID string) (*SnapshotResult, error) {
	ctx, span := ledgerTracer.Start(ctx, "GetSnapshots")
	defer span.End()

	if cached := s.cachedSnapshots(ctx, accountID); cached != nil {
		span.AddEvent("Snapshot cache hit")
		return cached, nil
	}

	transactions, err := s.store.Load(ctx, accountID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	snapshots, warnings := model.ComputeSnapshots(transactions)
	result := &SnapshotResult{Snapshots: snapshots, Warnings: warnings}
	s.cacheSnapshots(ctx, accountID, result)
	span.AddEvent("Snapshots computed", trace.WithAttributes(attribute.Int("transaction.count", len(transactions))))
	return result, nil
}

// GetHistory returns the account's records newest-first for display. The
// replay itself always folds oldest-first; only the view is reversed.
func (s *SafeNest) GetHistory(ctx context.Context, accountID string) ([]*model.Transaction, error) {
	ctx, span := ledgerTracer.Start(ctx, "GetHistory")
	defer span.End()

	transactions, err := s.store.Load(ctx, accountID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	reversed := make([]*model.Transaction, len(transactions))
	for i, transaction := range transactions {
		reversed[len(transactions)-1-i] = transaction
	}
	return reversed, nil
}

// ClearHistory irreversibly empties the account's ledger. Only an explicit
// user action reaches this; nothing clears a ledger automatically.
func (s *SafeNest) ClearHistory(ctx context.Context, accountID string) error {
	ctx, span := ledgerTracer.Start(ctx, "ClearHistory")
	defer span.End()

	if err := s.store.Clear(ctx, accountID); err != nil {
		span.RecordError(err)
		return err
	}
	s.invalidateSnapshots(ctx, accountID)
	span.AddEvent("Ledger cleared", trace.WithAttributes(attribute.String("account.id", accountID)))
	return nil
}

// Vaults exposes the static vault catalogue.
func (s *SafeNest) Vaults() []model.VaultInfo {
	return model.Vaults()
}

func (s *SafeNest) cachedSnapshots(ctx context.Context, accountID string) *SnapshotResult {
	if s.cache == nil {
		return nil
	}
	var payload []byte
	if err := s.cache.Get(ctx, snapshotCacheKey(accountID), &payload); err != nil || len(payload) == 0 {
		return nil
	}
	var result SnapshotResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil
	}
	return &result
}

func (s *SafeNest) cacheSnapshots(ctx context.Context, accountID string, result *SnapshotResult) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, snapshotCacheKey(accountID), payload, snapshotCacheTTL); err != nil {
		notification.NotifyError(err)
	}
}

func (s *SafeNest) invalidateSnapshots(ctx context.Context, accountID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, snapshotCacheKey(accountID)); err != nil {
		notification.NotifyError(err)
	}
}
