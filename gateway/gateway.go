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

// Package gateway is the boundary to the wallet bridge that actually talks to
// the chain. The gateway is an opaque, fallible collaborator: on success it
// returns a transaction hash, on failure one of the named error kinds. No
// ledger record is ever written for a failed submission, and the on-chain
// balance it manages is allowed to diverge from the locally replayed one.
package gateway

import (
	"context"
	"errors"
	"math/big"

	"github.com/safenest-labs/safenest/model"
)

var (
	// ErrUserRejected means the wallet owner declined to sign.
	ErrUserRejected = errors.New("user rejected the transaction")
	// ErrInsufficientFunds means the wallet cannot cover the deposit.
	ErrInsufficientFunds = errors.New("insufficient funds in wallet")
	// ErrInsufficientBalanceOnChain means the contract's balance for the
	// vault is below the requested withdrawal. Distinct from the locally
	// replayed balance, which may lag the chain.
	ErrInsufficientBalanceOnChain = errors.New("insufficient balance on chain")
	// ErrNetwork covers transport failures reaching the bridge or the chain.
	ErrNetwork = errors.New("network error reaching vault gateway")
)

// VaultGateway submits deposit and withdraw intents to the chain and returns
// the opaque transaction hash on confirmed success.
type VaultGateway interface {
	SubmitDeposit(ctx context.Context, vaultType model.VaultType, amount *big.Int) (string, error)
	SubmitWithdraw(ctx context.Context, vaultType model.VaultType, amount *big.Int) (string, error)
}
