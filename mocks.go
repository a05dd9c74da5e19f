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
	"math/big"

	"github.com/safenest-labs/safenest/model"
)

// MockGateway substitutes the vault gateway in tests. Unset hooks confirm
// the submission with a canned reference.
type MockGateway struct {
	MockSubmitDeposit  func(model.VaultType, *big.Int) (string, error)
	MockSubmitWithdraw func(model.VaultType, *big.Int) (string, error)
	DepositCalls       int
	WithdrawCalls      int
}

func (m *MockGateway) SubmitDeposit(_ context.Context, vaultType model.VaultType, amount *big.Int) (string, error) {
	m.DepositCalls++
	if m.MockSubmitDeposit != nil {
		return m.MockSubmitDeposit(vaultType, amount)
	}
	return "0xmockdeposit", nil
}

func (m *MockGateway) SubmitWithdraw(_ context.Context, vaultType model.VaultType, amount *big.Int) (string, error) {
	m.WithdrawCalls++
	if m.MockSubmitWithdraw != nil {
		return m.MockSubmitWithdraw(vaultType, amount)
	}
	return "0xmockwithdraw", nil
}
