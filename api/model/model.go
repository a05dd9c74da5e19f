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
package model

import (
	"errors"
	"math/big"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/safenest-labs/safenest/model"
)

// SubmitTransaction is the request body for deposits and withdrawals. The
// amount travels as a decimal string in display units ("0.5" of an asset)
// and is scaled to the smallest unit server-side, so callers never lose
// precision to floating point.
type SubmitTransaction struct {
	AccountID string `json:"account_id"`
	VaultType *int   `json:"vault_type"`
	Amount    string `json:"amount"`
}

func vaultTypeValidation(value interface{}) error {
	vaultType, ok := value.(*int)
	if !ok || vaultType == nil {
		return errors.New("vault_type is required")
	}
	if !model.VaultType(*vaultType).Valid() {
		return errors.New("vault_type must be 0, 1, or 2")
	}
	return nil
}

func amountValidation(value interface{}) error {
	amount, ok := value.(string)
	if !ok {
		return errors.New("amount must be a decimal string")
	}
	_, err := model.ParseAmount(amount)
	return err
}

func (t *SubmitTransaction) ValidateSubmitTransaction() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.AccountID, validation.Required),
		validation.Field(&t.VaultType, validation.By(vaultTypeValidation)),
		validation.Field(&t.Amount, validation.Required, validation.By(amountValidation)),
	)
}

// ToParams converts the validated request into service-layer arguments.
func (t *SubmitTransaction) ToParams() (model.VaultType, *big.Int) {
	amount, _ := model.ParseAmount(t.Amount)
	return model.VaultType(*t.VaultType), amount
}
