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
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	model2 "github.com/safenest-labs/safenest/api/model"
	"github.com/safenest-labs/safenest/gateway"
	"github.com/safenest-labs/safenest/internal/apierror"
	"github.com/safenest-labs/safenest/model"
	"github.com/safenest-labs/safenest/store"
)

func (a Api) GetVaults(c *gin.Context) {
	c.JSON(http.StatusOK, a.safenest.Vaults())
}

func (a Api) Deposit(c *gin.Context) {
	var newTransaction model2.SubmitTransaction
	if err := c.ShouldBindJSON(&newTransaction); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := newTransaction.ValidateSubmitTransaction(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	vaultType, amount := newTransaction.ToParams()
	resp, err := a.safenest.Deposit(c.Request.Context(), newTransaction.AccountID, vaultType, amount)
	if err != nil {
		a.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (a Api) Withdraw(c *gin.Context) {
	var newTransaction model2.SubmitTransaction
	if err := c.ShouldBindJSON(&newTransaction); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := newTransaction.ValidateSubmitTransaction(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	vaultType, amount := newTransaction.ToParams()
	resp, err := a.safenest.Withdraw(c.Request.Context(), newTransaction.AccountID, vaultType, amount)
	if err != nil {
		a.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (a Api) GetSnapshots(c *gin.Context) {
	accountID, passed := c.Params.Get("account_id")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account_id is required. pass it in the route /accounts/:account_id/snapshots"})
		return
	}

	resp, err := a.safenest.GetSnapshots(c.Request.Context(), accountID)
	if err != nil {
		a.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) GetHistory(c *gin.Context) {
	accountID, passed := c.Params.Get("account_id")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account_id is required. pass it in the route /accounts/:account_id/transactions"})
		return
	}

	resp, err := a.safenest.GetHistory(c.Request.Context(), accountID)
	if err != nil {
		a.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) ClearHistory(c *gin.Context) {
	accountID, passed := c.Params.Get("account_id")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account_id is required. pass it in the route /accounts/:account_id/transactions"})
		return
	}

	if err := a.safenest.ClearHistory(c.Request.Context(), accountID); err != nil {
		a.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "transaction history cleared"})
}

// writeError translates service and gateway failures into typed API errors
// with the right status codes.
func (a Api) writeError(c *gin.Context, err error) {
	apiErr := toAPIError(err)
	c.JSON(apierror.MapErrorToHTTPStatus(apiErr), apiErr)
}

func toAPIError(err error) apierror.APIError {
	switch {
	case errors.Is(err, gateway.ErrUserRejected):
		return apierror.NewAPIError(apierror.ErrUserRejected, "the request was rejected in the wallet", err.Error())
	case errors.Is(err, gateway.ErrInsufficientFunds):
		return apierror.NewAPIError(apierror.ErrInsufficientFunds, "the wallet cannot cover the amount plus gas", err.Error())
	case errors.Is(err, gateway.ErrInsufficientBalanceOnChain):
		return apierror.NewAPIError(apierror.ErrInsufficientFunds, "the on-chain vault balance is below the requested amount", err.Error())
	case errors.Is(err, gateway.ErrNetwork):
		return apierror.NewAPIError(apierror.ErrGatewayUnavailable, "the vault gateway could not be reached", err.Error())
	case errors.Is(err, store.ErrStorageUnavailable):
		return apierror.NewAPIError(apierror.ErrStorageDegraded, "ledger storage is unavailable", err.Error())
	case errors.Is(err, model.ErrInvalidVaultType), errors.Is(err, model.ErrInvalidAmount), errors.Is(err, model.ErrInvalidKind):
		return apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
	default:
		return apierror.NewAPIError(apierror.ErrInternalServer, err.Error(), nil)
	}
}
