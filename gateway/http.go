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

package gateway

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/safenest-labs/safenest/internal/request"
	"github.com/safenest-labs/safenest/model"
)

// Error codes the wallet bridge returns in its JSON body.
const (
	codeUserRejected        = "USER_REJECTED"
	codeInsufficientFunds   = "INSUFFICIENT_FUNDS"
	codeInsufficientOnChain = "INSUFFICIENT_BALANCE_ON_CHAIN"
)

// HTTPGateway talks to the wallet bridge over JSON HTTP. Transient transport
// failures are retried with exponential backoff; user rejections and fund
// errors are permanent and surface immediately.
type HTTPGateway struct {
	baseURL    string
	client     *http.Client
	maxRetries uint64
}

func NewHTTPGateway(baseURL string, timeout time.Duration, maxRetries uint64) *HTTPGateway {
	return &HTTPGateway{
		baseURL:    baseURL,
		client:     &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
	}
}

type submitRequest struct {
	VaultType int    `json:"vault_type"`
	Amount    string `json:"amount"`
}

type submitResponse struct {
	TxHash    string `json:"tx_hash"`
	ErrorCode string `json:"error_code,omitempty"`
	Message   string `json:"message,omitempty"`
}

func (g *HTTPGateway) SubmitDeposit(ctx context.Context, vaultType model.VaultType, amount *big.Int) (string, error) {
	return g.submit(ctx, "deposits", vaultType, amount)
}

func (g *HTTPGateway) SubmitWithdraw(ctx context.Context, vaultType model.VaultType, amount *big.Int) (string, error) {
	return g.submit(ctx, "withdrawals", vaultType, amount)
}

func (g *HTTPGateway) submit(ctx context.Context, action string, vaultType model.VaultType, amount *big.Int) (string, error) {
	payload := submitRequest{VaultType: int(vaultType), Amount: amount.String()}
	url := fmt.Sprintf("%s/vaults/%s", g.baseURL, action)

	var txHash string
	operation := func() error {
		body, err := request.ToJSONReq(payload)
		if err != nil {
			return backoff.Permanent(err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
		if err != nil {
			return backoff.Permanent(err)
		}

		var response submitResponse
		resp, err := request.Call(g.client, req, &response)
		if err != nil {
			logrus.WithError(err).WithField("action", action).Warn("vault gateway call failed")
			return fmt.Errorf("%w: %v", ErrNetwork, err)
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: bridge returned status %d", ErrNetwork, resp.StatusCode)
		}
		if response.ErrorCode != "" {
			return backoff.Permanent(mapErrorCode(response.ErrorCode, response.Message))
		}
		if response.TxHash == "" {
			return backoff.Permanent(fmt.Errorf("%w: bridge returned no transaction hash", ErrNetwork))
		}
		txHash = response.TxHash
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), g.maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", err
	}
	return txHash, nil
}

func mapErrorCode(code, message string) error {
	switch code {
	case codeUserRejected:
		return ErrUserRejected
	case codeInsufficientFunds:
		return ErrInsufficientFunds
	case codeInsufficientOnChain:
		return ErrInsufficientBalanceOnChain
	}
	return fmt.Errorf("%w: %s %s", ErrNetwork, code, message)
}
