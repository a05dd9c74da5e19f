package model

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// WeiDecimals is the scaling between the smallest on-chain unit and the
// display unit. Core arithmetic always happens in the smallest unit; these
// helpers exist only for presentation surfaces.
const WeiDecimals = 18

// FormatAmount renders a smallest-unit amount as a display-unit decimal
// string, e.g. 700000000000000000 -> "0.7".
func FormatAmount(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, -WeiDecimals).String()
}

// ParseAmount converts a display-unit decimal string into a smallest-unit
// integer. Fails on negative values and on precision below one wei.
func ParseAmount(value string) (*big.Int, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: amount must be non-negative", ErrInvalidAmount)
	}
	scaled := d.Shift(WeiDecimals)
	if !scaled.IsInteger() {
		return nil, fmt.Errorf("%w: precision below the smallest unit", ErrInvalidAmount)
	}
	return scaled.BigInt(), nil
}
