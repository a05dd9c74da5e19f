package model

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	wei := new(big.Int)
	wei.SetString("700000000000000000", 10)
	assert.Equal(t, "0.7", FormatAmount(wei))

	wei.SetString("1000000000000000000", 10)
	assert.Equal(t, "1", FormatAmount(wei))

	assert.Equal(t, "0", FormatAmount(big.NewInt(0)))
	assert.Equal(t, "0", FormatAmount(nil))
	assert.Equal(t, "0.000000000000000001", FormatAmount(big.NewInt(1)))
}

func TestParseAmount(t *testing.T) {
	wei, err := ParseAmount("0.7")
	require.NoError(t, err)
	assert.Equal(t, "700000000000000000", wei.String())

	wei, err = ParseAmount("2")
	require.NoError(t, err)
	assert.Equal(t, "2000000000000000000", wei.String())

	wei, err = ParseAmount("0")
	require.NoError(t, err)
	assert.Equal(t, 0, wei.Sign())
}

func TestParseAmount_Invalid(t *testing.T) {
	_, err := ParseAmount("-1")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ParseAmount("abc")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	// 19 fractional digits is below one wei
	_, err = ParseAmount("0.0000000000000000001")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestParseFormatRoundTrip(t *testing.T) {
	original := "12345678901234567890"
	wei := new(big.Int)
	wei.SetString(original, 10)

	parsed, err := ParseAmount(FormatAmount(wei))
	require.NoError(t, err)
	assert.Equal(t, original, parsed.String())
}
