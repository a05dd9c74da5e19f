package model

import "math/big"

// VaultType identifies one of the fixed vault kinds offered by the platform.
// The set is closed; values outside it are rejected at construction time and
// skipped (with a warning) during replay.
type VaultType int

const (
	VaultMicroSavings VaultType = iota
	VaultPensionNest
	VaultEmergency
)

// Valid reports whether v is a member of the known vault set.
func (v VaultType) Valid() bool {
	return v >= VaultMicroSavings && v <= VaultEmergency
}

func (v VaultType) String() string {
	switch v {
	case VaultMicroSavings:
		return "micro-savings"
	case VaultPensionNest:
		return "pension-nest"
	case VaultEmergency:
		return "emergency-vault"
	}
	return "unknown"
}

// VaultInfo carries the static catalogue entry for a vault kind. Yield rates
// are expressed in basis points of APY; deposits in wei.
type VaultInfo struct {
	Type         VaultType `json:"vault_type"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	MinDeposit   *big.Int  `json:"min_deposit"`
	YieldRateBps int64     `json:"yield_rate_bps"`
}

// Vaults returns the catalogue of all known vault kinds, in VaultType order.
func Vaults() []VaultInfo {
	return []VaultInfo{
		{
			Type:         VaultMicroSavings,
			Name:         "Micro-Savings Vault",
			Description:  "Save tiny amounts daily or weekly with automatic yield deployment",
			MinDeposit:   big.NewInt(1e15), // 0.001
			YieldRateBps: 400,
		},
		{
			Type:         VaultPensionNest,
			Name:         "Pension Nest",
			Description:  "Long-term retirement savings with time-locked withdrawals",
			MinDeposit:   big.NewInt(1e16), // 0.01
			YieldRateBps: 700,
		},
		{
			Type:         VaultEmergency,
			Name:         "Emergency Vault",
			Description:  "Liquid savings with instant withdrawal and small incentives",
			MinDeposit:   big.NewInt(5e15), // 0.005
			YieldRateBps: 225,
		},
	}
}

// AllVaultTypes returns every member of the closed vault set, in order.
func AllVaultTypes() []VaultType {
	return []VaultType{VaultMicroSavings, VaultPensionNest, VaultEmergency}
}
