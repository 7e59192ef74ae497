// Package ledger implements the fungible reward token. Balances are 256-bit
// unsigned integers in the smallest unit; new supply is created only by
// members of the controller set.
package ledger

import (
	"fmt"

	"github.com/tos-network/nftvault/core/vm"
	"github.com/tos-network/nftvault/params"
)

// Token metadata.
const (
	Name     = "DacadePunks Token"
	Symbol   = "DPT"
	Decimals = params.RewardDecimals
)

// Sentinel errors returned by ledger operations.
var (
	ErrNotController       = fmt.Errorf("%w: ledger: caller is not a controller", vm.ErrUnauthorized)
	ErrNotOwner            = fmt.Errorf("%w: ledger: caller is not the owner", vm.ErrUnauthorized)
	ErrInsufficientBalance = fmt.Errorf("%w: ledger: transfer amount exceeds balance", vm.ErrInvariantViolation)
	ErrSupplyOverflow      = fmt.Errorf("%w: ledger: total supply overflow", vm.ErrInvariantViolation)
	ErrBalanceOverflow     = fmt.Errorf("%w: ledger: balance overflow", vm.ErrInvariantViolation)
	ErrZeroAddress         = fmt.Errorf("%w: ledger: zero address", vm.ErrValidation)
	ErrInvalidAmount       = fmt.Errorf("%w: ledger: amount must be a non-negative 256-bit integer", vm.ErrValidation)
)
