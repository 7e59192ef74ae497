// Package registry implements the unique-token collection: ownership,
// ERC-721 style transfer authorization and the primary sale.
package registry

import (
	"fmt"

	"github.com/tos-network/nftvault/core/vm"
)

// Sentinel errors returned by registry operations.
var (
	ErrTokenNotFound      = fmt.Errorf("%w: registry: token does not exist", vm.ErrNotFound)
	ErrWrongOwner         = fmt.Errorf("%w: registry: from is not the token owner", vm.ErrUnauthorized)
	ErrNotApproved        = fmt.Errorf("%w: registry: caller is neither owner nor approved", vm.ErrUnauthorized)
	ErrZeroAddress        = fmt.Errorf("%w: registry: zero address", vm.ErrValidation)
	ErrApproveToOwner     = fmt.Errorf("%w: registry: approval to current owner", vm.ErrValidation)
	ErrApproveToCaller    = fmt.Errorf("%w: registry: approve to caller", vm.ErrValidation)
	ErrInvalidMintAmount  = fmt.Errorf("%w: registry: invalid mint amount", vm.ErrValidation)
	ErrInsufficientValue  = fmt.Errorf("%w: registry: insufficient funds for mint cost", vm.ErrValidation)
	ErrInsufficientFunds  = fmt.Errorf("%w: registry: sender balance below attached value", vm.ErrValidation)
	ErrMaxSupplyExceeded  = fmt.Errorf("%w: registry: max supply exceeded", vm.ErrInvariantViolation)
	ErrTokenAlreadyMinted = fmt.Errorf("%w: registry: token already minted", vm.ErrInvariantViolation)
	ErrVaultCustody       = fmt.Errorf("%w: registry: tokens enter the vault by staking only", vm.ErrValidation)
)
