// Package access implements the owner-controlled pause flag and the admin
// parameters of the collection: mint cost, per-call mint cap and max supply.
// Its state and currency balance live at params.CollectionAddress.
package access

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tos-network/nftvault/core/vm"
)

// PauseState is the collection pause flag. The numeric codes match the
// arguments accepted by pause().
type PauseState uint8

const (
	Paused PauseState = 1
	Active PauseState = 2
)

func (s PauseState) String() string {
	switch s {
	case Paused:
		return "paused"
	case Active:
		return "active"
	}
	return fmt.Sprintf("unknown(%d)", uint8(s))
}

// Config holds the values written at deployment.
type Config struct {
	Owner              common.Address
	State              PauseState
	Cost               *big.Int
	MaxMintAmountPerTx uint64
	MaxSupply          uint64
}

// Sentinel errors returned by access operations.
var (
	ErrNotOwner          = fmt.Errorf("%w: access: caller is not the owner", vm.ErrUnauthorized)
	ErrPaused            = fmt.Errorf("%w: access: contract is paused", vm.ErrInvalidState)
	ErrInvalidPauseState = fmt.Errorf("%w: access: pause state must be 1 (paused) or 2 (active)", vm.ErrValidation)
	ErrNothingToWithdraw = fmt.Errorf("%w: access: contract balance is zero", vm.ErrValidation)
	ErrNegativeCost      = fmt.Errorf("%w: access: cost must not be negative", vm.ErrValidation)
	ErrCostTooLarge      = fmt.Errorf("%w: access: cost exceeds 256 bits", vm.ErrValidation)
	ErrInvalidMaxMint    = fmt.Errorf("%w: access: max mint amount per tx must be at least 1", vm.ErrValidation)
	ErrInvalidMaxSupply  = fmt.Errorf("%w: access: max supply must be at least 1", vm.ErrValidation)
	ErrZeroOwner         = fmt.Errorf("%w: access: new owner is the zero address", vm.ErrValidation)
)
