package access

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/tos-network/nftvault/core/vm"
	"github.com/tos-network/nftvault/params"
)

// Pause sets the pause state. Setting the current state again is a no-op.
func Pause(ctx *vm.Context, s PauseState) error {
	if err := RequireOwner(ctx); err != nil {
		return err
	}
	if s != Paused && s != Active {
		return ErrInvalidPauseState
	}
	if State(ctx.StateDB) == s {
		return nil
	}
	writeState(ctx.StateDB, s)
	log.Info("Collection pause state changed", "state", s)
	return nil
}

// Withdraw moves the whole contract balance to the owner and returns the
// amount moved.
func Withdraw(ctx *vm.Context) (*big.Int, error) {
	if err := RequireOwner(ctx); err != nil {
		return nil, err
	}
	amount := Balance(ctx.StateDB)
	if amount.Sign() == 0 {
		return nil, ErrNothingToWithdraw
	}
	ctx.StateDB.SubBalance(params.CollectionAddress, amount)
	ctx.StateDB.AddBalance(ctx.From, amount)
	return amount, nil
}

// SetCost updates the primary-sale price per token.
func SetCost(ctx *vm.Context, cost *big.Int) error {
	if err := RequireOwner(ctx); err != nil {
		return err
	}
	if err := validateCost(cost); err != nil {
		return err
	}
	vm.WriteBig(ctx.StateDB, params.CollectionAddress, costSlot, cost)
	return nil
}

// SetMaxMintAmountPerTx updates the primary-sale cap per call.
func SetMaxMintAmountPerTx(ctx *vm.Context, n int64) error {
	if err := RequireOwner(ctx); err != nil {
		return err
	}
	if n < 1 {
		return ErrInvalidMaxMint
	}
	vm.WriteUint64(ctx.StateDB, params.CollectionAddress, maxMintSlot, uint64(n))
	return nil
}

// TransferOwnership hands the owner role to newOwner.
func TransferOwnership(ctx *vm.Context, newOwner common.Address) error {
	if err := RequireOwner(ctx); err != nil {
		return err
	}
	if newOwner == (common.Address{}) {
		return ErrZeroOwner
	}
	vm.WriteAddress(ctx.StateDB, params.CollectionAddress, ownerSlot, newOwner)
	log.Info("Collection ownership transferred", "from", ctx.From, "to", newOwner)
	return nil
}
