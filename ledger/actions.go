package ledger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/tos-network/nftvault/core/vm"
)

// IsController reports whether addr is allowed to mint.
func IsController(db vm.StateDB, addr common.Address) bool {
	return Controllers(db).Contains(addr)
}

// SetController enables or disables addr as a minter. Only the ledger owner
// may call it.
func SetController(ctx *vm.Context, addr common.Address, enabled bool) error {
	set := Controllers(ctx.StateDB)
	var err error
	if enabled {
		err = set.Add(ctx.From, addr)
	} else {
		err = set.Remove(ctx.From, addr)
	}
	if err != nil {
		return err
	}
	log.Debug("Ledger controller updated", "controller", addr, "enabled", enabled)
	return nil
}

// Mint creates amount new tokens for to. The caller must be a controller.
func Mint(ctx *vm.Context, to common.Address, amount *uint256.Int) error {
	if err := Controllers(ctx.StateDB).Authorize(ctx.From); err != nil {
		return err
	}
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	supply, overflow := new(uint256.Int).AddOverflow(TotalSupply(ctx.StateDB), amount)
	if overflow {
		return ErrSupplyOverflow
	}
	// Balances are bounded by the supply.
	bal, overflow := new(uint256.Int).AddOverflow(BalanceOf(ctx.StateDB, to), amount)
	if overflow {
		return ErrBalanceOverflow
	}
	writeTotalSupply(ctx.StateDB, supply)
	writeBalance(ctx.StateDB, to, bal)
	return nil
}

// Transfer moves amount from the caller to to.
func Transfer(ctx *vm.Context, to common.Address, amount *uint256.Int) error {
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	from := ctx.From
	fromBal := BalanceOf(ctx.StateDB, from)
	if fromBal.Lt(amount) {
		return ErrInsufficientBalance
	}
	if from == to {
		return nil
	}
	toBal, overflow := new(uint256.Int).AddOverflow(BalanceOf(ctx.StateDB, to), amount)
	if overflow {
		return ErrBalanceOverflow
	}
	writeBalance(ctx.StateDB, from, new(uint256.Int).Sub(fromBal, amount))
	writeBalance(ctx.StateDB, to, toBal)
	return nil
}

// ParseAmount converts an action amount to a ledger amount.
func ParseAmount(v *big.Int) (*uint256.Int, error) {
	if v == nil || v.Sign() < 0 {
		return nil, ErrInvalidAmount
	}
	amount, overflow := uint256.FromBig(v)
	if overflow {
		return nil, ErrInvalidAmount
	}
	return amount, nil
}
