package registry

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tos-network/nftvault/access"
	"github.com/tos-network/nftvault/core/vm"
	"github.com/tos-network/nftvault/params"
)

// Mint sells amount new tokens to the caller. The collection must be
// active, amount must lie within the per-call cap, and unless the caller is
// the owner the attached value must cover cost * amount. The attached value
// is credited to the collection balance.
func Mint(ctx *vm.Context, amount uint64) ([]uint64, error) {
	db := ctx.StateDB
	if err := access.RequireActive(db); err != nil {
		return nil, err
	}
	if amount < 1 || amount > access.MaxMintAmountPerTx(db) {
		return nil, ErrInvalidMintAmount
	}
	if err := checkSupply(db, amount); err != nil {
		return nil, err
	}
	value := ctx.CallValue()
	if ctx.From != access.Owner(db) {
		price := new(big.Int).Mul(access.Cost(db), new(big.Int).SetUint64(amount))
		if value.Cmp(price) < 0 {
			return nil, ErrInsufficientValue
		}
	}
	if value.Sign() > 0 {
		if db.GetBalance(ctx.From).Cmp(value) < 0 {
			return nil, ErrInsufficientFunds
		}
		db.SubBalance(ctx.From, value)
		db.AddBalance(params.CollectionAddress, value)
	}
	return issue(db, ctx.From, amount), nil
}

// Issue mints n tokens to to without payment or pause checks. It is used
// to pre-mint tokens at genesis.
func Issue(db vm.StateDB, to common.Address, n uint64) ([]uint64, error) {
	if to == (common.Address{}) {
		return nil, ErrZeroAddress
	}
	if to == params.VaultAddress {
		return nil, ErrVaultCustody
	}
	if n == 0 {
		return nil, ErrInvalidMintAmount
	}
	if err := checkSupply(db, n); err != nil {
		return nil, err
	}
	return issue(db, to, n), nil
}

func checkSupply(db vm.StateDB, n uint64) error {
	max, minted := access.MaxSupply(db), TotalMinted(db)
	if minted >= max || n > max-minted {
		return ErrMaxSupplyExceeded
	}
	return nil
}

func issue(db vm.StateDB, to common.Address, n uint64) []uint64 {
	minted := TotalMinted(db)
	ids := make([]uint64, 0, n)
	for i := uint64(0); i < n; i++ {
		id := params.FirstTokenID + minted + i
		writeOwner(db, id, to)
		ids = append(ids, id)
	}
	writeBalance(db, to, BalanceOf(db, to)+n)
	vm.WriteUint64(db, params.CollectionAddress, mintedSlot, minted+n)
	return ids
}
