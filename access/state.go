package access

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tos-network/nftvault/core/vm"
	"github.com/tos-network/nftvault/params"
)

func accessSlot(field string) common.Hash {
	return vm.Slot([]byte("access"), []byte(field))
}

var (
	ownerSlot     = accessSlot("owner")
	pauseSlot     = accessSlot("pause")
	costSlot      = accessSlot("cost")
	maxMintSlot   = accessSlot("maxMintAmountPerTx")
	maxSupplySlot = accessSlot("maxSupply")
)

// Init validates cfg and writes the deployment values.
func Init(db vm.StateDB, cfg Config) error {
	if cfg.Owner == (common.Address{}) {
		return ErrZeroOwner
	}
	if cfg.State != Paused && cfg.State != Active {
		return ErrInvalidPauseState
	}
	cost := cfg.Cost
	if cost == nil {
		cost = new(big.Int)
	}
	if err := validateCost(cost); err != nil {
		return err
	}
	if cfg.MaxMintAmountPerTx < 1 {
		return ErrInvalidMaxMint
	}
	if cfg.MaxSupply < 1 {
		return ErrInvalidMaxSupply
	}
	vm.WriteAddress(db, params.CollectionAddress, ownerSlot, cfg.Owner)
	writeState(db, cfg.State)
	vm.WriteBig(db, params.CollectionAddress, costSlot, cost)
	vm.WriteUint64(db, params.CollectionAddress, maxMintSlot, cfg.MaxMintAmountPerTx)
	vm.WriteUint64(db, params.CollectionAddress, maxSupplySlot, cfg.MaxSupply)
	return nil
}

func validateCost(cost *big.Int) error {
	if cost.Sign() < 0 {
		return ErrNegativeCost
	}
	if cost.BitLen() > 256 {
		return ErrCostTooLarge
	}
	return nil
}

func writeState(db vm.StateDB, s PauseState) {
	var word common.Hash
	word[31] = byte(s)
	db.SetState(params.CollectionAddress, pauseSlot, word)
}

// Owner returns the collection owner.
func Owner(db vm.StateDB) common.Address {
	return vm.ReadAddress(db, params.CollectionAddress, ownerSlot)
}

// State returns the current pause state.
func State(db vm.StateDB) PauseState {
	return PauseState(db.GetState(params.CollectionAddress, pauseSlot)[31])
}

// IsPaused reports whether the gated operations are currently blocked.
// An uninitialised flag counts as paused.
func IsPaused(db vm.StateDB) bool {
	return State(db) != Active
}

// Cost returns the primary-sale price per token in wei.
func Cost(db vm.StateDB) *big.Int {
	return vm.ReadBig(db, params.CollectionAddress, costSlot)
}

// MaxMintAmountPerTx returns the primary-sale cap per call.
func MaxMintAmountPerTx(db vm.StateDB) uint64 {
	return vm.ReadUint64(db, params.CollectionAddress, maxMintSlot)
}

// MaxSupply returns the fixed collection size.
func MaxSupply(db vm.StateDB) uint64 {
	return vm.ReadUint64(db, params.CollectionAddress, maxSupplySlot)
}

// Balance returns the native currency held by the collection contract.
func Balance(db vm.StateDB) *big.Int {
	return db.GetBalance(params.CollectionAddress)
}

// RequireOwner fails with ErrNotOwner unless ctx.From is the owner.
func RequireOwner(ctx *vm.Context) error {
	if ctx.From != Owner(ctx.StateDB) {
		return ErrNotOwner
	}
	return nil
}

// RequireActive fails with ErrPaused unless the collection is active.
func RequireActive(db vm.StateDB) error {
	if IsPaused(db) {
		return ErrPaused
	}
	return nil
}
