package ledger

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/tos-network/nftvault/core/vm"
	"github.com/tos-network/nftvault/params"
)

var (
	ownerSlot       = vm.Slot([]byte("ledger"), []byte("owner"))
	totalSupplySlot = vm.Slot([]byte("ledger"), []byte("totalSupply"))
)

func balanceSlot(addr common.Address) common.Hash {
	return vm.Slot([]byte("ledger"), []byte("balance"), addr.Bytes())
}

// Init records the ledger owner, the only account allowed to change the
// controller set.
func Init(db vm.StateDB, owner common.Address) error {
	if owner == (common.Address{}) {
		return ErrZeroAddress
	}
	vm.WriteAddress(db, params.LedgerAddress, ownerSlot, owner)
	return nil
}

// Owner returns the ledger owner.
func Owner(db vm.StateDB) common.Address {
	return vm.ReadAddress(db, params.LedgerAddress, ownerSlot)
}

// BalanceOf returns the reward balance of addr.
func BalanceOf(db vm.StateDB, addr common.Address) *uint256.Int {
	return vm.ReadUint256(db, params.LedgerAddress, balanceSlot(addr))
}

// TotalSupply returns the sum of all balances.
func TotalSupply(db vm.StateDB) *uint256.Int {
	return vm.ReadUint256(db, params.LedgerAddress, totalSupplySlot)
}

func writeBalance(db vm.StateDB, addr common.Address, v *uint256.Int) {
	vm.WriteUint256(db, params.LedgerAddress, balanceSlot(addr), v)
}

func writeTotalSupply(db vm.StateDB, v *uint256.Int) {
	vm.WriteUint256(db, params.LedgerAddress, totalSupplySlot, v)
}
