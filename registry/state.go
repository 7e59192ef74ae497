package registry

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/tos-network/nftvault/core/vm"
	"github.com/tos-network/nftvault/params"
)

func tokenSlot(id uint64, field string) common.Hash {
	return vm.Slot([]byte("registry"), []byte(field), vm.Uint64Key(id))
}

func balanceSlot(owner common.Address) common.Hash {
	return vm.Slot([]byte("registry"), []byte("balance"), owner.Bytes())
}

func operatorSlot(owner, operator common.Address) common.Hash {
	return vm.Slot([]byte("registry"), []byte("operator"), owner.Bytes(), operator.Bytes())
}

var mintedSlot = vm.Slot([]byte("registry"), []byte("minted"))

// OwnerOf returns the current owner of id.
func OwnerOf(db vm.StateDB, id uint64) (common.Address, error) {
	owner := vm.ReadAddress(db, params.CollectionAddress, tokenSlot(id, "owner"))
	if owner == (common.Address{}) {
		return common.Address{}, ErrTokenNotFound
	}
	return owner, nil
}

// Exists reports whether id has been minted.
func Exists(db vm.StateDB, id uint64) bool {
	_, err := OwnerOf(db, id)
	return err == nil
}

// BalanceOf returns the number of tokens held by owner.
func BalanceOf(db vm.StateDB, owner common.Address) uint64 {
	return vm.ReadUint64(db, params.CollectionAddress, balanceSlot(owner))
}

// GetApproved returns the single-token approval of id, if any.
func GetApproved(db vm.StateDB, id uint64) common.Address {
	return vm.ReadAddress(db, params.CollectionAddress, tokenSlot(id, "approval"))
}

// IsApprovedForAll reports whether operator may move every token of owner.
func IsApprovedForAll(db vm.StateDB, owner, operator common.Address) bool {
	return vm.ReadBool(db, params.CollectionAddress, operatorSlot(owner, operator))
}

// TotalMinted returns the number of tokens issued so far. Ids run from
// params.FirstTokenID to TotalMinted inclusive.
func TotalMinted(db vm.StateDB) uint64 {
	return vm.ReadUint64(db, params.CollectionAddress, mintedSlot)
}

// TokensOfOwner returns the ids held by owner in ascending order.
func TokensOfOwner(db vm.StateDB, owner common.Address) []uint64 {
	var (
		n   = BalanceOf(db, owner)
		ids = make([]uint64, 0, n)
	)
	for id := params.FirstTokenID; id < params.FirstTokenID+TotalMinted(db) && uint64(len(ids)) < n; id++ {
		if vm.ReadAddress(db, params.CollectionAddress, tokenSlot(id, "owner")) == owner {
			ids = append(ids, id)
		}
	}
	return ids
}

func writeOwner(db vm.StateDB, id uint64, owner common.Address) {
	vm.WriteAddress(db, params.CollectionAddress, tokenSlot(id, "owner"), owner)
}

func writeApproval(db vm.StateDB, id uint64, to common.Address) {
	vm.WriteAddress(db, params.CollectionAddress, tokenSlot(id, "approval"), to)
}

func writeBalance(db vm.StateDB, owner common.Address, n uint64) {
	vm.WriteUint64(db, params.CollectionAddress, balanceSlot(owner), n)
}
