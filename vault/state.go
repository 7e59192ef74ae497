package vault

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/tos-network/nftvault/core/vm"
	"github.com/tos-network/nftvault/params"
)

// recordSlot hashes ("vault" || 0x00 || field || 0x00 || id).
func recordSlot(id uint64, field string) common.Hash {
	return vm.Slot([]byte("vault"), []byte(field), vm.Uint64Key(id))
}

var (
	lockSlot        = vm.Slot([]byte("vault"), []byte("lock"))
	totalStakedSlot = vm.Slot([]byte("vault"), []byte("totalStaked"))
	rateSlot        = vm.Slot([]byte("vault"), []byte("rate"))
	periodSlot      = vm.Slot([]byte("vault"), []byte("period"))
)

// Init records the accrual rate: every staked token earns rate smallest
// reward units per period seconds.
func Init(db vm.StateDB, rate *uint256.Int, period uint64) error {
	if period < 1 {
		return ErrInvalidPeriod
	}
	vm.WriteUint256(db, params.VaultAddress, rateSlot, rate)
	vm.WriteUint64(db, params.VaultAddress, periodSlot, period)
	return nil
}

// Rate returns the accrual rate numerator and period.
func Rate(db vm.StateDB) (*uint256.Int, uint64) {
	return vm.ReadUint256(db, params.VaultAddress, rateSlot),
		vm.ReadUint64(db, params.VaultAddress, periodSlot)
}

// Record returns the stake record of id.
func Record(db vm.StateDB, id uint64) (StakeRecord, error) {
	owner := vm.ReadAddress(db, params.VaultAddress, recordSlot(id, "owner"))
	if owner == (common.Address{}) {
		return StakeRecord{}, ErrNotStaked
	}
	return StakeRecord{
		TokenID:  id,
		Owner:    owner,
		StakedAt: vm.ReadUint64(db, params.VaultAddress, recordSlot(id, "stakedAt")),
	}, nil
}

func isStaked(db vm.StateDB, id uint64) bool {
	_, err := Record(db, id)
	return err == nil
}

func writeRecord(db vm.StateDB, rec StakeRecord) {
	vm.WriteAddress(db, params.VaultAddress, recordSlot(rec.TokenID, "owner"), rec.Owner)
	vm.WriteUint64(db, params.VaultAddress, recordSlot(rec.TokenID, "stakedAt"), rec.StakedAt)
}

func writeStakedAt(db vm.StateDB, id uint64, ts uint64) {
	vm.WriteUint64(db, params.VaultAddress, recordSlot(id, "stakedAt"), ts)
}

func deleteRecord(db vm.StateDB, id uint64) {
	db.SetState(params.VaultAddress, recordSlot(id, "owner"), common.Hash{})
	db.SetState(params.VaultAddress, recordSlot(id, "stakedAt"), common.Hash{})
}

// TotalStaked returns the number of tokens currently in custody.
func TotalStaked(db vm.StateDB) uint64 {
	return vm.ReadUint64(db, params.VaultAddress, totalStakedSlot)
}

func writeTotalStaked(db vm.StateDB, n uint64) {
	vm.WriteUint64(db, params.VaultAddress, totalStakedSlot, n)
}

// enter takes the vault lock. The lock lives in state, so reverting a failed
// operation releases it as well.
func enter(db vm.StateDB) error {
	if vm.ReadBool(db, params.VaultAddress, lockSlot) {
		return ErrReentrant
	}
	vm.WriteBool(db, params.VaultAddress, lockSlot, true)
	return nil
}

func leave(db vm.StateDB) {
	vm.WriteBool(db, params.VaultAddress, lockSlot, false)
}
