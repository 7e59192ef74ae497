package ledger

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/tos-network/nftvault/core/vm"
	"github.com/tos-network/nftvault/params"
)

// controllerSlot hashes ("ledger" || 0x00 || field || 0x00 || addr).
func controllerSlot(addr common.Address, field string) common.Hash {
	return vm.Slot([]byte("ledger"), []byte(field), addr.Bytes())
}

// controllerCountSlot stores the number of ever-enabled controllers.
var controllerCountSlot = vm.Slot([]byte("ledger"), []byte("controllerCount"))

// controllerListSlot returns the slot of the i-th ever-enabled controller.
// The list is append-only; disabled controllers stay listed with the
// enabled flag cleared.
func controllerListSlot(i uint64) common.Hash {
	return vm.Slot([]byte("ledger"), []byte("controllerList"), vm.Uint64Key(i))
}

// ControllerSet is the set of accounts permitted to mint. Membership can
// only be changed by the ledger owner.
type ControllerSet struct {
	db vm.StateDB
}

// Controllers returns the controller set stored in db.
func Controllers(db vm.StateDB) *ControllerSet {
	return &ControllerSet{db: db}
}

// Contains reports whether addr may mint.
func (s *ControllerSet) Contains(addr common.Address) bool {
	return vm.ReadBool(s.db, params.LedgerAddress, controllerSlot(addr, "enabled"))
}

// Authorize fails with ErrNotController unless caller is a member.
func (s *ControllerSet) Authorize(caller common.Address) error {
	if !s.Contains(caller) {
		return ErrNotController
	}
	return nil
}

// Add enables addr as a controller on behalf of caller.
func (s *ControllerSet) Add(caller, addr common.Address) error {
	if caller != Owner(s.db) {
		return ErrNotOwner
	}
	if addr == (common.Address{}) {
		return ErrZeroAddress
	}
	if !vm.ReadBool(s.db, params.LedgerAddress, controllerSlot(addr, "registered")) {
		vm.WriteBool(s.db, params.LedgerAddress, controllerSlot(addr, "registered"), true)
		n := vm.ReadUint64(s.db, params.LedgerAddress, controllerCountSlot)
		vm.WriteAddress(s.db, params.LedgerAddress, controllerListSlot(n), addr)
		vm.WriteUint64(s.db, params.LedgerAddress, controllerCountSlot, n+1)
	}
	vm.WriteBool(s.db, params.LedgerAddress, controllerSlot(addr, "enabled"), true)
	return nil
}

// Remove disables addr on behalf of caller. Removing a non-member is a no-op.
func (s *ControllerSet) Remove(caller, addr common.Address) error {
	if caller != Owner(s.db) {
		return ErrNotOwner
	}
	vm.WriteBool(s.db, params.LedgerAddress, controllerSlot(addr, "enabled"), false)
	return nil
}

// Members returns the enabled controllers in the order they were first added.
func (s *ControllerSet) Members() []common.Address {
	n := vm.ReadUint64(s.db, params.LedgerAddress, controllerCountSlot)
	members := make([]common.Address, 0, n)
	for i := uint64(0); i < n; i++ {
		addr := vm.ReadAddress(s.db, params.LedgerAddress, controllerListSlot(i))
		if s.Contains(addr) {
			members = append(members, addr)
		}
	}
	return members
}
