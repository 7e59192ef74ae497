// Package vm provides the execution environment shared by the system
// components: the state interface they operate on, the call context of a
// boundary operation and the error taxonomy every operation reports.
package vm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tos-network/nftvault/core/types"
)

// StateDB is the key-value state every component reads and mutates. Storage
// is addressed by (component address, 32-byte slot); native currency
// balances and nonces are tracked per address.
type StateDB interface {
	GetState(addr common.Address, slot common.Hash) common.Hash
	SetState(addr common.Address, slot common.Hash, value common.Hash)

	GetBalance(addr common.Address) *big.Int
	AddBalance(addr common.Address, amount *big.Int)
	SubBalance(addr common.Address, amount *big.Int)

	GetNonce(addr common.Address) uint64
	SetNonce(addr common.Address, nonce uint64)

	Snapshot() int
	RevertToSnapshot(id int)

	AddEvent(ev *types.Event)
	Events() []*types.Event
}

// TokenReceiver is implemented by contract accounts that want to be notified
// when a collection token is transferred to them. A non-nil error aborts the
// operation that performed the transfer.
type TokenReceiver interface {
	OnTokenReceived(ctx *Context, operator, from common.Address, tokenID uint64) error
}
