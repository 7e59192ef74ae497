// Package vaultapi provides the vault_*, ledger_*, admin_*, registry_* and
// node_* RPC namespaces served by vaultd.
package vaultapi

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/tos-network/nftvault/core/types"
	"github.com/tos-network/nftvault/core/vm"
)

// Backend is the execution environment the APIs run against. It is
// implemented by core.Sequencer.
type Backend interface {
	View(fn func(db vm.StateDB, now uint64) error) error
	Nonce(addr common.Address) uint64
	ApplyTransaction(tx *types.SignedAction) (*types.Receipt, error)
	Events(from uint64, limit int) []*types.Event
	EventCount() uint64
	SubscribeEvents(ch chan<- []*types.Event) event.Subscription
}

// maxEventsPerPage bounds node_getEvents.
const maxEventsPerPage = 1000

// APIs returns every RPC service offered by vaultd.
func APIs(b Backend) []rpc.API {
	return []rpc.API{
		{Namespace: "vault", Service: NewVaultAPI(b)},
		{Namespace: "ledger", Service: NewLedgerAPI(b)},
		{Namespace: "admin", Service: NewAdminAPI(b)},
		{Namespace: "registry", Service: NewRegistryAPI(b)},
		{Namespace: "node", Service: NewNodeAPI(b)},
	}
}
