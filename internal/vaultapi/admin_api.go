package vaultapi

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/tos-network/nftvault/access"
	"github.com/tos-network/nftvault/core/vm"
	"github.com/tos-network/nftvault/ledger"
	"github.com/tos-network/nftvault/registry"
	"github.com/tos-network/nftvault/vault"
)

// AdminAPI implements the admin_* RPC namespace: the pause flag, the
// admin parameters and the owner dashboard.
type AdminAPI struct {
	b Backend
}

// NewAdminAPI creates an AdminAPI backed by b.
func NewAdminAPI(b Backend) *AdminAPI {
	return &AdminAPI{b: b}
}

// Dashboard is everything the owner dashboard displays.
type Dashboard struct {
	Owner              common.Address `json:"owner"`
	Paused             hexutil.Uint64 `json:"paused"` // 1 paused, 2 active
	State              string         `json:"state"`
	Cost               *hexutil.Big   `json:"cost"`
	MaxMintAmountPerTx hexutil.Uint64 `json:"maxMintAmountPerTx"`
	MaxSupply          hexutil.Uint64 `json:"maxSupply"`
	TotalMinted        hexutil.Uint64 `json:"totalMinted"`
	Balance            *hexutil.Big   `json:"balance"`
	TotalStaked        hexutil.Uint64 `json:"totalStaked"`
	RewardSupply       *hexutil.Big   `json:"rewardSupply"`
	Time               hexutil.Uint64 `json:"time"`
}

// Dashboard returns a consistent view of the collection state.
func (api *AdminAPI) Dashboard(_ context.Context) (*Dashboard, error) {
	var d Dashboard
	err := api.b.View(func(db vm.StateDB, now uint64) error {
		s := access.State(db)
		d = Dashboard{
			Owner:              access.Owner(db),
			Paused:             hexutil.Uint64(s),
			State:              s.String(),
			Cost:               (*hexutil.Big)(access.Cost(db)),
			MaxMintAmountPerTx: hexutil.Uint64(access.MaxMintAmountPerTx(db)),
			MaxSupply:          hexutil.Uint64(access.MaxSupply(db)),
			TotalMinted:        hexutil.Uint64(registry.TotalMinted(db)),
			Balance:            (*hexutil.Big)(access.Balance(db)),
			TotalStaked:        hexutil.Uint64(vault.TotalStaked(db)),
			RewardSupply:       (*hexutil.Big)(ledger.TotalSupply(db).ToBig()),
			Time:               hexutil.Uint64(now),
		}
		return nil
	})
	if err != nil {
		return nil, toAPIError(err)
	}
	return &d, nil
}

// Paused returns the pause state code: 1 when paused, 2 when active.
func (api *AdminAPI) Paused(_ context.Context) (hexutil.Uint64, error) {
	var s access.PauseState
	err := api.b.View(func(db vm.StateDB, _ uint64) error {
		s = access.State(db)
		return nil
	})
	return hexutil.Uint64(s), toAPIError(err)
}

// Cost returns the primary-sale price per token.
func (api *AdminAPI) Cost(_ context.Context) (*hexutil.Big, error) {
	var cost *hexutil.Big
	err := api.b.View(func(db vm.StateDB, _ uint64) error {
		cost = (*hexutil.Big)(access.Cost(db))
		return nil
	})
	return cost, toAPIError(err)
}

// MaxMintAmountPerTx returns the primary-sale cap per call.
func (api *AdminAPI) MaxMintAmountPerTx(_ context.Context) (hexutil.Uint64, error) {
	var n uint64
	err := api.b.View(func(db vm.StateDB, _ uint64) error {
		n = access.MaxMintAmountPerTx(db)
		return nil
	})
	return hexutil.Uint64(n), toAPIError(err)
}

// Balance returns the native currency held by the collection.
func (api *AdminAPI) Balance(_ context.Context) (*hexutil.Big, error) {
	var bal *hexutil.Big
	err := api.b.View(func(db vm.StateDB, _ uint64) error {
		bal = (*hexutil.Big)(access.Balance(db))
		return nil
	})
	return bal, toAPIError(err)
}

// Owner returns the collection owner.
func (api *AdminAPI) Owner(_ context.Context) (common.Address, error) {
	var owner common.Address
	err := api.b.View(func(db vm.StateDB, _ uint64) error {
		owner = access.Owner(db)
		return nil
	})
	return owner, toAPIError(err)
}
