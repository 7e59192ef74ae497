package vaultapi

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/tos-network/nftvault/core/vm"
	"github.com/tos-network/nftvault/registry"
)

// RegistryAPI implements the registry_* RPC namespace.
type RegistryAPI struct {
	b Backend
}

// NewRegistryAPI creates a RegistryAPI backed by b.
func NewRegistryAPI(b Backend) *RegistryAPI {
	return &RegistryAPI{b: b}
}

// OwnerOf returns the owner of a token.
func (api *RegistryAPI) OwnerOf(_ context.Context, id uint64) (common.Address, error) {
	var owner common.Address
	err := api.b.View(func(db vm.StateDB, _ uint64) error {
		var err error
		owner, err = registry.OwnerOf(db, id)
		return err
	})
	return owner, toAPIError(err)
}

// BalanceOf returns the number of tokens held by owner.
func (api *RegistryAPI) BalanceOf(_ context.Context, owner common.Address) (hexutil.Uint64, error) {
	var n uint64
	err := api.b.View(func(db vm.StateDB, _ uint64) error {
		n = registry.BalanceOf(db, owner)
		return nil
	})
	return hexutil.Uint64(n), toAPIError(err)
}

// TokensOfOwner returns the ids held by owner outside the vault.
func (api *RegistryAPI) TokensOfOwner(_ context.Context, owner common.Address) ([]uint64, error) {
	ids := []uint64{}
	err := api.b.View(func(db vm.StateDB, _ uint64) error {
		ids = append(ids, registry.TokensOfOwner(db, owner)...)
		return nil
	})
	return ids, toAPIError(err)
}

// TotalMinted returns the number of tokens issued.
func (api *RegistryAPI) TotalMinted(_ context.Context) (hexutil.Uint64, error) {
	var n uint64
	err := api.b.View(func(db vm.StateDB, _ uint64) error {
		n = registry.TotalMinted(db)
		return nil
	})
	return hexutil.Uint64(n), toAPIError(err)
}

// IsApprovedForAll reports whether operator may move every token of owner.
func (api *RegistryAPI) IsApprovedForAll(_ context.Context, owner, operator common.Address) (bool, error) {
	var ok bool
	err := api.b.View(func(db vm.StateDB, _ uint64) error {
		ok = registry.IsApprovedForAll(db, owner, operator)
		return nil
	})
	return ok, toAPIError(err)
}

// GetApproved returns the single-token approval of id.
func (api *RegistryAPI) GetApproved(_ context.Context, id uint64) (common.Address, error) {
	var to common.Address
	err := api.b.View(func(db vm.StateDB, _ uint64) error {
		if _, err := registry.OwnerOf(db, id); err != nil {
			return err
		}
		to = registry.GetApproved(db, id)
		return nil
	})
	return to, toAPIError(err)
}
