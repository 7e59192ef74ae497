package vaultapi

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/tos-network/nftvault/core/vm"
	"github.com/tos-network/nftvault/params"
	"github.com/tos-network/nftvault/vault"
)

// VaultAPI implements the vault_* RPC namespace.
type VaultAPI struct {
	b Backend
}

// NewVaultAPI creates a VaultAPI backed by b.
func NewVaultAPI(b Backend) *VaultAPI {
	return &VaultAPI{b: b}
}

// RateResult is the accrual rate: Rate smallest units per token per Period
// seconds.
type RateResult struct {
	Rate   *hexutil.Big   `json:"rate"`
	Period hexutil.Uint64 `json:"period"`
}

// Record returns the stake record of a token.
func (api *VaultAPI) Record(_ context.Context, id uint64) (*vault.StakeRecord, error) {
	var rec vault.StakeRecord
	err := api.b.View(func(db vm.StateDB, _ uint64) error {
		var err error
		rec, err = vault.Record(db, id)
		return err
	})
	if err != nil {
		return nil, toAPIError(err)
	}
	return &rec, nil
}

// Earned returns the reward the given staked tokens would pay out now.
func (api *VaultAPI) Earned(_ context.Context, ids []uint64) (*hexutil.Big, error) {
	if len(ids) > params.MaxTokensPerCall {
		return nil, invalidParams("too many token ids")
	}
	var out *hexutil.Big
	err := api.b.View(func(db vm.StateDB, now uint64) error {
		e, err := vault.Earned(db, ids, now)
		if err != nil {
			return err
		}
		out = (*hexutil.Big)(e.ToBig())
		return nil
	})
	return out, toAPIError(err)
}

// TokensOfOwner returns the ids staked by owner.
func (api *VaultAPI) TokensOfOwner(_ context.Context, owner common.Address) ([]uint64, error) {
	ids := []uint64{}
	err := api.b.View(func(db vm.StateDB, _ uint64) error {
		ids = append(ids, vault.TokensOfOwner(db, owner)...)
		return nil
	})
	return ids, toAPIError(err)
}

// TotalStaked returns the number of tokens in custody.
func (api *VaultAPI) TotalStaked(_ context.Context) (hexutil.Uint64, error) {
	var n uint64
	err := api.b.View(func(db vm.StateDB, _ uint64) error {
		n = vault.TotalStaked(db)
		return nil
	})
	return hexutil.Uint64(n), toAPIError(err)
}

// Rate returns the accrual rate.
func (api *VaultAPI) Rate(_ context.Context) (*RateResult, error) {
	var res RateResult
	err := api.b.View(func(db vm.StateDB, _ uint64) error {
		rate, period := vault.Rate(db)
		res = RateResult{Rate: (*hexutil.Big)(rate.ToBig()), Period: hexutil.Uint64(period)}
		return nil
	})
	if err != nil {
		return nil, toAPIError(err)
	}
	return &res, nil
}
