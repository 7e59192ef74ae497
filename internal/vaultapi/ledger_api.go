package vaultapi

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/tos-network/nftvault/core/vm"
	"github.com/tos-network/nftvault/ledger"
)

// LedgerAPI implements the ledger_* RPC namespace.
type LedgerAPI struct {
	b Backend
}

// NewLedgerAPI creates a LedgerAPI backed by b.
func NewLedgerAPI(b Backend) *LedgerAPI {
	return &LedgerAPI{b: b}
}

// TokenInfo is the reward token metadata.
type TokenInfo struct {
	Name        string         `json:"name"`
	Symbol      string         `json:"symbol"`
	Decimals    hexutil.Uint64 `json:"decimals"`
	TotalSupply *hexutil.Big   `json:"totalSupply"`
	Owner       common.Address `json:"owner"`
}

// Info returns the token metadata and supply.
func (api *LedgerAPI) Info(_ context.Context) (*TokenInfo, error) {
	info := &TokenInfo{Name: ledger.Name, Symbol: ledger.Symbol, Decimals: hexutil.Uint64(ledger.Decimals)}
	err := api.b.View(func(db vm.StateDB, _ uint64) error {
		info.TotalSupply = (*hexutil.Big)(ledger.TotalSupply(db).ToBig())
		info.Owner = ledger.Owner(db)
		return nil
	})
	if err != nil {
		return nil, toAPIError(err)
	}
	return info, nil
}

// BalanceOf returns the reward balance of addr.
func (api *LedgerAPI) BalanceOf(_ context.Context, addr common.Address) (*hexutil.Big, error) {
	var bal *hexutil.Big
	err := api.b.View(func(db vm.StateDB, _ uint64) error {
		bal = (*hexutil.Big)(ledger.BalanceOf(db, addr).ToBig())
		return nil
	})
	return bal, toAPIError(err)
}

// TotalSupply returns the reward token supply.
func (api *LedgerAPI) TotalSupply(_ context.Context) (*hexutil.Big, error) {
	var supply *hexutil.Big
	err := api.b.View(func(db vm.StateDB, _ uint64) error {
		supply = (*hexutil.Big)(ledger.TotalSupply(db).ToBig())
		return nil
	})
	return supply, toAPIError(err)
}

// IsController reports whether addr may mint.
func (api *LedgerAPI) IsController(_ context.Context, addr common.Address) (bool, error) {
	var ok bool
	err := api.b.View(func(db vm.StateDB, _ uint64) error {
		ok = ledger.IsController(db, addr)
		return nil
	})
	return ok, toAPIError(err)
}

// Controllers lists the accounts allowed to mint.
func (api *LedgerAPI) Controllers(_ context.Context) ([]common.Address, error) {
	var members []common.Address
	err := api.b.View(func(db vm.StateDB, _ uint64) error {
		members = ledger.Controllers(db).Members()
		return nil
	})
	return members, toAPIError(err)
}
