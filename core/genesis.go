package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/tos-network/nftvault/access"
	"github.com/tos-network/nftvault/core/rawdb"
	"github.com/tos-network/nftvault/core/state"
	"github.com/tos-network/nftvault/core/types"
	"github.com/tos-network/nftvault/core/vm"
	"github.com/tos-network/nftvault/ledger"
	"github.com/tos-network/nftvault/params"
	"github.com/tos-network/nftvault/registry"
	"github.com/tos-network/nftvault/vault"
)

// GenesisOperation is the operation name of the deployment event.
const GenesisOperation = "DEPLOY"

// GenesisAccount is a native currency allocation.
type GenesisAccount struct {
	Balance *math.HexOrDecimal256 `json:"balance"`
}

// GenesisAlloc specifies the initial native currency balances.
type GenesisAlloc map[common.Address]GenesisAccount

// GenesisTokens pre-mints Count collection tokens to Owner.
type GenesisTokens struct {
	Owner common.Address `json:"owner"`
	Count uint64         `json:"count"`
}

// Genesis describes the deployment: the owner of every component, the
// reward rate, the primary-sale parameters and initial balances.
type Genesis struct {
	Owner              common.Address        `json:"owner"`
	Timestamp          uint64                `json:"timestamp"`
	RewardRate         *math.HexOrDecimal256 `json:"rewardRate,omitempty"`
	RewardPeriod       uint64                `json:"rewardPeriod,omitempty"`
	MintCost           *math.HexOrDecimal256 `json:"mintCost,omitempty"`
	MaxMintAmountPerTx uint64                `json:"maxMintAmountPerTx,omitempty"`
	MaxSupply          uint64                `json:"maxSupply,omitempty"`
	Paused             bool                  `json:"paused"`
	Alloc              GenesisAlloc          `json:"alloc,omitempty"`
	Tokens             []GenesisTokens       `json:"tokens,omitempty"`
}

// DefaultGenesis returns the deployment used by the reference collection:
// 30 tokens at 0.01 ether, at most 5 per mint, 0.001 reward unit per token
// per second, starting paused.
func DefaultGenesis(owner common.Address) *Genesis {
	return &Genesis{
		Owner:              owner,
		RewardRate:         (*math.HexOrDecimal256)(new(big.Int).Set(params.DefaultRewardRate)),
		RewardPeriod:       params.DefaultRewardPeriod,
		MintCost:           (*math.HexOrDecimal256)(new(big.Int).Set(params.DefaultMintCost)),
		MaxMintAmountPerTx: params.DefaultMaxMintAmountPerTx,
		MaxSupply:          params.DefaultMaxSupply,
		Paused:             true,
	}
}

func bigOr(v *math.HexOrDecimal256, def *big.Int) *big.Int {
	if v == nil {
		return new(big.Int).Set(def)
	}
	return (*big.Int)(v)
}

func uint64Or(v, def uint64) uint64 {
	if v == 0 {
		return def
	}
	return v
}

// ToState writes the deployment into statedb. It mirrors the deployment
// script: collection, reward token, vault, then the vault is made a
// controller of the reward token by the owner.
func (g *Genesis) ToState(statedb *state.StateDB) error {
	pause := access.Active
	if g.Paused {
		pause = access.Paused
	}
	err := access.Init(statedb, access.Config{
		Owner:              g.Owner,
		State:              pause,
		Cost:               bigOr(g.MintCost, params.DefaultMintCost),
		MaxMintAmountPerTx: uint64Or(g.MaxMintAmountPerTx, params.DefaultMaxMintAmountPerTx),
		MaxSupply:          uint64Or(g.MaxSupply, params.DefaultMaxSupply),
	})
	if err != nil {
		return err
	}
	if err := ledger.Init(statedb, g.Owner); err != nil {
		return err
	}
	rate, overflow := uint256.FromBig(bigOr(g.RewardRate, params.DefaultRewardRate))
	if overflow || bigOr(g.RewardRate, params.DefaultRewardRate).Sign() < 0 {
		return fmt.Errorf("%w: genesis: invalid reward rate", vm.ErrValidation)
	}
	if err := vault.Init(statedb, rate, uint64Or(g.RewardPeriod, params.DefaultRewardPeriod)); err != nil {
		return err
	}
	ownerCtx := &vm.Context{From: g.Owner, Time: g.Timestamp, StateDB: statedb}
	if err := ledger.SetController(ownerCtx, params.VaultAddress, true); err != nil {
		return err
	}
	for addr, account := range g.Alloc {
		if account.Balance == nil {
			continue
		}
		bal := (*big.Int)(account.Balance)
		if bal.Sign() < 0 {
			return fmt.Errorf("%w: genesis: negative balance for %s", vm.ErrValidation, addr)
		}
		statedb.AddBalance(addr, bal)
	}
	for _, t := range g.Tokens {
		if _, err := registry.Issue(statedb, t.Owner, t.Count); err != nil {
			return fmt.Errorf("genesis tokens for %s: %w", t.Owner, err)
		}
	}
	statedb.AddEvent(&types.Event{Actor: g.Owner, Operation: GenesisOperation, Timestamp: g.Timestamp})
	statedb.SetTimestamp(g.Timestamp)
	return nil
}

// Commit writes the genesis state and marker into db.
func (g *Genesis) Commit(db ethdb.KeyValueStore) error {
	blob, err := json.Marshal(g)
	if err != nil {
		return err
	}
	statedb := state.New(state.NewDatabase(db))
	if err := g.ToState(statedb); err != nil {
		return err
	}
	_, err = statedb.CommitWith(func(w ethdb.KeyValueWriter) {
		rawdb.WriteGenesis(w, blob)
	})
	return err
}

// SetupGenesis writes genesis into an empty database. If the database is
// already initialised, genesis must either be nil or match the stored one.
// The effective genesis is returned.
func SetupGenesis(db ethdb.KeyValueStore, genesis *Genesis) (*Genesis, error) {
	stored := rawdb.ReadGenesis(db)
	if len(stored) == 0 {
		if genesis == nil {
			return nil, ErrNoGenesis
		}
		if rawdb.ReadEventCount(db) > 0 {
			return nil, ErrUnmarkedState
		}
		log.Info("Writing genesis state", "owner", genesis.Owner, "paused", genesis.Paused)
		if err := genesis.Commit(db); err != nil {
			return nil, err
		}
		return genesis, nil
	}
	var have Genesis
	if err := json.Unmarshal(stored, &have); err != nil {
		return nil, fmt.Errorf("corrupt stored genesis: %v", err)
	}
	if genesis != nil {
		want, err := json.Marshal(genesis)
		if err != nil {
			return nil, err
		}
		if !bytes.Equal(want, stored) {
			return &have, ErrGenesisMismatch
		}
	}
	return &have, nil
}
