package access

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/tos-network/nftvault/core/state"
	"github.com/tos-network/nftvault/core/vm"
	"github.com/tos-network/nftvault/params"
	"github.com/tos-network/nftvault/sysaction"
)

var (
	owner    = common.Address{0x0a}
	stranger = common.Address{0x0b}
	h        = &accessHandler{}
)

// newTestState creates a fresh in-memory StateDB with the default deployment.
func newTestState(t *testing.T) *state.StateDB {
	st := state.New(state.NewDatabase(memorydb.New()))
	err := Init(st, Config{
		Owner:              owner,
		State:              Active,
		Cost:               params.DefaultMintCost,
		MaxMintAmountPerTx: params.DefaultMaxMintAmountPerTx,
		MaxSupply:          params.DefaultMaxSupply,
	})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	return st
}

func newCtx(st *state.StateDB, from common.Address) *vm.Context {
	return &vm.Context{From: from, Time: 100, StateDB: st}
}

func mustAction(t *testing.T, kind sysaction.ActionKind, payload interface{}) *sysaction.SysAction {
	data, err := sysaction.MakeSysAction(kind, payload)
	if err != nil {
		t.Fatal(err)
	}
	sa, err := sysaction.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	return sa
}

func TestInitValidation(t *testing.T) {
	good := Config{Owner: owner, State: Paused, Cost: big.NewInt(1), MaxMintAmountPerTx: 1, MaxSupply: 1}
	tests := []struct {
		mutate func(*Config)
		want   error
	}{
		{func(c *Config) {}, nil},
		{func(c *Config) { c.Owner = common.Address{} }, ErrZeroOwner},
		{func(c *Config) { c.State = 0 }, ErrInvalidPauseState},
		{func(c *Config) { c.Cost = big.NewInt(-1) }, ErrNegativeCost},
		{func(c *Config) { c.MaxMintAmountPerTx = 0 }, ErrInvalidMaxMint},
		{func(c *Config) { c.MaxSupply = 0 }, ErrInvalidMaxSupply},
	}
	for i, tt := range tests {
		cfg := good
		tt.mutate(&cfg)
		st := state.New(state.NewDatabase(memorydb.New()))
		if err := Init(st, cfg); err != tt.want {
			t.Errorf("test %d: have %v want %v", i, err, tt.want)
		}
	}
}

func TestPause(t *testing.T) {
	st := newTestState(t)
	if IsPaused(st) {
		t.Fatal("fresh deployment should be active")
	}
	if err := h.Handle(newCtx(st, stranger), mustAction(t, sysaction.ActionAccessPause, sysaction.PausePayload{State: 1})); err != ErrNotOwner {
		t.Fatalf("stranger pause: want ErrNotOwner, got %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := h.Handle(newCtx(st, owner), mustAction(t, sysaction.ActionAccessPause, sysaction.PausePayload{State: 1})); err != nil {
			t.Fatalf("pause #%d: %v", i, err)
		}
		if !IsPaused(st) || RequireActive(st) != ErrPaused {
			t.Fatalf("pause #%d: contract not paused", i)
		}
	}
	if err := Pause(newCtx(st, owner), PauseState(3)); err != ErrInvalidPauseState {
		t.Fatalf("bad state: want ErrInvalidPauseState, got %v", err)
	}
	if err := Pause(newCtx(st, owner), Active); err != nil {
		t.Fatalf("unpause: %v", err)
	}
	if err := RequireActive(st); err != nil {
		t.Fatalf("unpaused contract rejected: %v", err)
	}
}

func TestWithdraw(t *testing.T) {
	st := newTestState(t)
	if err := h.Handle(newCtx(st, owner), mustAction(t, sysaction.ActionAccessWithdraw, nil)); !errors.Is(err, vm.ErrValidation) {
		t.Fatalf("empty withdraw: want validation error, got %v", err)
	}
	st.AddBalance(params.CollectionAddress, big.NewInt(5e16))
	if _, err := Withdraw(newCtx(st, stranger)); err != ErrNotOwner {
		t.Fatalf("stranger withdraw: want ErrNotOwner, got %v", err)
	}
	amount, err := Withdraw(newCtx(st, owner))
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if amount.Cmp(big.NewInt(5e16)) != 0 {
		t.Fatalf("withdrawn amount: have %v", amount)
	}
	if Balance(st).Sign() != 0 {
		t.Fatalf("contract balance not drained: %v", Balance(st))
	}
	if st.GetBalance(owner).Cmp(big.NewInt(5e16)) != 0 {
		t.Fatalf("owner balance: have %v", st.GetBalance(owner))
	}
	// A second withdraw straight after the drain has nothing to move.
	if _, err := Withdraw(newCtx(st, owner)); err != ErrNothingToWithdraw {
		t.Fatalf("repeated withdraw: want ErrNothingToWithdraw, got %v", err)
	}
	if st.GetBalance(owner).Cmp(big.NewInt(5e16)) != 0 {
		t.Fatalf("owner balance after repeated withdraw: have %v", st.GetBalance(owner))
	}
}

func TestAdminParams(t *testing.T) {
	st := newTestState(t)
	ctx := newCtx(st, owner)

	if err := h.Handle(ctx, mustAction(t, sysaction.ActionAccessSetCost, sysaction.CostPayload{Cost: "-1"})); err != ErrNegativeCost {
		t.Fatalf("negative cost: want ErrNegativeCost, got %v", err)
	}
	if err := h.Handle(ctx, mustAction(t, sysaction.ActionAccessSetCost, sysaction.CostPayload{Cost: "20000000000000000"})); err != nil {
		t.Fatalf("set cost: %v", err)
	}
	if Cost(st).Cmp(big.NewInt(2e16)) != 0 {
		t.Fatalf("cost: have %v", Cost(st))
	}
	if err := SetCost(ctx, new(big.Int)); err != nil {
		t.Fatalf("zero cost rejected: %v", err)
	}

	for _, n := range []int64{0, -3} {
		if err := h.Handle(ctx, mustAction(t, sysaction.ActionAccessSetMaxMint, sysaction.MaxMintPayload{MaxMintAmountPerTx: n})); err != ErrInvalidMaxMint {
			t.Fatalf("cap %d: want ErrInvalidMaxMint, got %v", n, err)
		}
	}
	if err := SetMaxMintAmountPerTx(ctx, 3); err != nil {
		t.Fatalf("set cap: %v", err)
	}
	if MaxMintAmountPerTx(st) != 3 {
		t.Fatalf("cap: have %d", MaxMintAmountPerTx(st))
	}
	if err := SetMaxMintAmountPerTx(newCtx(st, stranger), 4); err != ErrNotOwner {
		t.Fatalf("stranger cap: want ErrNotOwner, got %v", err)
	}
	if MaxSupply(st) != params.DefaultMaxSupply {
		t.Fatalf("max supply: have %d", MaxSupply(st))
	}
}

func TestTransferOwnership(t *testing.T) {
	st := newTestState(t)
	zero := sysaction.OwnershipPayload{NewOwner: common.Address{}.Hex()}
	if err := h.Handle(newCtx(st, owner), mustAction(t, sysaction.ActionAccessTransferOwnership, zero)); err != ErrZeroOwner {
		t.Fatalf("zero owner: want ErrZeroOwner, got %v", err)
	}
	if err := h.Handle(newCtx(st, owner), mustAction(t, sysaction.ActionAccessTransferOwnership, sysaction.OwnershipPayload{NewOwner: stranger.Hex()})); err != nil {
		t.Fatalf("transfer ownership: %v", err)
	}
	if Owner(st) != stranger {
		t.Fatalf("owner: have %x", Owner(st))
	}
	if err := Pause(newCtx(st, owner), Paused); err != ErrNotOwner {
		t.Fatalf("previous owner kept control: %v", err)
	}
}
