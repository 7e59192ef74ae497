package vaultapi

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/require"
	"github.com/tos-network/nftvault/core"
	"github.com/tos-network/nftvault/core/state"
	"github.com/tos-network/nftvault/core/types"
	"github.com/tos-network/nftvault/params"
	"github.com/tos-network/nftvault/sysaction"
)

type testNode struct {
	t      *testing.T
	now    int64
	client *rpc.Client
	owner  *ecdsa.PrivateKey
	alice  *ecdsa.PrivateKey
}

func newTestNode(t *testing.T) *testNode {
	n := &testNode{t: t, now: 5000}
	var err error
	n.owner, err = crypto.GenerateKey()
	require.NoError(t, err)
	n.alice, err = crypto.GenerateKey()
	require.NoError(t, err)

	disk := memorydb.New()
	g := core.DefaultGenesis(crypto.PubkeyToAddress(n.owner.PublicKey))
	g.Paused = false
	g.Timestamp = uint64(n.now)
	g.Tokens = []core.GenesisTokens{{Owner: crypto.PubkeyToAddress(n.alice.PublicKey), Count: 3}}
	_, err = core.SetupGenesis(disk, g)
	require.NoError(t, err)
	seq, err := core.NewSequencer(state.NewDatabase(disk), func() time.Time { return time.Unix(n.now, 0) })
	require.NoError(t, err)

	srv := rpc.NewServer()
	for _, api := range APIs(seq) {
		require.NoError(t, srv.RegisterName(api.Namespace, api.Service))
	}
	n.client = rpc.DialInProc(srv)
	t.Cleanup(func() {
		n.client.Close()
		srv.Stop()
		seq.Stop()
	})
	return n
}

func (n *testNode) call(result interface{}, method string, args ...interface{}) error {
	return n.client.CallContext(context.Background(), result, method, args...)
}

func (n *testNode) send(key *ecdsa.PrivateKey, kind sysaction.ActionKind, payload interface{}) *types.Receipt {
	n.t.Helper()
	var nonce hexutil.Uint64
	require.NoError(n.t, n.call(&nonce, "node_getNonce", crypto.PubkeyToAddress(key.PublicKey)))
	data, err := sysaction.MakeSysAction(kind, payload)
	require.NoError(n.t, err)
	tx := types.NewSignedAction(uint64(nonce), data, nil)
	require.NoError(n.t, types.SignAction(tx, key))
	raw, err := tx.MarshalBinary()
	require.NoError(n.t, err)

	var receipt types.Receipt
	require.NoError(n.t, n.call(&receipt, "node_sendRawAction", hexutil.Bytes(raw)))
	return &receipt
}

func errorCode(t *testing.T, err error) int {
	t.Helper()
	var rpcErr rpc.Error
	require.True(t, errors.As(err, &rpcErr), "not an rpc error: %v", err)
	return rpcErr.ErrorCode()
}

func TestStakingThroughRPC(t *testing.T) {
	n := newTestNode(t)
	alice := crypto.PubkeyToAddress(n.alice.PublicKey)

	r := n.send(n.alice, sysaction.ActionRegistrySetApprovalForAll, sysaction.ApprovalForAllPayload{Operator: params.VaultAddress.Hex(), Approved: true})
	require.True(t, r.Succeeded(), r.Err)
	r = n.send(n.alice, sysaction.ActionVaultStake, sysaction.TokenIDsPayload{TokenIDs: []uint64{1, 2}})
	require.True(t, r.Succeeded(), r.Err)

	n.now += 10
	var earned hexutil.Big
	require.NoError(t, n.call(&earned, "vault_earned", []uint64{1, 2}))
	require.Zero(t, big.NewInt(2e16).Cmp(earned.ToInt()))

	var staked []uint64
	require.NoError(t, n.call(&staked, "vault_tokensOfOwner", alice))
	require.Equal(t, []uint64{1, 2}, staked)
	var held []uint64
	require.NoError(t, n.call(&held, "registry_tokensOfOwner", alice))
	require.Equal(t, []uint64{3}, held)

	r = n.send(n.alice, sysaction.ActionVaultClaim, sysaction.TokenIDsPayload{TokenIDs: []uint64{1, 2}})
	require.True(t, r.Succeeded(), r.Err)
	var bal hexutil.Big
	require.NoError(t, n.call(&bal, "ledger_balanceOf", alice))
	require.Zero(t, big.NewInt(2e16).Cmp(bal.ToInt()))

	var info TokenInfo
	require.NoError(t, n.call(&info, "ledger_info"))
	require.Equal(t, "DPT", info.Symbol)
	require.Zero(t, big.NewInt(2e16).Cmp(info.TotalSupply.ToInt()))

	var rec map[string]interface{}
	require.NoError(t, n.call(&rec, "vault_record", 1))
	require.EqualValues(t, n.now, rec["stakedAt"])

	var dash Dashboard
	require.NoError(t, n.call(&dash, "admin_dashboard"))
	require.Equal(t, "active", dash.State)
	require.Equal(t, hexutil.Uint64(2), dash.Paused)
	require.Equal(t, hexutil.Uint64(2), dash.TotalStaked)
	require.Equal(t, hexutil.Uint64(3), dash.TotalMinted)
}

func TestRPCErrors(t *testing.T) {
	n := newTestNode(t)

	var owner common.Address
	err := n.call(&owner, "registry_ownerOf", 99)
	require.Equal(t, errCodeNotFound, errorCode(t, err))

	var rec map[string]interface{}
	err = n.call(&rec, "vault_record", 1)
	require.Equal(t, errCodeNotFound, errorCode(t, err))

	var receipt types.Receipt
	err = n.call(&receipt, "node_sendRawAction", hexutil.Bytes("junk"))
	require.Equal(t, errCodeInvalidParams, errorCode(t, err))

	// A failing action is a successful call with a failed receipt.
	r := n.send(n.alice, sysaction.ActionAccessWithdraw, nil)
	require.False(t, r.Succeeded())
	require.Equal(t, "Unauthorized", r.ErrKind)

	var events []*types.Event
	err = n.call(&events, "node_getEvents", 0, 0)
	require.Equal(t, errCodeInvalidParams, errorCode(t, err))
}

func TestEventLogAndSubscription(t *testing.T) {
	n := newTestNode(t)

	ch := make(chan *types.Event, 4)
	sub, err := n.client.Subscribe(context.Background(), "node", ch, "events")
	require.NoError(t, err)
	defer sub.Unsubscribe()

	r := n.send(n.owner, sysaction.ActionAccessPause, sysaction.PausePayload{State: 1})
	require.True(t, r.Succeeded(), r.Err)

	select {
	case ev := <-ch:
		require.Equal(t, "ACCESS_PAUSE", ev.Operation)
		require.Equal(t, uint64(1), ev.Seq)
	case err := <-sub.Err():
		t.Fatalf("subscription failed: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("no event notification")
	}

	var count hexutil.Uint64
	require.NoError(t, n.call(&count, "node_eventCount"))
	require.Equal(t, hexutil.Uint64(2), count)

	var events []*types.Event
	require.NoError(t, n.call(&events, "node_getEvents", 0, 10))
	require.Len(t, events, 2)
	require.Equal(t, core.GenesisOperation, events[0].Operation)
	require.Equal(t, "ACCESS_PAUSE", events[1].Operation)

	var paused hexutil.Uint64
	require.NoError(t, n.call(&paused, "admin_paused"))
	require.Equal(t, hexutil.Uint64(1), paused)
}
