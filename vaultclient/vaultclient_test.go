package vaultclient

import (
	"context"
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/tos-network/nftvault/core"
	"github.com/tos-network/nftvault/core/types"
	"github.com/tos-network/nftvault/node"
	"github.com/tos-network/nftvault/sysaction"
)

type rpcTestError struct {
	msg  string
	code int
}

func (e rpcTestError) Error() string  { return e.msg }
func (e rpcTestError) ErrorCode() int { return e.code }

type vaultTestService struct {
	lastEarnedIDs []uint64
	lastRecordID  uint64
}

func (s *vaultTestService) Earned(ids []uint64) *hexutil.Big {
	s.lastEarnedIDs = ids
	return (*hexutil.Big)(big.NewInt(3600))
}

func (s *vaultTestService) Record(id uint64) (interface{}, error) {
	s.lastRecordID = id
	if id == 404 {
		return nil, rpcTestError{msg: "vault: token not staked", code: -38004}
	}
	return map[string]interface{}{"tokenId": id, "owner": common.HexToAddress("0xbb"), "stakedAt": 1000}, nil
}

type ledgerTestService struct{}

func (ledgerTestService) Info() interface{} {
	return map[string]interface{}{
		"name":        "DacadePunks Token",
		"symbol":      "DPT",
		"decimals":    hexutil.Uint64(18),
		"totalSupply": (*hexutil.Big)(big.NewInt(42)),
		"owner":       common.HexToAddress("0xaa"),
	}
}

func newFakeClient(t *testing.T) (*Client, *vaultTestService) {
	vaultSvc := new(vaultTestService)
	server := rpc.NewServer()
	if err := server.RegisterName("vault", vaultSvc); err != nil {
		t.Fatalf("register vault: %v", err)
	}
	if err := server.RegisterName("ledger", ledgerTestService{}); err != nil {
		t.Fatalf("register ledger: %v", err)
	}
	client := NewClient(rpc.DialInProc(server))
	t.Cleanup(func() {
		client.Close()
		server.Stop()
	})
	return client, vaultSvc
}

func TestClientEarned(t *testing.T) {
	client, svc := newFakeClient(t)
	earned, err := client.Earned(context.Background(), []uint64{1, 2})
	if err != nil {
		t.Fatalf("Earned error: %v", err)
	}
	if earned.Cmp(big.NewInt(3600)) != 0 {
		t.Fatalf("earned = %v, want 3600", earned)
	}
	if len(svc.lastEarnedIDs) != 2 || svc.lastEarnedIDs[0] != 1 || svc.lastEarnedIDs[1] != 2 {
		t.Fatalf("ids sent = %v", svc.lastEarnedIDs)
	}
}

func TestClientRecord(t *testing.T) {
	client, svc := newFakeClient(t)
	rec, err := client.Record(context.Background(), 7)
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if rec.TokenID != 7 || rec.Owner != common.HexToAddress("0xbb") || rec.StakedAt != 1000 {
		t.Fatalf("unexpected record %+v", rec)
	}
	if svc.lastRecordID != 7 {
		t.Fatalf("id sent = %d", svc.lastRecordID)
	}

	_, err = client.Record(context.Background(), 404)
	rpcErr, ok := err.(rpc.Error)
	if !ok {
		t.Fatalf("expected rpc.Error, got %T %v", err, err)
	}
	if rpcErr.ErrorCode() != -38004 {
		t.Fatalf("error code = %d", rpcErr.ErrorCode())
	}
}

func TestClientTokenInfo(t *testing.T) {
	client, _ := newFakeClient(t)
	info, err := client.TokenInfo(context.Background())
	if err != nil {
		t.Fatalf("TokenInfo error: %v", err)
	}
	if info.Symbol != "DPT" || info.Decimals != 18 || info.TotalSupply.Int64() != 42 {
		t.Fatalf("unexpected info %+v", info)
	}
}

func TestClientAgainstNode(t *testing.T) {
	owner, _ := crypto.GenerateKey()
	ownerAddr := crypto.PubkeyToAddress(owner.PublicKey)

	db := memorydb.New()
	if _, err := core.SetupGenesis(db, core.DefaultGenesis(ownerAddr)); err != nil {
		t.Fatalf("genesis: %v", err)
	}
	stack, err := node.NewWithDatabase(&node.Config{}, db)
	if err != nil {
		t.Fatalf("node: %v", err)
	}
	defer stack.Close()
	rpcClient, err := stack.Attach()
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	client := NewClient(rpcClient)
	defer client.Close()
	ctx := context.Background()

	ch := make(chan *types.Event, 4)
	sub, err := client.SubscribeEvents(ctx, ch)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub.Unsubscribe()

	payload, _ := json.Marshal(&sysaction.PausePayload{State: 2})
	receipt, err := client.SignAndSend(ctx, owner, sysaction.ActionAccessPause, payload, nil)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !receipt.Succeeded() {
		t.Fatalf("pause failed: %s", receipt.Err)
	}
	select {
	case ev := <-ch:
		if ev.Operation != string(sysaction.ActionAccessPause) || ev.Actor != ownerAddr || ev.Seq != receipt.Seq {
			t.Fatalf("unexpected event %+v", ev)
		}
	case err := <-sub.Err():
		t.Fatalf("subscription failed: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("event not delivered")
	}

	if nonce, err := client.Nonce(ctx, ownerAddr); err != nil || nonce != 1 {
		t.Fatalf("nonce = %d, %v", nonce, err)
	}
	if paused, err := client.Paused(ctx); err != nil || paused != 2 {
		t.Fatalf("paused = %d, %v", paused, err)
	}
	count, err := client.EventCount(ctx)
	if err != nil || count != 2 {
		t.Fatalf("event count = %d, %v", count, err)
	}
	events, err := client.Events(ctx, 0, 10)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 2 || events[0].Operation != core.GenesisOperation {
		t.Fatalf("unexpected event log %+v", events)
	}
	d, err := client.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if d.Owner != ownerAddr || d.State != "active" || d.Cost.Cmp(big.NewInt(1e16)) != 0 {
		t.Fatalf("unexpected dashboard %+v", d)
	}
}
