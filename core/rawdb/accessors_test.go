package rawdb

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/tos-network/nftvault/core/types"
)

func TestStorageZeroWordIsDeleted(t *testing.T) {
	db := memorydb.New()
	addr := common.HexToAddress("0x01")
	slot := common.HexToHash("0x02")

	WriteStorage(db, addr, slot, common.HexToHash("0xff"))
	if have := ReadStorage(db, addr, slot); have != common.HexToHash("0xff") {
		t.Fatalf("storage mismatch: have %x", have)
	}
	WriteStorage(db, addr, slot, common.Hash{})
	if ok, _ := db.Has(storageKey(addr, slot)); ok {
		t.Fatalf("zero word should delete the key")
	}
}

func TestIterateStorageStaysWithinAddress(t *testing.T) {
	db := memorydb.New()
	a, b := common.HexToAddress("0x0a"), common.HexToAddress("0x0b")
	WriteStorage(db, a, common.HexToHash("0x01"), common.HexToHash("0x11"))
	WriteStorage(db, a, common.HexToHash("0x02"), common.HexToHash("0x22"))
	WriteStorage(db, b, common.HexToHash("0x01"), common.HexToHash("0x33"))

	seen := make(map[common.Hash]common.Hash)
	IterateStorage(db, a, func(slot, value common.Hash) bool {
		seen[slot] = value
		return true
	})
	if len(seen) != 2 || seen[common.HexToHash("0x02")] != common.HexToHash("0x22") {
		t.Fatalf("unexpected iteration result: %v", seen)
	}
}

func TestEventLog(t *testing.T) {
	db := memorydb.New()
	actor := common.HexToAddress("0xabc")
	for i := uint64(0); i < 3; i++ {
		WriteEvent(db, &types.Event{
			Seq:       i,
			Actor:     actor,
			Operation: "VAULT_STAKE",
			Args:      json.RawMessage(`{"tokenIds":[5]}`),
			Timestamp: 100 + i,
		})
	}
	WriteEventCount(db, 3)

	events := ReadEvents(db, 1, 10)
	if len(events) != 2 {
		t.Fatalf("want 2 events, got %d", len(events))
	}
	if events[0].Seq != 1 || events[0].Timestamp != 101 || events[0].Actor != actor {
		t.Fatalf("unexpected event: %+v", events[0])
	}
	if string(events[1].Args) != `{"tokenIds":[5]}` {
		t.Fatalf("args mismatch: %s", events[1].Args)
	}
	if ReadEvent(db, 3) != nil {
		t.Fatalf("event past the log end should be absent")
	}
}

func TestBalanceAndNonce(t *testing.T) {
	db := memorydb.New()
	addr := common.HexToAddress("0x01")
	WriteBalance(db, addr, big.NewInt(1e16))
	WriteNonce(db, addr, 9)
	if have := ReadBalance(db, addr); have.Cmp(big.NewInt(1e16)) != 0 {
		t.Fatalf("balance mismatch: %v", have)
	}
	if have := ReadNonce(db, addr); have != 9 {
		t.Fatalf("nonce mismatch: %d", have)
	}
	WriteBalance(db, addr, new(big.Int))
	if ok, _ := db.Has(balanceKey(addr)); ok {
		t.Fatalf("zero balance should delete the key")
	}
}
