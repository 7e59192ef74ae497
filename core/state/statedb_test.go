package state

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/tos-network/nftvault/core/rawdb"
	"github.com/tos-network/nftvault/core/types"
)

var (
	testAddr = common.HexToAddress("0x0000000000000000000000000000000000000a11")
	slotA    = common.HexToHash("0x01")
	slotB    = common.HexToHash("0x02")
)

func newTestState() (*Database, *StateDB) {
	db := NewDatabase(memorydb.New())
	return db, New(db)
}

func TestOverlayReadsThroughToDisk(t *testing.T) {
	db, _ := newTestState()
	rawdb.WriteStorage(db.DiskDB(), testAddr, slotA, common.HexToHash("0xaa"))
	rawdb.WriteBalance(db.DiskDB(), testAddr, big.NewInt(5))

	st := New(db)
	if have := st.GetState(testAddr, slotA); have != common.HexToHash("0xaa") {
		t.Fatalf("disk word not visible: %x", have)
	}
	st.SetState(testAddr, slotA, common.HexToHash("0xbb"))
	if have := st.GetState(testAddr, slotA); have != common.HexToHash("0xbb") {
		t.Fatalf("overlay word not visible: %x", have)
	}
	if have := rawdb.ReadStorage(db.DiskDB(), testAddr, slotA); have != common.HexToHash("0xaa") {
		t.Fatalf("uncommitted write leaked to disk: %x", have)
	}
	if have := st.GetBalance(testAddr); have.Int64() != 5 {
		t.Fatalf("balance mismatch: %v", have)
	}
}

func TestRevertToSnapshot(t *testing.T) {
	_, st := newTestState()
	st.SetState(testAddr, slotA, common.HexToHash("0x01"))
	st.AddBalance(testAddr, big.NewInt(10))
	st.AddEvent(&types.Event{Operation: "first"})

	id := st.Snapshot()
	st.SetState(testAddr, slotA, common.HexToHash("0x02"))
	st.SetState(testAddr, slotB, common.HexToHash("0x03"))
	st.SubBalance(testAddr, big.NewInt(4))
	st.SetNonce(testAddr, 3)
	st.AddEvent(&types.Event{Operation: "second"})

	st.RevertToSnapshot(id)

	if have := st.GetState(testAddr, slotA); have != common.HexToHash("0x01") {
		t.Fatalf("slot A not reverted: %x", have)
	}
	if have := st.GetState(testAddr, slotB); have != (common.Hash{}) {
		t.Fatalf("slot B not reverted: %x", have)
	}
	if have := st.GetBalance(testAddr); have.Int64() != 10 {
		t.Fatalf("balance not reverted: %v", have)
	}
	if have := st.GetNonce(testAddr); have != 0 {
		t.Fatalf("nonce not reverted: %d", have)
	}
	if len(st.Events()) != 1 || st.Events()[0].Operation != "first" {
		t.Fatalf("events not reverted: %v", st.Events())
	}
}

func TestNestedSnapshots(t *testing.T) {
	_, st := newTestState()
	outer := st.Snapshot()
	st.SetState(testAddr, slotA, common.HexToHash("0x01"))
	inner := st.Snapshot()
	st.SetState(testAddr, slotA, common.HexToHash("0x02"))

	st.RevertToSnapshot(inner)
	if have := st.GetState(testAddr, slotA); have != common.HexToHash("0x01") {
		t.Fatalf("inner revert mismatch: %x", have)
	}
	st.RevertToSnapshot(outer)
	if have := st.GetState(testAddr, slotA); have != (common.Hash{}) {
		t.Fatalf("outer revert mismatch: %x", have)
	}
}

func TestCommitWritesStateAndEventsTogether(t *testing.T) {
	db, st := newTestState()
	st.SetState(testAddr, slotA, common.HexToHash("0x01"))
	st.AddBalance(testAddr, big.NewInt(7))
	st.SetNonce(testAddr, 1)
	st.AddEvent(&types.Event{Operation: "VAULT_STAKE", Timestamp: 42})
	st.SetTimestamp(42)

	events, err := st.Commit()
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if len(events) != 1 || events[0].Seq != 0 {
		t.Fatalf("unexpected committed events: %+v", events)
	}
	disk := db.DiskDB()
	if have := rawdb.ReadStorage(disk, testAddr, slotA); have != common.HexToHash("0x01") {
		t.Fatalf("storage not committed: %x", have)
	}
	if have := rawdb.ReadBalance(disk, testAddr); have.Int64() != 7 {
		t.Fatalf("balance not committed: %v", have)
	}
	if have := rawdb.ReadNonce(disk, testAddr); have != 1 {
		t.Fatalf("nonce not committed: %d", have)
	}
	if have := rawdb.ReadEventCount(disk); have != 1 {
		t.Fatalf("event count mismatch: %d", have)
	}
	if have := rawdb.ReadLastTimestamp(disk); have != 42 {
		t.Fatalf("timestamp mismatch: %d", have)
	}
	if _, err := st.Commit(); err != ErrCommitted {
		t.Fatalf("want ErrCommitted, got %v", err)
	}

	// A second operation continues the event sequence.
	next := New(db)
	next.AddEvent(&types.Event{Operation: "VAULT_CLAIM"})
	events, err = next.Commit()
	if err != nil {
		t.Fatalf("second commit failed: %v", err)
	}
	if events[0].Seq != 1 {
		t.Fatalf("want seq 1, got %d", events[0].Seq)
	}
	if have := New(db).GetState(testAddr, slotA); have != common.HexToHash("0x01") {
		t.Fatalf("fresh overlay does not see committed word: %x", have)
	}
}
