// Package state provides the overlay state every operation executes on.
//
// A StateDB serves reads from its local overlay first and from the committed
// database second. Writes only touch the overlay until Commit writes the
// overlay and the emitted events into a single database batch.
package state

import (
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"
	"github.com/tos-network/nftvault/core/rawdb"
	"github.com/tos-network/nftvault/core/types"
)

// ErrCommitted is returned when a StateDB is committed twice.
var ErrCommitted = errors.New("state: already committed")

// overlaySnapshot is a point-in-time copy of all overlay maps, used to
// support Snapshot/RevertToSnapshot.
type overlaySnapshot struct {
	storage  map[common.Address]map[common.Hash]common.Hash
	balances map[common.Address]*big.Int
	nonces   map[common.Address]uint64
	eventLen int
}

// StateDB implements vm.StateDB on top of a Database.
type StateDB struct {
	db *Database

	storage  map[common.Address]map[common.Hash]common.Hash
	balances map[common.Address]*big.Int
	nonces   map[common.Address]uint64
	events   []*types.Event

	timestamp    uint64
	setTimestamp bool

	snapshots []overlaySnapshot
	committed bool
}

// New creates an empty overlay over db.
func New(db *Database) *StateDB {
	return &StateDB{
		db:       db,
		storage:  make(map[common.Address]map[common.Hash]common.Hash),
		balances: make(map[common.Address]*big.Int),
		nonces:   make(map[common.Address]uint64),
	}
}

func (s *StateDB) GetState(addr common.Address, slot common.Hash) common.Hash {
	if slots, ok := s.storage[addr]; ok {
		if v, ok := slots[slot]; ok {
			return v
		}
	}
	return s.db.readStorage(addr, slot)
}

func (s *StateDB) SetState(addr common.Address, slot common.Hash, value common.Hash) {
	slots, ok := s.storage[addr]
	if !ok {
		slots = make(map[common.Hash]common.Hash)
		s.storage[addr] = slots
	}
	slots[slot] = value
}

func (s *StateDB) GetBalance(addr common.Address) *big.Int {
	if bal, ok := s.balances[addr]; ok {
		return new(big.Int).Set(bal)
	}
	return rawdb.ReadBalance(s.db.disk, addr)
}

func (s *StateDB) AddBalance(addr common.Address, amount *big.Int) {
	s.balances[addr] = new(big.Int).Add(s.GetBalance(addr), amount)
}

// SubBalance subtracts amount from addr. Callers check sufficiency first;
// the balance never goes below zero.
func (s *StateDB) SubBalance(addr common.Address, amount *big.Int) {
	bal := new(big.Int).Sub(s.GetBalance(addr), amount)
	if bal.Sign() < 0 {
		log.Error("Balance underflow clamped", "addr", addr, "amount", amount)
		bal = new(big.Int)
	}
	s.balances[addr] = bal
}

func (s *StateDB) GetNonce(addr common.Address) uint64 {
	if n, ok := s.nonces[addr]; ok {
		return n
	}
	return rawdb.ReadNonce(s.db.disk, addr)
}

func (s *StateDB) SetNonce(addr common.Address, nonce uint64) {
	s.nonces[addr] = nonce
}

// AddEvent records an event to be appended to the log on commit.
func (s *StateDB) AddEvent(ev *types.Event) {
	s.events = append(s.events, ev)
}

// Events returns the events recorded so far.
func (s *StateDB) Events() []*types.Event {
	return s.events
}

// SetTimestamp records the operation timestamp as the new high-water mark
// on commit.
func (s *StateDB) SetTimestamp(ts uint64) {
	s.timestamp = ts
	s.setTimestamp = true
}

// Snapshot returns an identifier for the current overlay.
func (s *StateDB) Snapshot() int {
	snap := overlaySnapshot{
		storage:  make(map[common.Address]map[common.Hash]common.Hash, len(s.storage)),
		balances: make(map[common.Address]*big.Int, len(s.balances)),
		nonces:   make(map[common.Address]uint64, len(s.nonces)),
		eventLen: len(s.events),
	}
	for addr, slots := range s.storage {
		cpy := make(map[common.Hash]common.Hash, len(slots))
		for k, v := range slots {
			cpy[k] = v
		}
		snap.storage[addr] = cpy
	}
	for addr, bal := range s.balances {
		snap.balances[addr] = new(big.Int).Set(bal)
	}
	for addr, n := range s.nonces {
		snap.nonces[addr] = n
	}
	s.snapshots = append(s.snapshots, snap)
	return len(s.snapshots) - 1
}

// RevertToSnapshot restores the overlay to the given snapshot. Snapshots
// taken after id are discarded.
func (s *StateDB) RevertToSnapshot(id int) {
	if id < 0 || id >= len(s.snapshots) {
		log.Error("Revert to unknown state snapshot", "id", id, "have", len(s.snapshots))
		return
	}
	snap := s.snapshots[id]
	s.storage = snap.storage
	s.balances = snap.balances
	s.nonces = snap.nonces
	s.events = s.events[:snap.eventLen]
	s.snapshots = s.snapshots[:id]
	revertMeter.Mark(1)
}

// Commit writes the overlay and the recorded events into one batch. Events
// are assigned consecutive sequence numbers following the current log end.
// On success the committed events are returned.
func (s *StateDB) Commit() ([]*types.Event, error) {
	return s.CommitWith(nil)
}

// CommitWith is Commit with extra writes appended to the same batch.
func (s *StateDB) CommitWith(extra func(w ethdb.KeyValueWriter)) ([]*types.Event, error) {
	if s.committed {
		return nil, ErrCommitted
	}
	start := time.Now()
	defer commitTimer.UpdateSince(start)

	disk := s.db.disk
	batch := disk.NewBatch()

	var updated, deleted int64
	for addr, slots := range s.storage {
		for slot, value := range slots {
			rawdb.WriteStorage(batch, addr, slot, value)
			if value == (common.Hash{}) {
				deleted++
			} else {
				updated++
			}
		}
	}
	for addr, bal := range s.balances {
		rawdb.WriteBalance(batch, addr, bal)
	}
	for addr, n := range s.nonces {
		rawdb.WriteNonce(batch, addr, n)
	}
	seq := rawdb.ReadEventCount(disk)
	for _, ev := range s.events {
		ev.Seq = seq
		rawdb.WriteEvent(batch, ev)
		seq++
	}
	if len(s.events) > 0 {
		rawdb.WriteEventCount(batch, seq)
	}
	if s.setTimestamp {
		rawdb.WriteLastTimestamp(batch, s.timestamp)
	}
	if extra != nil {
		extra(batch)
	}
	if err := batch.Write(); err != nil {
		return nil, err
	}
	for addr, slots := range s.storage {
		for slot, value := range slots {
			s.db.cacheStorage(addr, slot, value)
		}
	}
	s.committed = true

	storageUpdatedMeter.Mark(updated)
	storageDeletedMeter.Mark(deleted)
	balanceUpdatedMeter.Mark(int64(len(s.balances)))
	eventCommittedMeter.Mark(int64(len(s.events)))
	return s.events, nil
}
