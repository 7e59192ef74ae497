package core

import (
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"
	"github.com/tos-network/nftvault/core/rawdb"
	"github.com/tos-network/nftvault/core/state"
	"github.com/tos-network/nftvault/core/types"
	"github.com/tos-network/nftvault/core/vm"
	"github.com/tos-network/nftvault/sysaction"

	// Register the action handlers.
	_ "github.com/tos-network/nftvault/access"
	_ "github.com/tos-network/nftvault/ledger"
	_ "github.com/tos-network/nftvault/registry"
	_ "github.com/tos-network/nftvault/vault"
)

// Sequencer is the single serialized executor of the system. Every
// operation runs alone on a fresh overlay of the committed state; its
// effects and its event are committed together or not at all.
type Sequencer struct {
	mu        sync.Mutex
	db        *state.Database
	clock     func() time.Time
	receivers map[common.Address]vm.TokenReceiver

	feedMu    sync.Mutex // keeps event delivery in commit order
	eventFeed event.Feed
	scope     event.SubscriptionScope
}

// NewSequencer creates a sequencer over an initialised database. A nil
// clock defaults to the wall clock.
func NewSequencer(db *state.Database, clock func() time.Time) (*Sequencer, error) {
	if len(rawdb.ReadGenesis(db.DiskDB())) == 0 {
		return nil, ErrNoGenesis
	}
	if clock == nil {
		clock = time.Now
	}
	return &Sequencer{
		db:        db,
		clock:     clock,
		receivers: make(map[common.Address]vm.TokenReceiver),
	}, nil
}

// RegisterReceiver installs a token receiver hook for addr.
func (s *Sequencer) RegisterReceiver(addr common.Address, r vm.TokenReceiver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receivers[addr] = r
}

// SubscribeEvents delivers the events of every committed operation.
func (s *Sequencer) SubscribeEvents(ch chan<- []*types.Event) event.Subscription {
	return s.scope.Track(s.eventFeed.Subscribe(ch))
}

// Stop unsubscribes every event subscriber.
func (s *Sequencer) Stop() {
	s.scope.Close()
}

// View runs fn against the committed state. The overlay passed to fn is
// discarded afterwards.
func (s *Sequencer) View(fn func(db vm.StateDB, now uint64) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(state.New(s.db), s.now())
}

// Nonce returns the next expected nonce of addr.
func (s *Sequencer) Nonce(addr common.Address) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return state.New(s.db).GetNonce(addr)
}

// Events returns up to limit committed events starting at sequence number
// from.
func (s *Sequencer) Events(from uint64, limit int) []*types.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rawdb.ReadEvents(s.db.DiskDB(), from, limit)
}

// EventCount returns the length of the event log.
func (s *Sequencer) EventCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rawdb.ReadEventCount(s.db.DiskDB())
}

// now returns the operation timestamp. It never goes below the timestamp of
// the last committed operation.
func (s *Sequencer) now() uint64 {
	now := uint64(s.clock().Unix())
	if last := rawdb.ReadLastTimestamp(s.db.DiskDB()); now < last {
		return last
	}
	return now
}

// Apply executes an action on behalf of from. Action failures are reported
// in the receipt; the returned error is only set if the outcome could not
// be persisted.
func (s *Sequencer) Apply(from common.Address, value *big.Int, data []byte) (*types.Receipt, error) {
	s.mu.Lock()
	receipt, events, err := s.apply(state.New(s.db), from, value, data)
	s.deliver(events)
	return receipt, err
}

// ApplyTransaction authenticates a signed action, checks and consumes its
// nonce and executes it. The nonce is consumed even if the action fails.
// Actions with a bad signature or nonce are rejected with an error and
// leave no trace.
func (s *Sequencer) ApplyTransaction(tx *types.SignedAction) (*types.Receipt, error) {
	from, err := types.Sender(tx)
	if err != nil {
		actionRejectMeter.Mark(1)
		return nil, err
	}
	s.mu.Lock()
	statedb := state.New(s.db)
	if err := checkNonce(statedb, from, tx.Nonce); err != nil {
		s.mu.Unlock()
		actionRejectMeter.Mark(1)
		return nil, err
	}
	statedb.SetNonce(from, tx.Nonce+1)
	receipt, events, err := s.apply(statedb, from, tx.Value, tx.Data)
	s.deliver(events)
	return receipt, err
}

// deliver releases the execution lock and publishes events. It must be
// called with s.mu held.
func (s *Sequencer) deliver(events []*types.Event) {
	s.feedMu.Lock()
	s.mu.Unlock()
	defer s.feedMu.Unlock()
	if len(events) > 0 {
		s.eventFeed.Send(events)
	}
}

func checkNonce(statedb *state.StateDB, from common.Address, nonce uint64) error {
	stNonce := statedb.GetNonce(from)
	if stNonce < nonce {
		return fmt.Errorf("%w: address %v, tx: %d state: %d", ErrNonceTooHigh, from.Hex(), nonce, stNonce)
	} else if stNonce > nonce {
		return fmt.Errorf("%w: address %v, tx: %d state: %d", ErrNonceTooLow, from.Hex(), nonce, stNonce)
	} else if stNonce+1 < stNonce {
		return fmt.Errorf("%w: address %v, nonce: %d", ErrNonceMax, from.Hex(), stNonce)
	}
	return nil
}

func (s *Sequencer) apply(statedb *state.StateDB, from common.Address, value *big.Int, data []byte) (*types.Receipt, []*types.Event, error) {
	start := time.Now()
	defer applyTimer.UpdateSince(start)

	now := s.now()
	ctx := &vm.Context{
		From:      from,
		Value:     value,
		Time:      now,
		StateDB:   statedb,
		Receivers: s.receivers,
	}
	receipt := &types.Receipt{Actor: from, Timestamp: now}
	sa, ev, err := sysaction.Execute(ctx, data)
	if sa != nil {
		receipt.Operation = string(sa.Action)
	}
	statedb.SetTimestamp(now)
	events, cerr := statedb.Commit()
	if cerr != nil {
		log.Error("Failed to commit operation", "op", receipt.Operation, "actor", from, "err", cerr)
		return nil, nil, cerr
	}
	if err != nil {
		actionFailedMeter.Mark(1)
		receipt.Status = types.ReceiptStatusFailed
		receipt.Err = err.Error()
		receipt.ErrKind = vm.ErrorKind(err)
		log.Debug("Action failed", "op", receipt.Operation, "actor", from, "kind", receipt.ErrKind, "err", err)
		return receipt, nil, nil
	}
	actionSuccessMeter.Mark(1)
	receipt.Status = types.ReceiptStatusSuccessful
	receipt.Seq = ev.Seq
	log.Info("Applied action", "op", receipt.Operation, "actor", from, "seq", ev.Seq, "time", now)

	out := make([]*types.Event, len(events))
	for i, e := range events {
		out[i] = e.Copy()
	}
	return receipt, out, nil
}
