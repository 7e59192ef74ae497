package rawdb

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/tos-network/nftvault/core/types"
)

// ReadEventCount retrieves the number of events in the log.
func ReadEventCount(db ethdb.KeyValueReader) uint64 {
	data, _ := db.Get(eventCountKey)
	if len(data) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(data)
}

// WriteEventCount stores the number of events in the log.
func WriteEventCount(db ethdb.KeyValueWriter, count uint64) {
	if err := db.Put(eventCountKey, encodeSeq(count)); err != nil {
		log.Crit("Failed to store event count", "err", err)
	}
}

// ReadEvent retrieves the event with the given sequence number.
func ReadEvent(db ethdb.KeyValueReader, seq uint64) *types.Event {
	data, _ := db.Get(eventKey(seq))
	if len(data) == 0 {
		return nil
	}
	ev := new(types.Event)
	if err := rlp.DecodeBytes(data, ev); err != nil {
		log.Error("Invalid event RLP", "seq", seq, "err", err)
		return nil
	}
	return ev
}

// WriteEvent stores an event under its sequence number.
func WriteEvent(db ethdb.KeyValueWriter, ev *types.Event) {
	data, err := rlp.EncodeToBytes(ev)
	if err != nil {
		log.Crit("Failed to RLP encode event", "err", err)
	}
	if err := db.Put(eventKey(ev.Seq), data); err != nil {
		log.Crit("Failed to store event", "seq", ev.Seq, "err", err)
	}
}

// ReadEvents returns up to limit events starting at sequence number from.
func ReadEvents(db ethdb.KeyValueReader, from uint64, limit int) []*types.Event {
	count := ReadEventCount(db)
	var events []*types.Event
	for seq := from; seq < count && len(events) < limit; seq++ {
		if ev := ReadEvent(db, seq); ev != nil {
			events = append(events, ev)
		}
	}
	return events
}
