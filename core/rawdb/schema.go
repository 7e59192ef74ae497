// Package rawdb contains the low level database accessors for the vault's
// persisted state: the key-value snapshot and the append-only event log.
package rawdb

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
)

// The fields below define the low level database schema prefixing.
var (
	// eventCountKey tracks the number of events in the log.
	eventCountKey = []byte("EventCount")

	// lastTimestampKey tracks the latest operation timestamp handed out.
	lastTimestampKey = []byte("LastTimestamp")

	// genesisKey stores the genesis document the database was initialised with.
	genesisKey = []byte("Genesis")

	storagePrefix = []byte("s") // storagePrefix + address + slot -> word
	balancePrefix = []byte("b") // balancePrefix + address -> big-endian balance
	noncePrefix   = []byte("n") // noncePrefix + address -> nonce (uint64 big endian)
	eventPrefix   = []byte("e") // eventPrefix + seq (uint64 big endian) -> rlp(event)
)

// encodeSeq encodes an event sequence number as big endian uint64.
func encodeSeq(seq uint64) []byte {
	enc := make([]byte, 8)
	binary.BigEndian.PutUint64(enc, seq)
	return enc
}

func storageKey(addr common.Address, slot common.Hash) []byte {
	key := make([]byte, 0, len(storagePrefix)+common.AddressLength+common.HashLength)
	key = append(key, storagePrefix...)
	key = append(key, addr.Bytes()...)
	return append(key, slot.Bytes()...)
}

// storagePrefixKey is the iteration prefix of all slots of addr.
func storagePrefixKey(addr common.Address) []byte {
	return append(append([]byte{}, storagePrefix...), addr.Bytes()...)
}

func balanceKey(addr common.Address) []byte {
	return append(append([]byte{}, balancePrefix...), addr.Bytes()...)
}

func nonceKey(addr common.Address) []byte {
	return append(append([]byte{}, noncePrefix...), addr.Bytes()...)
}

func eventKey(seq uint64) []byte {
	return append(append([]byte{}, eventPrefix...), encodeSeq(seq)...)
}
