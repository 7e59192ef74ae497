package rawdb

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"
)

// ReadStorage retrieves a storage word, the zero word if absent.
func ReadStorage(db ethdb.KeyValueReader, addr common.Address, slot common.Hash) common.Hash {
	data, _ := db.Get(storageKey(addr, slot))
	return common.BytesToHash(data)
}

// WriteStorage stores a storage word. Zero words are deleted so that absent
// and zero slots are indistinguishable.
func WriteStorage(db ethdb.KeyValueWriter, addr common.Address, slot common.Hash, value common.Hash) {
	if value == (common.Hash{}) {
		if err := db.Delete(storageKey(addr, slot)); err != nil {
			log.Crit("Failed to delete storage slot", "addr", addr, "slot", slot, "err", err)
		}
		return
	}
	if err := db.Put(storageKey(addr, slot), value.Bytes()); err != nil {
		log.Crit("Failed to store storage slot", "addr", addr, "slot", slot, "err", err)
	}
}

// IterateStorage calls fn for every non-zero slot of addr.
func IterateStorage(db ethdb.Iteratee, addr common.Address, fn func(slot, value common.Hash) bool) {
	prefix := storagePrefixKey(addr)
	it := db.NewIterator(prefix, nil)
	defer it.Release()

	for it.Next() {
		key := it.Key()
		if len(key) != len(prefix)+common.HashLength {
			continue
		}
		if !fn(common.BytesToHash(key[len(prefix):]), common.BytesToHash(it.Value())) {
			return
		}
	}
}

// ReadBalance retrieves the native currency balance of addr.
func ReadBalance(db ethdb.KeyValueReader, addr common.Address) *big.Int {
	data, _ := db.Get(balanceKey(addr))
	return new(big.Int).SetBytes(data)
}

// WriteBalance stores the native currency balance of addr.
func WriteBalance(db ethdb.KeyValueWriter, addr common.Address, balance *big.Int) {
	if balance.Sign() == 0 {
		if err := db.Delete(balanceKey(addr)); err != nil {
			log.Crit("Failed to delete balance", "addr", addr, "err", err)
		}
		return
	}
	if err := db.Put(balanceKey(addr), balance.Bytes()); err != nil {
		log.Crit("Failed to store balance", "addr", addr, "err", err)
	}
}

// ReadNonce retrieves the action nonce of addr.
func ReadNonce(db ethdb.KeyValueReader, addr common.Address) uint64 {
	data, _ := db.Get(nonceKey(addr))
	if len(data) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(data)
}

// WriteNonce stores the action nonce of addr.
func WriteNonce(db ethdb.KeyValueWriter, addr common.Address, nonce uint64) {
	if err := db.Put(nonceKey(addr), encodeSeq(nonce)); err != nil {
		log.Crit("Failed to store nonce", "addr", addr, "err", err)
	}
}

// ReadLastTimestamp retrieves the latest operation timestamp.
func ReadLastTimestamp(db ethdb.KeyValueReader) uint64 {
	data, _ := db.Get(lastTimestampKey)
	if len(data) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(data)
}

// WriteLastTimestamp stores the latest operation timestamp.
func WriteLastTimestamp(db ethdb.KeyValueWriter, ts uint64) {
	if err := db.Put(lastTimestampKey, encodeSeq(ts)); err != nil {
		log.Crit("Failed to store last timestamp", "err", err)
	}
}

// ReadGenesis retrieves the genesis document, nil if uninitialised.
func ReadGenesis(db ethdb.KeyValueReader) []byte {
	data, _ := db.Get(genesisKey)
	return data
}

// WriteGenesis stores the genesis document.
func WriteGenesis(db ethdb.KeyValueWriter, blob []byte) {
	if err := db.Put(genesisKey, blob); err != nil {
		log.Crit("Failed to store genesis", "err", err)
	}
}
