package state

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
	lru "github.com/hashicorp/golang-lru"
	"github.com/tos-network/nftvault/core/rawdb"
)

// defaultCacheSize is the number of committed storage words kept in memory.
const defaultCacheSize = 4096

type storageKey struct {
	addr common.Address
	slot common.Hash
}

// Database wraps the persistent key-value store and caches committed
// storage words. Only the sequencer writes through it, so the cache is
// updated after every successful batch write.
type Database struct {
	disk  ethdb.KeyValueStore
	cache *lru.Cache // storageKey -> common.Hash
}

// NewDatabase creates a state database with the default cache size.
func NewDatabase(disk ethdb.KeyValueStore) *Database {
	return NewDatabaseWithCache(disk, defaultCacheSize)
}

// NewDatabaseWithCache creates a state database caching up to size words.
func NewDatabaseWithCache(disk ethdb.KeyValueStore, size int) *Database {
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, _ := lru.New(size)
	return &Database{disk: disk, cache: cache}
}

// DiskDB returns the underlying key-value store.
func (db *Database) DiskDB() ethdb.KeyValueStore { return db.disk }

func (db *Database) readStorage(addr common.Address, slot common.Hash) common.Hash {
	key := storageKey{addr, slot}
	if v, ok := db.cache.Get(key); ok {
		cacheHitMeter.Mark(1)
		return v.(common.Hash)
	}
	cacheMissMeter.Mark(1)
	value := rawdb.ReadStorage(db.disk, addr, slot)
	db.cache.Add(key, value)
	return value
}

func (db *Database) cacheStorage(addr common.Address, slot common.Hash, value common.Hash) {
	db.cache.Add(storageKey{addr, slot}, value)
}
