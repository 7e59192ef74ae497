package vm

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// Slot derives a storage slot as keccak256(part0 || 0x00 || part1 || 0x00 ...).
// The separator keeps variable-length parts from colliding.
func Slot(parts ...[]byte) common.Hash {
	size := 0
	for _, p := range parts {
		size += len(p) + 1
	}
	buf := make([]byte, 0, size)
	for i, p := range parts {
		if i > 0 {
			buf = append(buf, 0x00)
		}
		buf = append(buf, p...)
	}
	return common.BytesToHash(crypto.Keccak256(buf))
}

// Uint64Key encodes n big-endian for use in Slot.
func Uint64Key(n uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], n)
	return b[:]
}

func ReadUint64(db StateDB, owner common.Address, slot common.Hash) uint64 {
	raw := db.GetState(owner, slot)
	return binary.BigEndian.Uint64(raw[24:])
}

func WriteUint64(db StateDB, owner common.Address, slot common.Hash, n uint64) {
	var word common.Hash
	binary.BigEndian.PutUint64(word[24:], n)
	db.SetState(owner, slot, word)
}

func ReadBool(db StateDB, owner common.Address, slot common.Hash) bool {
	return db.GetState(owner, slot)[31] != 0
}

func WriteBool(db StateDB, owner common.Address, slot common.Hash, v bool) {
	var word common.Hash
	if v {
		word[31] = 1
	}
	db.SetState(owner, slot, word)
}

// ReadAddress reads an address stored right-aligned in a word.
func ReadAddress(db StateDB, owner common.Address, slot common.Hash) common.Address {
	raw := db.GetState(owner, slot)
	return common.BytesToAddress(raw[12:])
}

func WriteAddress(db StateDB, owner common.Address, slot common.Hash, addr common.Address) {
	var word common.Hash
	copy(word[12:], addr.Bytes())
	db.SetState(owner, slot, word)
}

func ReadUint256(db StateDB, owner common.Address, slot common.Hash) *uint256.Int {
	raw := db.GetState(owner, slot)
	return new(uint256.Int).SetBytes(raw[:])
}

func WriteUint256(db StateDB, owner common.Address, slot common.Hash, v *uint256.Int) {
	db.SetState(owner, slot, common.Hash(v.Bytes32()))
}

func ReadBig(db StateDB, owner common.Address, slot common.Hash) *big.Int {
	return db.GetState(owner, slot).Big()
}

func WriteBig(db StateDB, owner common.Address, slot common.Hash, v *big.Int) {
	db.SetState(owner, slot, common.BigToHash(v))
}
