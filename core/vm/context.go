package vm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Context carries the information available to a boundary operation and to
// every sub-operation it performs.
type Context struct {
	From      common.Address
	Value     *big.Int
	Time      uint64
	StateDB   StateDB
	Receivers map[common.Address]TokenReceiver
}

// WithCaller returns a copy of the context acting on behalf of caller with no
// attached value. It is used when one component calls another.
func (c *Context) WithCaller(caller common.Address) *Context {
	cpy := *c
	cpy.From = caller
	cpy.Value = new(big.Int)
	return &cpy
}

// Receiver returns the token receiver hook registered for addr, if any.
func (c *Context) Receiver(addr common.Address) (TokenReceiver, bool) {
	if c.Receivers == nil {
		return nil, false
	}
	r, ok := c.Receivers[addr]
	return r, ok
}

// CallValue returns the attached native value, never nil.
func (c *Context) CallValue() *big.Int {
	if c.Value == nil {
		return new(big.Int)
	}
	return c.Value
}
