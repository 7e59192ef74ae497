package types

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
)

// Event is the record emitted by every successful boundary operation. The
// sequence number is assigned when the operation commits and is the event's
// position in the append-only event log.
type Event struct {
	Seq       uint64          `json:"seq"`
	Actor     common.Address  `json:"actor"`
	Operation string          `json:"operation"`
	Args      json.RawMessage `json:"args,omitempty"`
	Timestamp uint64          `json:"timestamp"`
}

// Copy returns a deep copy of the event.
func (e *Event) Copy() *Event {
	cpy := *e
	if e.Args != nil {
		cpy.Args = append(json.RawMessage(nil), e.Args...)
	}
	return &cpy
}
