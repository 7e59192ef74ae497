package types

import "github.com/ethereum/go-ethereum/common"

const (
	// ReceiptStatusFailed is the status code of an operation that was reverted.
	ReceiptStatusFailed = uint64(0)

	// ReceiptStatusSuccessful is the status code of an operation that committed.
	ReceiptStatusSuccessful = uint64(1)
)

// Receipt reports the outcome of one applied operation. Failed operations
// carry the reason and its error kind and leave no state behind (except the
// sender nonce of a signed action).
type Receipt struct {
	Status    uint64         `json:"status"`
	Seq       uint64         `json:"seq"`
	Actor     common.Address `json:"actor"`
	Operation string         `json:"operation"`
	Timestamp uint64         `json:"timestamp"`
	Err       string         `json:"error,omitempty"`
	ErrKind   string         `json:"errorKind,omitempty"`
}

// Succeeded reports whether the operation committed.
func (r *Receipt) Succeeded() bool { return r.Status == ReceiptStatusSuccessful }
