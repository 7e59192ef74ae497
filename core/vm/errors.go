package vm

import "errors"

// Error taxonomy. Every failure reported by a boundary operation wraps
// exactly one of these kinds.
var (
	// ErrUnauthorized: the caller lacks the required role or ownership.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidState: the operation is disallowed under the current pause state.
	ErrInvalidState = errors.New("invalid state")
	// ErrNotFound: a referenced stake record or token is absent.
	ErrNotFound = errors.New("not found")
	// ErrInvariantViolation: the operation would cause a negative balance,
	// a double mint or a double spend.
	ErrInvariantViolation = errors.New("invariant violation")
	// ErrValidation: a parameter is outside its allowed range.
	ErrValidation = errors.New("validation error")
)

// Error kind names reported in receipts and RPC errors.
const (
	KindUnauthorized       = "Unauthorized"
	KindInvalidState       = "InvalidState"
	KindNotFound           = "NotFound"
	KindInvariantViolation = "InvariantViolation"
	KindValidation         = "ValidationError"
	KindInternal           = "Internal"
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrUnauthorized, KindUnauthorized},
	{ErrInvalidState, KindInvalidState},
	{ErrNotFound, KindNotFound},
	{ErrInvariantViolation, KindInvariantViolation},
	{ErrValidation, KindValidation},
}

// ErrorKind maps err onto its taxonomy name. Errors outside the taxonomy are
// reported as KindInternal; a nil error has no kind.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return KindInternal
}
