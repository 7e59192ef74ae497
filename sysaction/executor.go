package sysaction

import (
	"fmt"

	"github.com/tos-network/nftvault/core/types"
	"github.com/tos-network/nftvault/core/vm"
)

var (
	// ErrUnknownAction is returned when no handler accepts an action kind.
	ErrUnknownAction = fmt.Errorf("%w: unknown system action", vm.ErrValidation)

	// ErrNotPayable is returned when value is attached to an action that
	// does not accept it.
	ErrNotPayable = fmt.Errorf("%w: action does not accept value", vm.ErrValidation)
)

// Payable reports whether an action of the given kind may carry native value.
func Payable(kind ActionKind) bool {
	return kind == ActionRegistryMint
}

// Handler is implemented by the vault, ledger, access and registry components.
type Handler interface {
	CanHandle(kind ActionKind) bool
	Handle(ctx *vm.Context, sa *SysAction) error
}

// Registry holds registered handlers.
type Registry struct{ handlers []Handler }

// DefaultRegistry is the process-wide handler registry.
var DefaultRegistry = &Registry{}

// Register adds a handler to the registry.
func (r *Registry) Register(h Handler) { r.handlers = append(r.handlers, h) }

func (r *Registry) lookup(kind ActionKind) Handler {
	for _, h := range r.handlers {
		if h.CanHandle(kind) {
			return h
		}
	}
	return nil
}

// Execute decodes data and dispatches it to the registered handler. The
// handler runs against a snapshot of ctx.StateDB: on failure every change it
// made is reverted, on success an event describing the operation is
// recorded. The returned action is nil only when data cannot be decoded.
func Execute(ctx *vm.Context, data []byte) (*SysAction, *types.Event, error) {
	return DefaultRegistry.Execute(ctx, data)
}

// Execute is like the package level Execute but dispatches through r.
func (r *Registry) Execute(ctx *vm.Context, data []byte) (*SysAction, *types.Event, error) {
	sa, err := Decode(data)
	if err != nil {
		return nil, nil, err
	}
	if ctx.CallValue().Sign() != 0 && !Payable(sa.Action) {
		return sa, nil, fmt.Errorf("%w: %s", ErrNotPayable, sa.Action)
	}
	h := r.lookup(sa.Action)
	if h == nil {
		return sa, nil, fmt.Errorf("%w: %q", ErrUnknownAction, sa.Action)
	}
	snap := ctx.StateDB.Snapshot()
	if err := h.Handle(ctx, sa); err != nil {
		ctx.StateDB.RevertToSnapshot(snap)
		return sa, nil, err
	}
	ev := &types.Event{
		Actor:     ctx.From,
		Operation: string(sa.Action),
		Args:      sa.Payload,
		Timestamp: ctx.Time,
	}
	ctx.StateDB.AddEvent(ev)
	return sa, ev, nil
}
