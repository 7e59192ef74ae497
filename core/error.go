package core

import (
	"errors"
	"fmt"

	"github.com/tos-network/nftvault/core/vm"
)

var (
	// ErrNoGenesis is returned when the database has not been initialised.
	ErrNoGenesis = errors.New("genesis not found in database")

	// ErrGenesisMismatch is returned when a different genesis is already
	// stored.
	ErrGenesisMismatch = errors.New("database contains incompatible genesis")

	// ErrUnmarkedState is returned when the database holds an event log but
	// no genesis marker.
	ErrUnmarkedState = errors.New("database contains state without a genesis marker")

	// ErrNonceTooLow is returned if the nonce of an action is lower than the
	// one present in the local state.
	ErrNonceTooLow = fmt.Errorf("%w: nonce too low", vm.ErrValidation)

	// ErrNonceTooHigh is returned if the nonce of an action is higher than
	// the next one expected based on the local state.
	ErrNonceTooHigh = fmt.Errorf("%w: nonce too high", vm.ErrValidation)

	// ErrNonceMax is returned if the nonce of an action sender account has
	// maximum allowed value and would become invalid if incremented.
	ErrNonceMax = fmt.Errorf("%w: nonce has max value", vm.ErrValidation)
)
