package sysaction

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tos-network/nftvault/core/vm"
)

var (
	// ErrInvalidSysAction is returned when action data cannot be decoded.
	ErrInvalidSysAction = fmt.Errorf("%w: invalid system action", vm.ErrValidation)

	// ErrInvalidPayload is returned when a payload does not match its kind.
	ErrInvalidPayload = fmt.Errorf("%w: invalid action payload", vm.ErrValidation)
)

// Decode parses a SysAction from raw bytes.
func Decode(data []byte) (*SysAction, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data", ErrInvalidSysAction)
	}
	var sa SysAction
	if err := json.Unmarshal(data, &sa); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSysAction, err)
	}
	if sa.Action == "" {
		return nil, fmt.Errorf("%w: missing action field", ErrInvalidSysAction)
	}
	return &sa, nil
}

// DecodePayload unmarshals sa.Payload into dst.
func DecodePayload(sa *SysAction, dst interface{}) error {
	if len(sa.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(sa.Payload, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}

// Encode serialises a SysAction to JSON bytes.
func Encode(sa *SysAction) ([]byte, error) {
	return json.Marshal(sa)
}

// MakeSysAction is a convenience helper that creates and encodes a SysAction.
func MakeSysAction(kind ActionKind, payload interface{}) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	return Encode(&SysAction{Action: kind, Payload: raw})
}

// ParseAddress validates a hex address payload field.
func ParseAddress(field, s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: invalid %s address: %q", vm.ErrValidation, field, s)
	}
	return common.HexToAddress(s), nil
}

// ParseAmount parses a decimal or 0x-prefixed hex amount. Negative values are
// returned as is; range checks belong to the operation.
func ParseAmount(field, s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	v, ok := new(big.Int).SetString(s, 0)
	if s == "" || !ok {
		return nil, fmt.Errorf("%w: invalid %s: %q", vm.ErrValidation, field, s)
	}
	return v, nil
}
