package vaultapi

import (
	"github.com/tos-network/nftvault/core/vm"
)

const (
	errCodeInternal           = -32000
	errCodeInvalidParams      = -32602
	errCodeUnauthorized       = -38001
	errCodeInvalidState       = -38002
	errCodeNotFound           = -38004
	errCodeInvariantViolation = -38009
)

// apiError is a JSON-RPC error carrying a stable code and the error kind.
type apiError struct {
	code    int
	message string
	data    interface{}
}

func (e *apiError) Error() string          { return e.message }
func (e *apiError) ErrorCode() int         { return e.code }
func (e *apiError) ErrorData() interface{} { return e.data }

var kindCodes = map[string]int{
	vm.KindUnauthorized:       errCodeUnauthorized,
	vm.KindInvalidState:       errCodeInvalidState,
	vm.KindNotFound:           errCodeNotFound,
	vm.KindInvariantViolation: errCodeInvariantViolation,
	vm.KindValidation:         errCodeInvalidParams,
}

// toAPIError maps err onto the RPC error codes.
func toAPIError(err error) error {
	if err == nil {
		return nil
	}
	kind := vm.ErrorKind(err)
	code, ok := kindCodes[kind]
	if !ok {
		code = errCodeInternal
	}
	return &apiError{
		code:    code,
		message: err.Error(),
		data:    map[string]interface{}{"kind": kind},
	}
}

func invalidParams(msg string) error {
	return &apiError{
		code:    errCodeInvalidParams,
		message: msg,
		data:    map[string]interface{}{"kind": vm.KindValidation},
	}
}
