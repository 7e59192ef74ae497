package types

import (
	"bytes"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

const (
	actionEncodingPrefix  = "NFTVA1"
	actionEncodingVersion = uint8(1)
)

var (
	ErrInvalidActionEncoding = errors.New("invalid signed action encoding")
	ErrInvalidSig            = errors.New("invalid action signature")
)

// SignedAction is the authenticated transport for a system action. Data holds
// the JSON action envelope, Value the native currency attached to it. The
// sender is never part of the message; it is recovered from Sig.
type SignedAction struct {
	Nonce uint64
	Data  []byte
	Value *big.Int
	Sig   []byte // 65 bytes, [R || S || V] with V in {0, 1}
}

type signedActionEnvelope struct {
	Version uint8
	Nonce   uint64
	Data    []byte
	Value   *big.Int
	Sig     []byte
}

// NewSignedAction creates an unsigned action.
func NewSignedAction(nonce uint64, data []byte, value *big.Int) *SignedAction {
	if value == nil {
		value = new(big.Int)
	}
	return &SignedAction{Nonce: nonce, Data: data, Value: value}
}

func (a *SignedAction) value() *big.Int {
	if a.Value == nil {
		return new(big.Int)
	}
	return a.Value
}

// SigHash returns the digest that is signed by the sender.
func (a *SignedAction) SigHash() common.Hash {
	enc, _ := rlp.EncodeToBytes([]interface{}{
		actionEncodingPrefix,
		a.Nonce,
		a.Data,
		a.value(),
	})
	return crypto.Keccak256Hash(enc)
}

// Hash returns the identifier of the signed action.
func (a *SignedAction) Hash() common.Hash {
	enc, _ := a.MarshalBinary()
	return crypto.Keccak256Hash(enc)
}

// SignAction signs the action in place with prv.
func SignAction(a *SignedAction, prv *ecdsa.PrivateKey) error {
	sig, err := crypto.Sign(a.SigHash().Bytes(), prv)
	if err != nil {
		return err
	}
	a.Sig = sig
	return nil
}

// Sender recovers the address that signed the action.
func Sender(a *SignedAction) (common.Address, error) {
	if len(a.Sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("%w: length %d", ErrInvalidSig, len(a.Sig))
	}
	pub, err := crypto.SigToPub(a.SigHash().Bytes(), a.Sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrInvalidSig, err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// MarshalBinary encodes the action as prefix || rlp(envelope).
func (a *SignedAction) MarshalBinary() ([]byte, error) {
	body, err := rlp.EncodeToBytes(&signedActionEnvelope{
		Version: actionEncodingVersion,
		Nonce:   a.Nonce,
		Data:    a.Data,
		Value:   a.value(),
		Sig:     a.Sig,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidActionEncoding, err)
	}
	out := make([]byte, len(actionEncodingPrefix)+len(body))
	copy(out, actionEncodingPrefix)
	copy(out[len(actionEncodingPrefix):], body)
	return out, nil
}

// UnmarshalBinary decodes an action produced by MarshalBinary.
func (a *SignedAction) UnmarshalBinary(data []byte) error {
	if len(data) <= len(actionEncodingPrefix) || !bytes.Equal(data[:len(actionEncodingPrefix)], []byte(actionEncodingPrefix)) {
		return ErrInvalidActionEncoding
	}
	var env signedActionEnvelope
	if err := rlp.DecodeBytes(data[len(actionEncodingPrefix):], &env); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidActionEncoding, err)
	}
	if env.Version != actionEncodingVersion {
		return fmt.Errorf("%w: version %d", ErrInvalidActionEncoding, env.Version)
	}
	*a = SignedAction{Nonce: env.Nonce, Data: env.Data, Value: env.Value, Sig: env.Sig}
	return nil
}
