// Package vaultclient provides a client for the vaultd RPC API.
package vaultclient

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/tos-network/nftvault/core/types"
	"github.com/tos-network/nftvault/sysaction"
	"github.com/tos-network/nftvault/vault"
)

// Client defines typed wrappers for the vaultd RPC API.
type Client struct {
	c *rpc.Client
}

// Dashboard is the owner view of the collection.
type Dashboard struct {
	Owner              common.Address
	Paused             uint64 // 1 paused, 2 active
	State              string
	Cost               *big.Int
	MaxMintAmountPerTx uint64
	MaxSupply          uint64
	TotalMinted        uint64
	Balance            *big.Int
	TotalStaked        uint64
	RewardSupply       *big.Int
	Time               uint64
}

// TokenInfo is the reward token metadata.
type TokenInfo struct {
	Name        string
	Symbol      string
	Decimals    uint64
	TotalSupply *big.Int
	Owner       common.Address
}

// Dial connects a client to the given URL.
func Dial(rawurl string) (*Client, error) {
	return DialContext(context.Background(), rawurl)
}

func DialContext(ctx context.Context, rawurl string) (*Client, error) {
	c, err := rpc.DialContext(ctx, rawurl)
	if err != nil {
		return nil, err
	}
	return NewClient(c), nil
}

// NewClient creates a client that uses the given RPC client.
func NewClient(c *rpc.Client) *Client {
	return &Client{c}
}

func (vc *Client) Close() {
	vc.c.Close()
}

// Client gives access to the underlying RPC client.
func (vc *Client) Client() *rpc.Client {
	return vc.c
}

// Actions

// Nonce returns the next nonce vaultd expects from account.
func (vc *Client) Nonce(ctx context.Context, account common.Address) (uint64, error) {
	var result hexutil.Uint64
	err := vc.c.CallContext(ctx, &result, "node_getNonce", account)
	return uint64(result), err
}

// SendAction submits a signed action and returns its receipt. A receipt
// with a failed status is not an error; the action was applied and its
// nonce consumed.
func (vc *Client) SendAction(ctx context.Context, tx *types.SignedAction) (*types.Receipt, error) {
	data, err := tx.MarshalBinary()
	if err != nil {
		return nil, err
	}
	var receipt types.Receipt
	if err := vc.c.CallContext(ctx, &receipt, "node_sendRawAction", hexutil.Bytes(data)); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// SignAndSend encodes the action, signs it with the next nonce of prv and
// submits it.
func (vc *Client) SignAndSend(ctx context.Context, prv *ecdsa.PrivateKey, kind sysaction.ActionKind, payload json.RawMessage, value *big.Int) (*types.Receipt, error) {
	data, err := sysaction.Encode(&sysaction.SysAction{Action: kind, Payload: payload})
	if err != nil {
		return nil, err
	}
	nonce, err := vc.Nonce(ctx, crypto.PubkeyToAddress(prv.PublicKey))
	if err != nil {
		return nil, err
	}
	tx := types.NewSignedAction(nonce, data, value)
	if err := types.SignAction(tx, prv); err != nil {
		return nil, err
	}
	return vc.SendAction(ctx, tx)
}

// Event log

// Events returns up to limit events starting at sequence number from.
func (vc *Client) Events(ctx context.Context, from uint64, limit int) ([]*types.Event, error) {
	var events []*types.Event
	err := vc.c.CallContext(ctx, &events, "node_getEvents", from, limit)
	return events, err
}

// EventCount returns the length of the event log.
func (vc *Client) EventCount(ctx context.Context) (uint64, error) {
	var result hexutil.Uint64
	err := vc.c.CallContext(ctx, &result, "node_eventCount")
	return uint64(result), err
}

// SubscribeEvents subscribes to every event committed from now on.
func (vc *Client) SubscribeEvents(ctx context.Context, ch chan<- *types.Event) (*rpc.ClientSubscription, error) {
	return vc.c.Subscribe(ctx, "node", ch, "events")
}

// Admin

// Dashboard returns a consistent snapshot of the collection state.
func (vc *Client) Dashboard(ctx context.Context) (*Dashboard, error) {
	var raw struct {
		Owner              common.Address `json:"owner"`
		Paused             hexutil.Uint64 `json:"paused"`
		State              string         `json:"state"`
		Cost               *hexutil.Big   `json:"cost"`
		MaxMintAmountPerTx hexutil.Uint64 `json:"maxMintAmountPerTx"`
		MaxSupply          hexutil.Uint64 `json:"maxSupply"`
		TotalMinted        hexutil.Uint64 `json:"totalMinted"`
		Balance            *hexutil.Big   `json:"balance"`
		TotalStaked        hexutil.Uint64 `json:"totalStaked"`
		RewardSupply       *hexutil.Big   `json:"rewardSupply"`
		Time               hexutil.Uint64 `json:"time"`
	}
	if err := vc.c.CallContext(ctx, &raw, "admin_dashboard"); err != nil {
		return nil, err
	}
	return &Dashboard{
		Owner:              raw.Owner,
		Paused:             uint64(raw.Paused),
		State:              raw.State,
		Cost:               bigFromHex(raw.Cost),
		MaxMintAmountPerTx: uint64(raw.MaxMintAmountPerTx),
		MaxSupply:          uint64(raw.MaxSupply),
		TotalMinted:        uint64(raw.TotalMinted),
		Balance:            bigFromHex(raw.Balance),
		TotalStaked:        uint64(raw.TotalStaked),
		RewardSupply:       bigFromHex(raw.RewardSupply),
		Time:               uint64(raw.Time),
	}, nil
}

// Paused returns the pause code, 1 for paused and 2 for active.
func (vc *Client) Paused(ctx context.Context) (uint64, error) {
	var result hexutil.Uint64
	err := vc.c.CallContext(ctx, &result, "admin_paused")
	return uint64(result), err
}

// Owner returns the collection owner.
func (vc *Client) Owner(ctx context.Context) (common.Address, error) {
	var result common.Address
	err := vc.c.CallContext(ctx, &result, "admin_owner")
	return result, err
}

// Registry

// OwnerOf returns the holder of a token; the vault address for staked tokens.
func (vc *Client) OwnerOf(ctx context.Context, id uint64) (common.Address, error) {
	var result common.Address
	err := vc.c.CallContext(ctx, &result, "registry_ownerOf", id)
	return result, err
}

// HeldTokens returns the ids held by account outside the vault.
func (vc *Client) HeldTokens(ctx context.Context, account common.Address) ([]uint64, error) {
	var ids []uint64
	err := vc.c.CallContext(ctx, &ids, "registry_tokensOfOwner", account)
	return ids, err
}

// Vault

// StakedTokens returns the ids staked by account.
func (vc *Client) StakedTokens(ctx context.Context, account common.Address) ([]uint64, error) {
	var ids []uint64
	err := vc.c.CallContext(ctx, &ids, "vault_tokensOfOwner", account)
	return ids, err
}

// Record returns the stake record of a token.
func (vc *Client) Record(ctx context.Context, id uint64) (*vault.StakeRecord, error) {
	var rec vault.StakeRecord
	if err := vc.c.CallContext(ctx, &rec, "vault_record", id); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Earned returns the reward the given staked tokens would pay out now.
func (vc *Client) Earned(ctx context.Context, ids []uint64) (*big.Int, error) {
	var result hexutil.Big
	err := vc.c.CallContext(ctx, &result, "vault_earned", ids)
	return (*big.Int)(&result), err
}

// Ledger

// RewardBalance returns the reward balance of account.
func (vc *Client) RewardBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	var result hexutil.Big
	err := vc.c.CallContext(ctx, &result, "ledger_balanceOf", account)
	return (*big.Int)(&result), err
}

// TokenInfo returns the reward token metadata.
func (vc *Client) TokenInfo(ctx context.Context) (*TokenInfo, error) {
	var raw struct {
		Name        string         `json:"name"`
		Symbol      string         `json:"symbol"`
		Decimals    hexutil.Uint64 `json:"decimals"`
		TotalSupply *hexutil.Big   `json:"totalSupply"`
		Owner       common.Address `json:"owner"`
	}
	if err := vc.c.CallContext(ctx, &raw, "ledger_info"); err != nil {
		return nil, err
	}
	return &TokenInfo{
		Name:        raw.Name,
		Symbol:      raw.Symbol,
		Decimals:    uint64(raw.Decimals),
		TotalSupply: bigFromHex(raw.TotalSupply),
		Owner:       raw.Owner,
	}, nil
}

func bigFromHex(value *hexutil.Big) *big.Int {
	if value == nil {
		return new(big.Int)
	}
	return (*big.Int)(value)
}
