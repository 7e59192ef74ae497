package vaultapi

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/tos-network/nftvault/core/types"
)

// NodeAPI implements the node_* RPC namespace: action submission and the
// event log.
type NodeAPI struct {
	b Backend
}

// NewNodeAPI creates a NodeAPI backed by b.
func NewNodeAPI(b Backend) *NodeAPI {
	return &NodeAPI{b: b}
}

// SendRawAction applies an encoded signed action and returns its receipt.
func (api *NodeAPI) SendRawAction(_ context.Context, input hexutil.Bytes) (*types.Receipt, error) {
	tx := new(types.SignedAction)
	if err := tx.UnmarshalBinary(input); err != nil {
		return nil, invalidParams(err.Error())
	}
	receipt, err := api.b.ApplyTransaction(tx)
	if err != nil {
		if errors.Is(err, types.ErrInvalidSig) {
			return nil, invalidParams(err.Error())
		}
		return nil, toAPIError(err)
	}
	return receipt, nil
}

// GetNonce returns the next nonce expected from addr.
func (api *NodeAPI) GetNonce(_ context.Context, addr common.Address) hexutil.Uint64 {
	return hexutil.Uint64(api.b.Nonce(addr))
}

// GetEvents returns up to limit events starting at sequence number from.
func (api *NodeAPI) GetEvents(_ context.Context, from uint64, limit *int) ([]*types.Event, error) {
	n := maxEventsPerPage
	if limit != nil {
		if *limit <= 0 {
			return nil, invalidParams("limit must be positive")
		}
		if *limit < n {
			n = *limit
		}
	}
	events := api.b.Events(from, n)
	if events == nil {
		events = []*types.Event{}
	}
	return events, nil
}

// EventCount returns the length of the event log.
func (api *NodeAPI) EventCount(_ context.Context) hexutil.Uint64 {
	return hexutil.Uint64(api.b.EventCount())
}

// Events creates a subscription that is notified of every committed event.
func (api *NodeAPI) Events(ctx context.Context) (*rpc.Subscription, error) {
	notifier, supported := rpc.NotifierFromContext(ctx)
	if !supported {
		return &rpc.Subscription{}, rpc.ErrNotificationsUnsupported
	}
	rpcSub := notifier.CreateSubscription()
	ch := make(chan []*types.Event, 16)
	sub := api.b.SubscribeEvents(ch)

	go func() {
		defer sub.Unsubscribe()

		for {
			select {
			case events := <-ch:
				for _, ev := range events {
					if err := notifier.Notify(rpcSub.ID, ev); err != nil {
						log.Debug("Event notification failed", "id", rpcSub.ID, "err", err)
					}
				}
			case <-rpcSub.Err():
				return
			case <-notifier.Closed():
				return
			}
		}
	}()
	return rpcSub, nil
}
