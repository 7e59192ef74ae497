package access

import (
	"github.com/tos-network/nftvault/core/vm"
	"github.com/tos-network/nftvault/sysaction"
)

func init() {
	sysaction.DefaultRegistry.Register(&accessHandler{})
}

// accessHandler implements sysaction.Handler for the pause and admin actions.
type accessHandler struct{}

func (h *accessHandler) CanHandle(kind sysaction.ActionKind) bool {
	switch kind {
	case sysaction.ActionAccessPause,
		sysaction.ActionAccessWithdraw,
		sysaction.ActionAccessSetCost,
		sysaction.ActionAccessSetMaxMint,
		sysaction.ActionAccessTransferOwnership:
		return true
	}
	return false
}

func (h *accessHandler) Handle(ctx *vm.Context, sa *sysaction.SysAction) error {
	switch sa.Action {
	case sysaction.ActionAccessPause:
		var p sysaction.PausePayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return err
		}
		return Pause(ctx, PauseState(p.State))
	case sysaction.ActionAccessWithdraw:
		_, err := Withdraw(ctx)
		return err
	case sysaction.ActionAccessSetCost:
		var p sysaction.CostPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return err
		}
		cost, err := sysaction.ParseAmount("cost", p.Cost)
		if err != nil {
			return err
		}
		return SetCost(ctx, cost)
	case sysaction.ActionAccessSetMaxMint:
		var p sysaction.MaxMintPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return err
		}
		return SetMaxMintAmountPerTx(ctx, p.MaxMintAmountPerTx)
	case sysaction.ActionAccessTransferOwnership:
		var p sysaction.OwnershipPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return err
		}
		owner, err := sysaction.ParseAddress("new_owner", p.NewOwner)
		if err != nil {
			return err
		}
		return TransferOwnership(ctx, owner)
	}
	return nil
}
