package registry

import (
	"github.com/tos-network/nftvault/core/vm"
	"github.com/tos-network/nftvault/sysaction"
)

func init() {
	sysaction.DefaultRegistry.Register(&registryHandler{})
}

// registryHandler implements sysaction.Handler for collection actions.
type registryHandler struct{}

func (h *registryHandler) CanHandle(kind sysaction.ActionKind) bool {
	switch kind {
	case sysaction.ActionRegistryMint,
		sysaction.ActionRegistryApprove,
		sysaction.ActionRegistrySetApprovalForAll,
		sysaction.ActionRegistryTransfer:
		return true
	}
	return false
}

func (h *registryHandler) Handle(ctx *vm.Context, sa *sysaction.SysAction) error {
	switch sa.Action {
	case sysaction.ActionRegistryMint:
		var p sysaction.CollectionMintPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return err
		}
		_, err := Mint(ctx, p.Amount)
		return err
	case sysaction.ActionRegistryApprove:
		var p sysaction.ApprovePayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return err
		}
		to, err := sysaction.ParseAddress("to", p.To)
		if err != nil {
			return err
		}
		return Approve(ctx, to, p.TokenID)
	case sysaction.ActionRegistrySetApprovalForAll:
		var p sysaction.ApprovalForAllPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return err
		}
		operator, err := sysaction.ParseAddress("operator", p.Operator)
		if err != nil {
			return err
		}
		return SetApprovalForAll(ctx, operator, p.Approved)
	case sysaction.ActionRegistryTransfer:
		var p sysaction.TransferPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return err
		}
		from := ctx.From
		if p.From != "" {
			var err error
			if from, err = sysaction.ParseAddress("from", p.From); err != nil {
				return err
			}
		}
		to, err := sysaction.ParseAddress("to", p.To)
		if err != nil {
			return err
		}
		return Transfer(ctx, from, to, p.TokenID)
	}
	return nil
}
