package ledger

import (
	"github.com/tos-network/nftvault/core/vm"
	"github.com/tos-network/nftvault/sysaction"
)

func init() {
	sysaction.DefaultRegistry.Register(&ledgerHandler{})
}

// ledgerHandler implements sysaction.Handler for reward token actions.
type ledgerHandler struct{}

func (h *ledgerHandler) CanHandle(kind sysaction.ActionKind) bool {
	switch kind {
	case sysaction.ActionLedgerSetController, sysaction.ActionLedgerMint, sysaction.ActionLedgerTransfer:
		return true
	}
	return false
}

func (h *ledgerHandler) Handle(ctx *vm.Context, sa *sysaction.SysAction) error {
	switch sa.Action {
	case sysaction.ActionLedgerSetController:
		var p sysaction.ControllerPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return err
		}
		addr, err := sysaction.ParseAddress("controller", p.Controller)
		if err != nil {
			return err
		}
		return SetController(ctx, addr, p.Enabled)
	case sysaction.ActionLedgerMint, sysaction.ActionLedgerTransfer:
		var p sysaction.AmountPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return err
		}
		to, err := sysaction.ParseAddress("to", p.To)
		if err != nil {
			return err
		}
		v, err := sysaction.ParseAmount("amount", p.Amount)
		if err != nil {
			return err
		}
		amount, err := ParseAmount(v)
		if err != nil {
			return err
		}
		if sa.Action == sysaction.ActionLedgerMint {
			return Mint(ctx, to, amount)
		}
		return Transfer(ctx, to, amount)
	}
	return nil
}
