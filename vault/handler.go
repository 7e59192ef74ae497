package vault

import (
	"github.com/tos-network/nftvault/core/vm"
	"github.com/tos-network/nftvault/sysaction"
)

func init() {
	sysaction.DefaultRegistry.Register(&vaultHandler{})
}

// vaultHandler implements sysaction.Handler for staking actions.
type vaultHandler struct{}

func (h *vaultHandler) CanHandle(kind sysaction.ActionKind) bool {
	switch kind {
	case sysaction.ActionVaultStake, sysaction.ActionVaultUnstake, sysaction.ActionVaultClaim:
		return true
	}
	return false
}

func (h *vaultHandler) Handle(ctx *vm.Context, sa *sysaction.SysAction) error {
	var p sysaction.TokenIDsPayload
	if err := sysaction.DecodePayload(sa, &p); err != nil {
		return err
	}
	var err error
	switch sa.Action {
	case sysaction.ActionVaultStake:
		err = Stake(ctx, p.TokenIDs)
	case sysaction.ActionVaultUnstake:
		_, err = Unstake(ctx, p.TokenIDs)
	case sysaction.ActionVaultClaim:
		_, err = Claim(ctx, p.TokenIDs)
	}
	return err
}
