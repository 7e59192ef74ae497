package registry

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/tos-network/nftvault/core/vm"
	"github.com/tos-network/nftvault/params"
)

// Approve lets to move id on behalf of its owner. Passing the zero address
// clears the approval.
func Approve(ctx *vm.Context, to common.Address, id uint64) error {
	owner, err := OwnerOf(ctx.StateDB, id)
	if err != nil {
		return err
	}
	if to == owner {
		return ErrApproveToOwner
	}
	if ctx.From != owner && !IsApprovedForAll(ctx.StateDB, owner, ctx.From) {
		return ErrNotApproved
	}
	writeApproval(ctx.StateDB, id, to)
	return nil
}

// SetApprovalForAll grants or revokes operator's right to move every token
// of the caller.
func SetApprovalForAll(ctx *vm.Context, operator common.Address, approved bool) error {
	if operator == ctx.From {
		return ErrApproveToCaller
	}
	if operator == (common.Address{}) {
		return ErrZeroAddress
	}
	vm.WriteBool(ctx.StateDB, params.CollectionAddress, operatorSlot(ctx.From, operator), approved)
	return nil
}

// isApprovedOrOwner reports whether spender may move id, owned by owner.
func isApprovedOrOwner(db vm.StateDB, spender, owner common.Address, id uint64) bool {
	return spender == owner ||
		IsApprovedForAll(db, owner, spender) ||
		GetApproved(db, id) == spender
}

// Transfer moves id from from to to. The caller (ctx.From) must own the
// token or be approved for it. Only the vault itself may move a token into
// vault custody. If to has a registered receiver, it is notified after the
// token has moved; a receiver error fails the transfer.
func Transfer(ctx *vm.Context, from, to common.Address, id uint64) error {
	owner, err := OwnerOf(ctx.StateDB, id)
	if err != nil {
		return err
	}
	if owner != from {
		return ErrWrongOwner
	}
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	if to == params.VaultAddress && ctx.From != params.VaultAddress {
		return ErrVaultCustody
	}
	operator := ctx.From
	if !isApprovedOrOwner(ctx.StateDB, operator, owner, id) {
		return ErrNotApproved
	}
	writeApproval(ctx.StateDB, id, common.Address{})
	if from != to {
		writeBalance(ctx.StateDB, from, BalanceOf(ctx.StateDB, from)-1)
		writeBalance(ctx.StateDB, to, BalanceOf(ctx.StateDB, to)+1)
		writeOwner(ctx.StateDB, id, to)
	}
	if r, ok := ctx.Receiver(to); ok {
		return r.OnTokenReceived(ctx.WithCaller(to), operator, from, id)
	}
	return nil
}
