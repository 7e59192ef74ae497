package vault

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/tos-network/nftvault/access"
	"github.com/tos-network/nftvault/core/vm"
	"github.com/tos-network/nftvault/ledger"
	"github.com/tos-network/nftvault/params"
	"github.com/tos-network/nftvault/registry"
)

// checkBatch rejects empty, oversized and repeating id lists.
func checkBatch(ids []uint64) error {
	if len(ids) == 0 {
		return ErrEmptyBatch
	}
	if len(ids) > params.MaxTokensPerCall {
		return ErrBatchTooLarge
	}
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return ErrDuplicateToken
		}
		seen[id] = struct{}{}
	}
	return nil
}

// guard runs the checks shared by every vault entry point and takes the
// lock. The returned function releases it.
func guard(ctx *vm.Context, ids []uint64) (func(), error) {
	if err := checkBatch(ids); err != nil {
		return nil, err
	}
	if err := access.RequireActive(ctx.StateDB); err != nil {
		return nil, err
	}
	if err := enter(ctx.StateDB); err != nil {
		return nil, err
	}
	return func() { leave(ctx.StateDB) }, nil
}

// stakerRecords loads the records of ids and checks they belong to staker.
func stakerRecords(db vm.StateDB, staker common.Address, ids []uint64) ([]StakeRecord, error) {
	recs := make([]StakeRecord, 0, len(ids))
	for _, id := range ids {
		rec, err := Record(db, id)
		if err != nil {
			return nil, err
		}
		if rec.Owner != staker {
			return nil, ErrNotStaker
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// payout mints amount to the staker on behalf of the vault. Nothing is
// minted for a zero amount.
func payout(ctx *vm.Context, to common.Address, amount *uint256.Int) error {
	if amount.IsZero() {
		return nil
	}
	return ledger.Mint(ctx.WithCaller(params.VaultAddress), to, amount)
}

// Stake moves ids from the caller into vault custody. The vault must have
// been approved by the caller in the registry.
func Stake(ctx *vm.Context, ids []uint64) error {
	release, err := guard(ctx, ids)
	if err != nil {
		return err
	}
	defer release()

	db, staker := ctx.StateDB, ctx.From
	for _, id := range ids {
		owner, err := registry.OwnerOf(db, id)
		if err != nil {
			return err
		}
		if isStaked(db, id) {
			return ErrAlreadyStaked
		}
		if owner != staker {
			return ErrNotTokenOwner
		}
	}
	for _, id := range ids {
		writeRecord(db, StakeRecord{TokenID: id, Owner: staker, StakedAt: ctx.Time})
	}
	writeTotalStaked(db, TotalStaked(db)+uint64(len(ids)))

	vaultCtx := ctx.WithCaller(params.VaultAddress)
	for _, id := range ids {
		if err := registry.Transfer(vaultCtx, staker, params.VaultAddress, id); err != nil {
			return err
		}
	}
	log.Debug("Tokens staked", "staker", staker, "ids", ids, "time", ctx.Time)
	return nil
}

// Unstake returns ids to the caller and pays out their accrued reward. The
// records are deleted before any token or reward moves.
func Unstake(ctx *vm.Context, ids []uint64) (*uint256.Int, error) {
	release, err := guard(ctx, ids)
	if err != nil {
		return nil, err
	}
	defer release()

	db, staker := ctx.StateDB, ctx.From
	recs, err := stakerRecords(db, staker, ids)
	if err != nil {
		return nil, err
	}
	reward, err := earned(db, recs, ctx.Time)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		deleteRecord(db, id)
	}
	writeTotalStaked(db, TotalStaked(db)-uint64(len(ids)))

	if err := payout(ctx, staker, reward); err != nil {
		return nil, err
	}
	vaultCtx := ctx.WithCaller(params.VaultAddress)
	for _, id := range ids {
		if err := registry.Transfer(vaultCtx, params.VaultAddress, staker, id); err != nil {
			return nil, err
		}
	}
	log.Debug("Tokens unstaked", "staker", staker, "ids", ids, "reward", reward)
	return reward, nil
}

// Claim pays out the reward accrued by ids and restarts their accrual at
// the current time. Custody is unchanged.
func Claim(ctx *vm.Context, ids []uint64) (*uint256.Int, error) {
	release, err := guard(ctx, ids)
	if err != nil {
		return nil, err
	}
	defer release()

	db, staker := ctx.StateDB, ctx.From
	recs, err := stakerRecords(db, staker, ids)
	if err != nil {
		return nil, err
	}
	reward, err := earned(db, recs, ctx.Time)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		writeStakedAt(db, id, ctx.Time)
	}
	if err := payout(ctx, staker, reward); err != nil {
		return nil, err
	}
	log.Debug("Rewards claimed", "staker", staker, "ids", ids, "reward", reward)
	return reward, nil
}

// TokensOfOwner returns the staked ids whose staker is owner.
func TokensOfOwner(db vm.StateDB, owner common.Address) []uint64 {
	var ids []uint64
	minted := registry.TotalMinted(db)
	for id := params.FirstTokenID; id < params.FirstTokenID+minted; id++ {
		if rec, err := Record(db, id); err == nil && rec.Owner == owner {
			ids = append(ids, id)
		}
	}
	return ids
}
