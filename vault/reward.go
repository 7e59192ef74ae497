package vault

import (
	"github.com/holiman/uint256"
	"github.com/tos-network/nftvault/core/vm"
)

// accrue returns floor(rate * (now - stakedAt) / period). Timestamps before
// stakedAt yield zero.
func accrue(rate *uint256.Int, period uint64, stakedAt, now uint64) (*uint256.Int, error) {
	if now <= stakedAt || period == 0 {
		return new(uint256.Int), nil
	}
	reward, overflow := new(uint256.Int).MulOverflow(rate, uint256.NewInt(now-stakedAt))
	if overflow {
		return nil, ErrRewardOverflow
	}
	if period > 1 {
		reward.Div(reward, uint256.NewInt(period))
	}
	return reward, nil
}

// earned sums the rewards accrued by recs at now.
func earned(db vm.StateDB, recs []StakeRecord, now uint64) (*uint256.Int, error) {
	rate, period := Rate(db)
	total := new(uint256.Int)
	for _, rec := range recs {
		r, err := accrue(rate, period, rec.StakedAt, now)
		if err != nil {
			return nil, err
		}
		if _, overflow := total.AddOverflow(total, r); overflow {
			return nil, ErrRewardOverflow
		}
	}
	return total, nil
}

// Earned returns the reward the given staked tokens would pay out at now.
func Earned(db vm.StateDB, ids []uint64, now uint64) (*uint256.Int, error) {
	recs := make([]StakeRecord, 0, len(ids))
	for _, id := range ids {
		rec, err := Record(db, id)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return earned(db, recs, now)
}
