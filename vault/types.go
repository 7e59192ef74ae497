// Package vault implements the custodial staking vault. Staked tokens are
// held by params.VaultAddress and accrue reward tokens, minted through the
// ledger, proportionally to the time they stay staked.
package vault

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tos-network/nftvault/core/vm"
)

// StakeRecord describes one staked token.
type StakeRecord struct {
	TokenID  uint64         `json:"tokenId"`
	Owner    common.Address `json:"owner"`
	StakedAt uint64         `json:"stakedAt"`
}

// Sentinel errors returned by vault operations.
var (
	ErrEmptyBatch     = fmt.Errorf("%w: vault: no token ids given", vm.ErrValidation)
	ErrBatchTooLarge  = fmt.Errorf("%w: vault: too many token ids", vm.ErrValidation)
	ErrDuplicateToken = fmt.Errorf("%w: vault: duplicate token id", vm.ErrValidation)
	ErrInvalidPeriod  = fmt.Errorf("%w: vault: reward period must be at least 1 second", vm.ErrValidation)
	ErrNotTokenOwner  = fmt.Errorf("%w: vault: caller does not own the token", vm.ErrUnauthorized)
	ErrNotStaker      = fmt.Errorf("%w: vault: caller is not the staker", vm.ErrUnauthorized)
	ErrNotStaked      = fmt.Errorf("%w: vault: token is not staked", vm.ErrNotFound)
	ErrAlreadyStaked  = fmt.Errorf("%w: vault: token already staked", vm.ErrInvariantViolation)
	ErrReentrant      = fmt.Errorf("%w: vault: reentrant call", vm.ErrInvariantViolation)
	ErrRewardOverflow = fmt.Errorf("%w: vault: reward overflow", vm.ErrInvariantViolation)
)
