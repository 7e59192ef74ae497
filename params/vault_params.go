// Copyright 2024 The nftvault Authors
// This file is part of the nftvault library.
//
// The nftvault library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The nftvault library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the nftvault library. If not, see <http://www.gnu.org/licenses/>.

package params

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// System addresses. Each component keeps its storage slots and native
// currency balance under its own fixed address.
var (
	// CollectionAddress hosts the token registry, the primary sale and the
	// access & pause controller (pause flag, cost, supply caps, withdraw).
	CollectionAddress = common.HexToAddress("0x000000000000000000000000000000004E465431") // "NFT1"

	// LedgerAddress stores reward balances, total supply and the controller set.
	LedgerAddress = common.HexToAddress("0x0000000000000000000000000000000052574431") // "RWD1"

	// VaultAddress stores stake records and custodies staked tokens.
	VaultAddress = common.HexToAddress("0x0000000000000000000000000000000053544B31") // "STK1"
)

// Reward accrual defaults. A staked token earns
// floor(RewardRate * elapsed / RewardPeriod) smallest units.
var (
	// DefaultRewardRate is 0.001 reward unit per token per RewardPeriod.
	DefaultRewardRate = big.NewInt(1e15)

	// DefaultRewardPeriod is the accrual period in seconds.
	DefaultRewardPeriod = uint64(1)
)

// Primary sale defaults, matching the deployed collection.
var (
	DefaultMintCost           = big.NewInt(1e16) // 0.01 ether
	DefaultMaxMintAmountPerTx = uint64(5)
	DefaultMaxSupply          = uint64(30)
)

// MaxTokensPerCall bounds the number of token ids accepted by a single
// stake, unstake or claim.
const MaxTokensPerCall = 50

// FirstTokenID is the id of the first token issued by the primary sale.
const FirstTokenID = uint64(1)
