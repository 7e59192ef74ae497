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

// Native currency denominations.
const (
	Wei   = 1
	GWei  = 1e9
	Ether = 1e18
)

// RewardDecimals is the number of decimals of the reward token. One reward
// unit is 10^RewardDecimals of the ledger's smallest unit.
const RewardDecimals = 18

// RewardUnit is one whole reward token expressed in smallest units.
const RewardUnit = 1e18
