package state

import "github.com/tos-network/nftvault/metrics"

var (
	storageUpdatedMeter = metrics.Meter("state/update/storage")
	storageDeletedMeter = metrics.Meter("state/delete/storage")
	balanceUpdatedMeter = metrics.Meter("state/update/balance")
	eventCommittedMeter = metrics.Meter("state/commit/events")
	revertMeter         = metrics.Meter("state/revert")
	commitTimer         = metrics.Timer("state/commit/time")
	cacheHitMeter       = metrics.Meter("state/cache/hit")
	cacheMissMeter      = metrics.Meter("state/cache/miss")
)
