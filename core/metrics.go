package core

import "github.com/tos-network/nftvault/metrics"

var (
	actionSuccessMeter = metrics.Meter("sequencer/actions/success")
	actionFailedMeter  = metrics.Meter("sequencer/actions/failed")
	actionRejectMeter  = metrics.Meter("sequencer/actions/rejected")
	applyTimer         = metrics.Timer("sequencer/apply")
)
