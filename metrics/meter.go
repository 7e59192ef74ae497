package metrics

import (
	"time"

	gethmetrics "github.com/ethereum/go-ethereum/metrics"
)

// Meter names a meter in the default registry. The meter is looked up on
// every use, so packages may declare their meters before Setup runs. While
// collection is disabled nothing is recorded or registered.
type Meter string

func (m Meter) get() gethmetrics.Meter {
	if !gethmetrics.Enabled {
		return gethmetrics.NilMeter{}
	}
	return gethmetrics.GetOrRegisterMeter(string(m), nil)
}

// Mark records n events.
func (m Meter) Mark(n int64) { m.get().Mark(n) }

// Count returns the number of events recorded since collection was enabled.
func (m Meter) Count() int64 { return m.get().Count() }

// Timer names a timer in the default registry, resolved like Meter.
type Timer string

func (t Timer) get() gethmetrics.Timer {
	if !gethmetrics.Enabled {
		return gethmetrics.NilTimer{}
	}
	return gethmetrics.GetOrRegisterTimer(string(t), nil)
}

// UpdateSince records the duration elapsed since start.
func (t Timer) UpdateSince(start time.Time) { t.get().UpdateSince(start) }

// Count returns the number of durations recorded.
func (t Timer) Count() int64 { return t.get().Count() }
