package authsession

import "sync/atomic"

// MetricID identifies one lifecycle counter.
type MetricID uint8

const (
	// MetricLogin counts successful Login transitions.
	MetricLogin MetricID = iota
	// MetricLoginExpiredToken counts Login calls handed an already-expired token.
	MetricLoginExpiredToken
	// MetricLogoutManual counts explicit Logout calls that ended a session.
	MetricLogoutManual
	// MetricLogoutExpired counts auto-logouts fired by the expiry timer.
	MetricLogoutExpired
	// MetricRestoreResumed counts startup restorations that resumed a session.
	MetricRestoreResumed
	// MetricRestoreExpired counts startup restorations that found a stale token.
	MetricRestoreExpired
	// MetricDecodeFailure counts access tokens that did not decode.
	MetricDecodeFailure
	// MetricStorageDegraded counts the transition to memory-only storage.
	MetricStorageDegraded
	metricIDCount
)

// Metrics is a fixed set of atomic counters over session transitions. All
// methods are safe for concurrent use and tolerate a nil receiver.
type Metrics struct {
	counters [metricIDCount]atomic.Uint64
}

func newMetrics() *Metrics {
	return &Metrics{}
}

// Inc adds one to the given counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || id >= metricIDCount {
		return
	}
	m.counters[id].Add(1)
}

// Get returns the current value of one counter.
func (m *Metrics) Get(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return m.counters[id].Load()
}

// Snapshot copies every counter into a map.
func (m *Metrics) Snapshot() map[MetricID]uint64 {
	snapshot := make(map[MetricID]uint64, metricIDCount)
	if m == nil {
		return snapshot
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		snapshot[id] = m.counters[id].Load()
	}
	return snapshot
}
