package goIdentity

import "sync/atomic"

// MetricID identifies a specific counter in the in-process metrics system.
type MetricID uint16

const (
	// MetricRegisterSuccess counts completed registrations.
	MetricRegisterSuccess MetricID = iota
	// MetricRegisterDuplicate counts registrations rejected for a taken email.
	MetricRegisterDuplicate
	// MetricRegisterInvalid counts registrations rejected before any I/O.
	MetricRegisterInvalid
	// MetricLoginSuccess counts successful credential verifications.
	MetricLoginSuccess
	// MetricLoginFailure counts failed logins (unknown email or bad password).
	MetricLoginFailure
	// MetricTokenIssued counts minted session tokens.
	MetricTokenIssued
	// MetricTokenRejected counts tokens that failed verification.
	MetricTokenRejected
	// MetricAccessAllowed counts authorization decisions that allowed.
	MetricAccessAllowed
	// MetricAccessDenied counts authorization decisions that denied.
	MetricAccessDenied
	// MetricRoleChange counts persisted role updates.
	MetricRoleChange
	// MetricRoleChangeRejected counts role updates rejected by validation or
	// a missing target.
	MetricRoleChangeRejected

	metricIDCount
)

// Metrics holds atomic counters. When disabled, all operations are no-ops.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]atomic.Uint64
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// NewMetrics creates a [Metrics] instance configured by cfg.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Inc adds one to the counter identified by id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	m.counters[id].Add(1)
}

// Snapshot returns a deep copy of the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		Counters: make(map[MetricID]uint64, metricIDCount),
	}
	if m == nil || !m.enabled {
		return snap
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		snap.Counters[id] = m.counters[id].Load()
	}
	return snap
}
