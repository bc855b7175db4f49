// Copyright 2024-2026 Aiku AI

package connector

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vinceyyy/puppet-padlocal/pkg/padlocal"
	"github.com/vinceyyy/puppet-padlocal/pkg/schemamapper"
)

// Metrics counts message mapping outcomes.
type Metrics struct {
	MessagesMapped  *prometheus.CounterVec
	MessagesFailed  prometheus.Counter
	MessagesSkipped *prometheus.CounterVec
	DecodeFailures  *prometheus.CounterVec
}

// NewMetrics creates the connector metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		MessagesMapped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "padlocal",
			Name:      "messages_mapped_total",
			Help:      "Messages converted to puppet payloads, by outward type",
		}, []string{"type"}),
		MessagesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "padlocal",
			Name:      "messages_failed_total",
			Help:      "Messages that could not be mapped",
		}),
		MessagesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "padlocal",
			Name:      "messages_skipped_total",
			Help:      "Mapped messages not relayed, by reason",
		}, []string{"reason"}),
		DecodeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "padlocal",
			Name:      "decode_failures_total",
			Help:      "Embedded payloads that failed to decode, by decoder",
		}, []string{"stage"}),
	}
	if reg != nil {
		reg.MustRegister(m.MessagesMapped, m.MessagesFailed, m.MessagesSkipped, m.DecodeFailures)
	}
	return m
}

// DecodeErrorHook adapts the metrics to schemamapper.WithDecodeErrorHook.
func (m *Metrics) DecodeErrorHook() schemamapper.DecodeErrorHook {
	return func(stage schemamapper.DecodeStage, _ *padlocal.Message, _ error) {
		m.DecodeFailures.WithLabelValues(string(stage)).Inc()
	}
}
