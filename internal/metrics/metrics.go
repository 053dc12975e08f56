// Package metrics exposes Prometheus counters for webhook verification.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"webhook-verifier/internal/signature"
)

// VerificationMetrics counts verification outcomes and replay rejections
type VerificationMetrics struct {
	Verifications *prometheus.CounterVec
	Replays       *prometheus.CounterVec
}

// NewVerificationMetrics creates the metrics and registers them with reg
func NewVerificationMetrics(reg prometheus.Registerer) *VerificationMetrics {
	factory := promauto.With(reg)

	return &VerificationMetrics{
		Verifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhook_signature_verifications_total",
				Help: "Webhook signature verifications by provider, scheme and result",
			},
			[]string{"provider", "scheme", "result"},
		),
		Replays: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhook_replays_rejected_total",
				Help: "Verified webhooks rejected because their signature was already seen",
			},
			[]string{"provider"},
		),
	}
}

// Observe implements signature.Recorder
func (m *VerificationMetrics) Observe(provider, scheme string, reason signature.Reason) {
	m.Verifications.WithLabelValues(provider, scheme, reason.Label()).Inc()
}

// ObserveReplay records a rejected replay for provider
func (m *VerificationMetrics) ObserveReplay(provider string) {
	m.Replays.WithLabelValues(provider).Inc()
}
