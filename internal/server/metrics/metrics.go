// Package metrics exposes Prometheus instrumentation for the secret
// lifecycle: cipher operations and rotation job runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the collectors used by the crypto and rotation layers.
type Metrics struct {
	CryptoOperations *prometheus.CounterVec
	CryptoFailures   *prometheus.CounterVec
	RotationRuns     prometheus.Counter
	RotatedSecrets   prometheus.Counter
	RotationFailures prometheus.Counter
}

// New registers the collectors on the given registerer. Pass
// prometheus.DefaultRegisterer in production; tests use their own
// registry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CryptoOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gms_crypto_operations_total",
				Help: "Total number of encrypt/decrypt operations",
			},
			[]string{"operation", "mode"},
		),
		CryptoFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gms_crypto_failures_total",
				Help: "Total number of failed cipher operations",
			},
			[]string{"operation"},
		),
		RotationRuns: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "gms_rotation_runs_total",
				Help: "Total number of rotation job executions",
			},
		),
		RotatedSecrets: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "gms_rotated_secrets_total",
				Help: "Total number of secrets rotated",
			},
		),
		RotationFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "gms_rotation_failures_total",
				Help: "Total number of per-secret rotation failures",
			},
		),
	}
}
