// SPDX-License-Identifier: Apache-2.0

package analyzer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for analyzer runs, mirroring the teacher's
// abac_evaluate_duration_seconds / abac_policy_evaluations_total pair
// (internal/access/policy/metrics.go).
var (
	analyzeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "privguard_analyze_duration_seconds",
		Help:    "Histogram of analyze() run latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	residualEffectTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "privguard_residual_effect_total",
		Help: "Total number of analyze() runs by residual policy effect",
	}, []string{"effect"})
)

// recordRunMetrics records the completed run's duration and residual effect.
func recordRunMetrics(seconds float64, effect Effect) {
	analyzeDuration.Observe(seconds)
	residualEffectTotal.WithLabelValues(string(effect)).Inc()
}
