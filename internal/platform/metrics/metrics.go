// Package metrics provides Prometheus collectors for the age gate.
// Labels are bounded enums only; never membership ids or field values.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SignupChecksTotal counts signup gate decisions by outcome.
	SignupChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agegate_signup_checks_total",
		Help: "Total number of signup attempts evaluated by the age gate, by outcome.",
	}, []string{"outcome"})

	// SignupGateFailuresTotal counts gate evaluations that failed open.
	SignupGateFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agegate_signup_gate_failures_total",
		Help: "Total number of signup checks that hit an internal error and let the signup through.",
	})

	// SettingsSavesTotal counts settings submissions.
	SettingsSavesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agegate_settings_saves_total",
		Help: "Total number of settings submissions persisted.",
	})

	// SettingsNoticesTotal counts validation notices by code.
	SettingsNoticesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agegate_settings_notices_total",
		Help: "Total number of settings validation notices, by code.",
	}, []string{"code"})

	// HTTPRequestDuration observes request latency by route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agegate_http_request_duration_seconds",
		Help:    "HTTP request latency, by method, route pattern and status code.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// DBQueryDuration observes database call latency by operation.
	DBQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agegate_db_query_duration_seconds",
		Help:    "Database call latency, by operation.",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"op"})
)
