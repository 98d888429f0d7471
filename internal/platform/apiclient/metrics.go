// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apiclient

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records content API calls in Prometheus.
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "postly",
			Subsystem: "api_client",
			Name:      "calls_total",
			Help:      "Content API calls by method and outcome.",
		}, []string{"method", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "postly",
			Subsystem: "api_client",
			Name:      "call_duration_seconds",
			Help:      "Content API call latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	registerer.MustRegister(metrics.calls, metrics.duration)
	return metrics
}

func (metrics *Metrics) observe(method, outcome string, elapsed time.Duration) {
	if metrics == nil {
		return
	}
	metrics.calls.WithLabelValues(method, outcome).Inc()
	metrics.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}
