// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics exposes process metrics in the Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "offering_publisher"

// Metrics holds the collectors of one process on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	bootstrapState prometheus.Gauge
	transportUp    *prometheus.GaugeVec
	proxyRequests  *prometheus.CounterVec
	proxyDuration  *prometheus.HistogramVec
}

// New registers the process collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		bootstrapState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bootstrap_state",
			Help:      "Current bootstrap state, 6 is ready and -1 is aborted.",
		}),
		transportUp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transport_up",
			Help:      "Whether a transport is serving.",
		}, []string{"transport"}),
		proxyRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "rpc_requests_total",
			Help:      "JSON calls proxied to the gRPC transport.",
		}, []string{"method", "code"}),
		proxyDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "rpc_request_duration_seconds",
			Help:      "Latency of JSON calls proxied to the gRPC transport.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.bootstrapState,
		m.transportUp,
		m.proxyRequests,
		m.proxyDuration,
	)

	return m
}

// SetBootstrapState records the numeric bootstrap state.
func (m *Metrics) SetBootstrapState(state int) {
	m.bootstrapState.Set(float64(state))
}

// SetTransportUp marks a transport as serving or stopped.
func (m *Metrics) SetTransportUp(transport string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	m.transportUp.WithLabelValues(transport).Set(v)
}

// ObserveProxyCall records one proxied call.
func (m *Metrics) ObserveProxyCall(method, code string, seconds float64) {
	m.proxyRequests.WithLabelValues(method, code).Inc()
	m.proxyDuration.WithLabelValues(method).Observe(seconds)
}

// Registry returns the registry collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
