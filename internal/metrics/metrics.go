// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups every collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	RPCRequests   *prometheus.CounterVec
	RPCDuration   *prometheus.HistogramVec
	Settlements   *prometheus.CounterVec
	RosterFetches *prometheus.CounterVec
	Trips         prometheus.Gauge
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qitta",
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "qitta",
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		Settlements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qitta",
			Name:      "settlement_operations_total",
			Help:      "Settlement operations applied to trips.",
		}, []string{"operation"}),
		RosterFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qitta",
			Name:      "roster_fetches_total",
			Help:      "Roster fetch attempts by source (direct, proxy) and result.",
		}, []string{"source", "result"}),
		Trips: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "qitta",
			Name:      "trips",
			Help:      "Number of stored trips.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RPCRequests, m.RPCDuration, m.Settlements, m.RosterFetches, m.Trips,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRPC records one finished call.
func (m *Metrics) ObserveRPC(procedure, code string, took time.Duration) {
	if m == nil {
		return
	}
	m.RPCRequests.WithLabelValues(procedure, code).Inc()
	m.RPCDuration.WithLabelValues(procedure).Observe(took.Seconds())
}

// Settled counts a successful settlement operation.
func (m *Metrics) Settled(operation string) {
	if m == nil {
		return
	}
	m.Settlements.WithLabelValues(operation).Inc()
}

// RosterFetched counts a roster fetch attempt.
func (m *Metrics) RosterFetched(source string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.RosterFetches.WithLabelValues(source, result).Inc()
}

// SetTrips updates the stored trip count.
func (m *Metrics) SetTrips(n int) {
	if m == nil {
		return
	}
	m.Trips.Set(float64(n))
}
