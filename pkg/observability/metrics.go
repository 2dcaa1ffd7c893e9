package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the kernel's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	ProposalsTotal *prometheus.CounterVec
	GraphNodes     prometheus.Gauge
	GraphEdges     prometheus.Gauge
	HTTPDuration   *prometheus.HistogramVec
}

// NewMetrics creates and registers all collectors on a private registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		ProposalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "uavi",
			Name:      "proposals_total",
			Help:      "Proposals processed by the kernel, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		GraphNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "uavi",
			Name:      "graph_nodes",
			Help:      "Nodes currently in the graph, error nodes included.",
		}),
		GraphEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "uavi",
			Name:      "graph_edges",
			Help:      "Edges currently in the edge log.",
		}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "uavi",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method, route, and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	registry.MustRegister(
		m.ProposalsTotal,
		m.GraphNodes,
		m.GraphEdges,
		m.HTTPDuration,
	)

	return m
}

// ObserveProposal records one proposal outcome.
func (m *Metrics) ObserveProposal(kind string, accepted bool) {
	outcome := "accepted"
	if !accepted {
		outcome = "rejected"
	}
	m.ProposalsTotal.WithLabelValues(kind, outcome).Inc()
}

// SetGraphSize updates the node and edge gauges.
func (m *Metrics) SetGraphSize(nodes, edges int) {
	m.GraphNodes.Set(float64(nodes))
	m.GraphEdges.Set(float64(edges))
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
