// Package prom implements the observability hooks with Prometheus metrics.
//
// Metrics are registered on a private registry rather than the global
// default, so several Metrics values can coexist in one process (tests).
// The CLI is short-lived and serves no HTTP, so metrics are exported by
// writing the node_exporter textfile format with [Metrics.WriteTextfile].
package prom

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/isograph/pkg/observability"
)

// Namespace prefixes every metric name.
const Namespace = "isograph"

// Metrics holds all collectors. It implements every hook interface in
// package observability.
type Metrics struct {
	registry *prometheus.Registry

	Conversions   *prometheus.CounterVec
	ParseDuration prometheus.Histogram
	WriteDuration prometheus.Histogram
	GraphNodes    prometheus.Gauge
	GraphEdges    prometheus.Gauge

	LedgerTouches *prometheus.CounterVec
	LedgerSize    prometheus.Gauge
	Evictions     *prometheus.CounterVec

	Resolutions *prometheus.CounterVec

	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPErrors   *prometheus.CounterVec
}

// New creates a Metrics with all collectors registered.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "conversions_total",
			Help:      "Graph conversions by stage and outcome",
		}, []string{"stage", "status"}),
		ParseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "parse_duration_seconds",
			Help:      "GraphML parse duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		WriteDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "write_duration_seconds",
			Help:      "Artifact write duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		GraphNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "graph_nodes",
			Help:      "Node count of the last parsed graph",
		}),
		GraphEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "graph_edges",
			Help:      "Edge count of the last parsed graph",
		}),
		LedgerTouches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "ledger_touches_total",
			Help:      "Retention ledger updates by outcome",
		}, []string{"status"}),
		LedgerSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "ledger_size",
			Help:      "Number of retained artifacts after the last update",
		}),
		Evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "evictions_total",
			Help:      "Evicted artifacts by cleanup outcome",
		}, []string{"status"}),
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "resolutions_total",
			Help:      "Protein identifier resolutions",
		}, []string{"remote", "status"}),
		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "cache_hits_total",
			Help:      "Response cache hits",
		}, []string{"key_type"}),
		CacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "cache_misses_total",
			Help:      "Response cache misses",
		}, []string{"key_type"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Outgoing HTTP requests",
		}, []string{"method", "host", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Outgoing HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "host"}),
		HTTPErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_errors_total",
			Help:      "Outgoing HTTP requests that failed without a response",
		}, []string{"method", "host"}),
	}

	m.registry.MustRegister(
		m.Conversions, m.ParseDuration, m.WriteDuration, m.GraphNodes, m.GraphEdges,
		m.LedgerTouches, m.LedgerSize, m.Evictions,
		m.Resolutions,
		m.CacheHits, m.CacheMisses,
		m.HTTPRequests, m.HTTPDuration, m.HTTPErrors,
	)
	return m
}

// Register installs m as the global hooks for every category.
func (m *Metrics) Register() {
	observability.SetPipelineHooks(m)
	observability.SetRetentionHooks(m)
	observability.SetResolverHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes all metrics to path in the text exposition format.
// The file is written atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnParseStart(context.Context, string) {}

func (m *Metrics) OnParseComplete(_ context.Context, _ string, nodes, edges int, d time.Duration, err error) {
	m.Conversions.WithLabelValues("parse", status(err)).Inc()
	m.ParseDuration.Observe(d.Seconds())
	if err == nil {
		m.GraphNodes.Set(float64(nodes))
		m.GraphEdges.Set(float64(edges))
	}
}

func (m *Metrics) OnWriteStart(context.Context, string) {}

func (m *Metrics) OnWriteComplete(_ context.Context, _ string, d time.Duration, err error) {
	m.Conversions.WithLabelValues("write", status(err)).Inc()
	m.WriteDuration.Observe(d.Seconds())
}

func (m *Metrics) OnTouch(_ context.Context, _ string, size int, _ []string, _ time.Duration, err error) {
	m.LedgerTouches.WithLabelValues(status(err)).Inc()
	if err == nil {
		m.LedgerSize.Set(float64(size))
	}
}

func (m *Metrics) OnEvict(_ context.Context, _ string, err error) {
	m.Evictions.WithLabelValues(status(err)).Inc()
}

func (m *Metrics) OnResolve(_ context.Context, _ string, remote bool, _ time.Duration, err error) {
	m.Resolutions.WithLabelValues(strconv.FormatBool(remote), status(err)).Inc()
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheHits.WithLabelValues(keyType).Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheMisses.WithLabelValues(keyType).Inc()
}

func (m *Metrics) OnCacheSet(context.Context, string, int) {}

func (m *Metrics) OnRequest(context.Context, string, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, method, host, _ string, code int, d time.Duration) {
	m.HTTPRequests.WithLabelValues(method, host, strconv.Itoa(code)).Inc()
	m.HTTPDuration.WithLabelValues(method, host).Observe(d.Seconds())
}

func (m *Metrics) OnError(_ context.Context, method, host, _ string, _ error) {
	m.HTTPErrors.WithLabelValues(method, host).Inc()
}

var (
	_ observability.PipelineHooks  = (*Metrics)(nil)
	_ observability.RetentionHooks = (*Metrics)(nil)
	_ observability.ResolverHooks  = (*Metrics)(nil)
	_ observability.CacheHooks     = (*Metrics)(nil)
	_ observability.HTTPHooks      = (*Metrics)(nil)
)
