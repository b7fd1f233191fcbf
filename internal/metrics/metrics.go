// Package metrics implements the observability hooks with Prometheus
// collectors.
//
// Collectors are registered on the registerer passed to [New], never on the
// global default registry, so tests and multiple servers in one process do
// not collide:
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(reg)
//	runner.Hooks = m.Hooks()
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/BardicNoel/perktree/pkg/observability"
)

// Namespace for all metrics
const namespace = "perktree"

// Metrics holds the Prometheus collectors and implements
// observability.PipelineHooks, observability.CacheHooks and
// observability.HTTPHooks.
type Metrics struct {
	LayoutsTotal          *prometheus.CounterVec
	LayoutDurationSeconds prometheus.Histogram
	LayoutNodes           prometheus.Histogram
	FallbackTreesTotal    prometheus.Counter
	RendersTotal          *prometheus.CounterVec
	CacheEventsTotal      *prometheus.CounterVec
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPDurationSeconds   *prometheus.HistogramVec
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.HTTPHooks     = (*Metrics)(nil)
)

// New creates the collectors and registers them on reg.
// It panics if a collector with the same name is already registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LayoutsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layouts_total",
			Help:      "Layouts computed, by status.",
		}, []string{"status"}),
		LayoutDurationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_duration_seconds",
			Help:      "Time spent computing a layout, cache misses only.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		LayoutNodes: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_nodes",
			Help:      "Number of nodes per computed layout.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		FallbackTreesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_trees_total",
			Help:      "Trees placed by the cycle-tolerant fallback path.",
		}),
		RendersTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Render runs, by status.",
		}, []string{"status"}),
		CacheEventsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Cache lookups and writes, by key type and event.",
		}, []string{"key_type", "event"}),
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served, by method, route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDurationSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency, by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Hooks returns m wired into every hook slot.
func (m *Metrics) Hooks() observability.Hooks {
	return observability.Hooks{Pipeline: m, Cache: m, HTTP: m}
}

// =============================================================================
// Pipeline hooks
// =============================================================================

func (m *Metrics) OnLayoutStart(context.Context, int) {}

func (m *Metrics) OnLayoutComplete(_ context.Context, nodeCount int, d time.Duration, err error) {
	m.LayoutsTotal.WithLabelValues(status(err)).Inc()
	if err != nil {
		return
	}
	m.LayoutDurationSeconds.Observe(d.Seconds())
	m.LayoutNodes.Observe(float64(nodeCount))
}

func (m *Metrics) OnFallback(context.Context, string) {
	m.FallbackTreesTotal.Inc()
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, err error) {
	m.RendersTotal.WithLabelValues(status(err)).Inc()
}

// =============================================================================
// Cache hooks
// =============================================================================

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheEventsTotal.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheEventsTotal.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, _ int) {
	m.CacheEventsTotal.WithLabelValues(keyType, "set").Inc()
}

func (m *Metrics) OnCacheError(_ context.Context, keyType string, _ error) {
	m.CacheEventsTotal.WithLabelValues(keyType, "error").Inc()
}

// =============================================================================
// HTTP hooks
// =============================================================================

func (m *Metrics) OnRequest(context.Context, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.HTTPDurationSeconds.WithLabelValues(method, route).Observe(d.Seconds())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
