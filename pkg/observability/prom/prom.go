// Package prom implements the observability hooks with Prometheus metrics.
package prom

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics implements every observability hook interface.
type Metrics struct {
	points          *prometheus.CounterVec
	generateSeconds *prometheus.HistogramVec
	renders         *prometheus.CounterVec
	renderSeconds   *prometheus.HistogramVec
	renderBytes     *prometheus.HistogramVec
	cacheEvents     *prometheus.CounterVec
	requests        *prometheus.CounterVec
	requestSeconds  *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		points: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ifscope_points_generated_total",
			Help: "Points emitted by the chaos game.",
		}, []string{"system"}),
		generateSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ifscope_generate_duration_seconds",
			Help:    "Duration of chaos-game runs.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"system"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ifscope_renders_total",
			Help: "Artifacts rendered, by format and outcome.",
		}, []string{"format", "outcome"}),
		renderSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ifscope_render_duration_seconds",
			Help:    "Duration of sink rendering.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"format"}),
		renderBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ifscope_render_size_bytes",
			Help:    "Size of rendered artifacts.",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		}, []string{"format"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ifscope_cache_events_total",
			Help: "Artifact cache lookups and writes.",
		}, []string{"format", "event"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ifscope_http_requests_total",
			Help: "HTTP requests served.",
		}, []string{"method", "route", "status"}),
		requestSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ifscope_http_request_duration_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		m.points, m.generateSeconds,
		m.renders, m.renderSeconds, m.renderBytes,
		m.cacheEvents,
		m.requests, m.requestSeconds,
	)
	return m
}

func (m *Metrics) OnGenerateStart(context.Context, string, int) {}

func (m *Metrics) OnGenerateComplete(_ context.Context, system string, points int, d time.Duration) {
	m.points.WithLabelValues(system).Add(float64(points))
	m.generateSeconds.WithLabelValues(system).Observe(d.Seconds())
}

func (m *Metrics) OnRenderStart(context.Context, string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		m.renders.WithLabelValues(format, "error").Inc()
		return
	}
	m.renders.WithLabelValues(format, "ok").Inc()
	m.renderSeconds.WithLabelValues(format).Observe(d.Seconds())
	m.renderBytes.WithLabelValues(format).Observe(float64(size))
}

func (m *Metrics) OnCacheHit(_ context.Context, format string) {
	m.cacheEvents.WithLabelValues(format, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, format string) {
	m.cacheEvents.WithLabelValues(format, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, format string, _ int) {
	m.cacheEvents.WithLabelValues(format, "set").Inc()
}

func (m *Metrics) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestSeconds.WithLabelValues(method, route).Observe(d.Seconds())
}
