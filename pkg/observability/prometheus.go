package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mindmap"

// Prometheus implements every hook interface with Prometheus collectors.
type Prometheus struct {
	layouts        *prometheus.CounterVec
	layoutDuration *prometheus.HistogramVec
	layoutNodes    *prometheus.HistogramVec
	renders        *prometheus.CounterVec
	renderDuration prometheus.Histogram
	cacheOps       *prometheus.CounterVec
	cacheBytes     *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// NewPrometheus registers the collectors with reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		layouts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layouts_total",
			Help:      "Layouts computed, by visualization and outcome.",
		}, []string{"viz", "status"}),
		layoutDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_duration_seconds",
			Help:      "Time spent computing layouts.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		}, []string{"viz"}),
		layoutNodes: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_nodes",
			Help:      "Nodes per laid-out map, by ring.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}, []string{"ring"}),
		renders: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Artifacts rendered, by format and outcome.",
		}, []string{"format", "status"}),
		renderDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering a format set.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		cacheOps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Cache lookups and writes, by key type and result.",
		}, []string{"key_type", "result"}),
		cacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache.",
		}, []string{"key_type"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_client_requests_total",
			Help:      "Outbound HTTP requests, by host and status code.",
		}, []string{"host", "code"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_client_duration_seconds",
			Help:      "Outbound HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"host"}),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (p *Prometheus) OnLayoutStart(_ context.Context, _ string, primary, secondary int) {
	p.layoutNodes.WithLabelValues("primary").Observe(float64(primary))
	p.layoutNodes.WithLabelValues("secondary").Observe(float64(secondary))
}

func (p *Prometheus) OnLayoutComplete(_ context.Context, vizType string, d time.Duration, err error) {
	p.layouts.WithLabelValues(vizType, status(err)).Inc()
	p.layoutDuration.WithLabelValues(vizType).Observe(d.Seconds())
}

func (p *Prometheus) OnRenderStart(context.Context, []string) {}

func (p *Prometheus) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	for _, f := range formats {
		p.renders.WithLabelValues(f, status(err)).Inc()
	}
	p.renderDuration.Observe(d.Seconds())
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheOps.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (p *Prometheus) OnRequest(context.Context, string, string, string) {}

func (p *Prometheus) OnResponse(_ context.Context, _, host, _ string, code int, d time.Duration) {
	p.httpRequests.WithLabelValues(host, strconv.Itoa(code)).Inc()
	p.httpDuration.WithLabelValues(host).Observe(d.Seconds())
}

func (p *Prometheus) OnError(_ context.Context, _, host, _ string, _ error) {
	p.httpRequests.WithLabelValues(host, "error").Inc()
}

var (
	_ PipelineHooks = (*Prometheus)(nil)
	_ CacheHooks    = (*Prometheus)(nil)
	_ HTTPHooks     = (*Prometheus)(nil)
)
