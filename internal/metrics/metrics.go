// Package metrics exposes Prometheus counters for the analysis pipeline and
// the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pagelens/internal/domain"
)

const namespace = "pagelens"

// Collector holds every pagelens metric. Build one per registry.
type Collector struct {
	gatherer prometheus.Gatherer

	httpRequests    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	analyses        *prometheus.CounterVec
	chunkSummaries  *prometheus.CounterVec
}

// New registers the pagelens metrics on reg. Passing nil uses a fresh
// private registry.
func New(reg *prometheus.Registry) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	c := &Collector{
		gatherer: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"method", "route"}),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Completed page analyses, by sentiment label.",
		}, []string{"sentiment"}),
		chunkSummaries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunk_summaries_total",
			Help:      "Chunk summarization attempts, by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(c.httpRequests, c.requestDuration, c.analyses, c.chunkSummaries)
	return c
}

// ChunkSummarized counts one chunk outcome.
func (c *Collector) ChunkSummarized(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.chunkSummaries.WithLabelValues(outcome).Inc()
}

// AnalysisCompleted counts a finished analysis.
func (c *Collector) AnalysisCompleted(label domain.SentimentLabel) {
	c.analyses.WithLabelValues(string(label)).Inc()
}

// Middleware records request count and latency per matched route.
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method
		c.httpRequests.WithLabelValues(method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
