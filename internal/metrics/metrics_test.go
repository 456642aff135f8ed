package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagelens/internal/domain"
)

func TestCollectorCounters(t *testing.T) {
	c := New(prometheus.NewRegistry())

	c.ChunkSummarized(nil)
	c.ChunkSummarized(nil)
	c.ChunkSummarized(errors.New("boom"))
	c.AnalysisCompleted(domain.Positive)

	assert.InDelta(t, 2, testutil.ToFloat64(c.chunkSummaries.WithLabelValues("ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.chunkSummaries.WithLabelValues("error")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.analyses.WithLabelValues("Positive")), 0)
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := New(nil)
	r := gin.New()
	r.Use(c.Middleware())
	r.GET("/health", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(c.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.InDelta(t, 1, testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "/health", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "unmatched", "404")), 0)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "pagelens_http_requests_total"))
	assert.Contains(t, body, "pagelens_http_request_duration_seconds")
}
