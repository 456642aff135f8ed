package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pagelens/internal/metrics"
)

// NewRouter wires every route. m may be nil, in which case /metrics is not served.
func NewRouter(h *Handler, m *metrics.Collector, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	router := gin.New()

	// CORS first so preflight requests never reach the handlers.
	router.Use(corsMiddleware())
	if m != nil {
		router.Use(m.Middleware())
	}
	router.Use(loggerMiddleware(log))
	router.Use(recoveryMiddleware(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// Summarization contract used by the remote summarizer client.
	router.POST("/analyze", h.Analyze)

	v1 := router.Group("/api/v1")
	v1.POST("/keywords", h.Keywords)
	v1.POST("/sentiment", h.Sentiment)
	v1.POST("/chunks", h.Chunks)
	v1.POST("/report", h.Report)

	return router
}
