package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"pagelens/internal/api"
	"pagelens/internal/app"
	"pagelens/internal/config"
	"pagelens/internal/logging"
	"pagelens/internal/metrics"
	"pagelens/internal/summarizer"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "", "Path to config YAML (optional; uses ~/.config/pagelens/config.yaml if not provided)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if *cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(*cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.New(reg)

	// /analyze is the summarization endpoint itself, so it always uses the
	// local summarizer. Reports use the configured one.
	local := summarizer.NewFrequencySummarizer(cfg.Summarizer.MaxSentences)
	reportSummarizer, err := app.NewSummarizer(cfg.Summarizer, logger)
	if err != nil {
		logger.Fatal("summarizer init failed", zap.Error(err))
	}
	analyzer := app.NewAnalyzer(cfg, reportSummarizer, collector, logger)

	gin.SetMode(gin.ReleaseMode)
	handler := api.NewHandler(analyzer, local, api.Options{
		Keywords:      app.KeywordOptions(cfg.Analysis),
		ChunkWordSize: cfg.Analysis.ChunkWordSize,
		MaxInputChars: cfg.Server.MaxInputChars,
	}, logger.Named("api"))

	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           api.NewRouter(handler, collector, logger.Named("http")),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("summarizer", cfg.Summarizer.Type))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
