// Package app assembles the analysis pipeline from configuration.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"pagelens/internal/chunker"
	"pagelens/internal/config"
	"pagelens/internal/domain"
	"pagelens/internal/keywords"
	"pagelens/internal/service"
	"pagelens/internal/summarizer"
)

// Recorder receives pipeline events; metrics.Collector satisfies it.
type Recorder interface {
	summarizer.Recorder
	service.Recorder
}

// NewSummarizer builds the summarizer selected by cfg.Type.
func NewSummarizer(cfg config.SummarizerConfig, log *zap.Logger) (domain.Summarizer, error) {
	switch cfg.Type {
	case config.SummarizerRemote, "":
		return summarizer.NewRemote(summarizer.RemoteConfig{
			URL:        cfg.URL,
			Timeout:    cfg.Timeout(),
			MaxRetries: cfg.MaxRetries,
			Logger:     log.Named("remote"),
		}), nil
	case config.SummarizerFrequency:
		return summarizer.NewFrequencySummarizer(cfg.MaxSentences), nil
	default:
		return nil, fmt.Errorf("unknown summarizer: %s", cfg.Type)
	}
}

// KeywordOptions maps the analysis section onto extractor options.
func KeywordOptions(cfg config.AnalysisConfig) keywords.Options {
	return keywords.Options{
		MaxKeywords:         cfg.MaxKeywords,
		MinCount:            cfg.MinCount,
		CandidatePoolFactor: cfg.CandidatePoolFactor,
	}
}

// NewAnalyzer wires chunker, summarizer driver and analyzer service. rec may be nil.
func NewAnalyzer(cfg *config.AppConfig, s domain.Summarizer, rec Recorder, log *zap.Logger) *service.AnalyzerService {
	opts := []summarizer.DriverOption{
		summarizer.WithConcurrency(cfg.Summarizer.Concurrency),
		summarizer.WithLogger(log.Named("driver")),
	}
	var svcRec service.Recorder
	if rec != nil {
		opts = append(opts, summarizer.WithRecorder(rec))
		svcRec = rec
	}
	driver := summarizer.NewDriver(s, chunker.NewSentenceChunker(cfg.Analysis.ChunkWordSize), opts...)
	return service.NewAnalyzerService(driver, KeywordOptions(cfg.Analysis), svcRec, log.Named("analyzer"))
}
