package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pagelens/internal/domain"
	"pagelens/internal/keywords"
	"pagelens/internal/sentiment"
	"pagelens/internal/summarizer"
)

// Recorder observes finished analyses. metrics.Collector implements it.
type Recorder interface {
	AnalysisCompleted(label domain.SentimentLabel)
}

// Insight is the part of a report that needs no summarizer.
type Insight struct {
	Keywords  []domain.KeywordResult
	Sentiment domain.SentimentLabel
}

type AnalyzerService struct {
	driver   *summarizer.Driver
	keywords keywords.Options
	recorder Recorder
	logger   *zap.Logger
}

var _ domain.Analyzer = (*AnalyzerService)(nil)

func NewAnalyzerService(driver *summarizer.Driver, opts keywords.Options, recorder Recorder, logger *zap.Logger) *AnalyzerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyzerService{driver: driver, keywords: opts, recorder: recorder, logger: logger}
}

// Inspect extracts keywords and classifies sentiment concurrently.
func (s *AnalyzerService) Inspect(ctx context.Context, doc domain.Document) (Insight, error) {
	var out Insight
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.Keywords = keywords.Extract(doc, s.keywords)
		return gctx.Err()
	})
	g.Go(func() error {
		out.Sentiment = sentiment.Classify(doc.BodyText())
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return Insight{}, err
	}
	return out, nil
}

// Summarize runs the chunk summarization over the document body.
func (s *AnalyzerService) Summarize(ctx context.Context, doc domain.Document) domain.SummaryReport {
	text := doc.Text
	if text == "" {
		text = doc.MainText
	}
	return s.driver.Summarize(ctx, text)
}

// Analyze builds the full report for doc. Only context cancellation makes it fail;
// summarizer failures are reported per chunk inside the report.
func (s *AnalyzerService) Analyze(ctx context.Context, doc domain.Document) (domain.Report, error) {
	insight, err := s.Inspect(ctx, doc)
	if err != nil {
		return domain.Report{}, err
	}
	summary := s.Summarize(ctx, doc)
	if err := ctx.Err(); err != nil {
		return domain.Report{}, err
	}

	s.logger.Info("analysis complete",
		zap.String("title", doc.Title),
		zap.Int("keywords", len(insight.Keywords)),
		zap.String("sentiment", string(insight.Sentiment)),
		zap.Int("chunks", len(summary.Segments)),
		zap.Int("failed_chunks", summary.Failed()),
	)
	if s.recorder != nil {
		s.recorder.AnalysisCompleted(insight.Sentiment)
	}
	return domain.Report{Keywords: insight.Keywords, Sentiment: insight.Sentiment, Summary: summary}, nil
}
