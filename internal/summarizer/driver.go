package summarizer

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pagelens/internal/chunker"
	"pagelens/internal/domain"
	"pagelens/internal/textutil"
)

// Recorder observes per-chunk outcomes. metrics.Collector implements it.
type Recorder interface {
	ChunkSummarized(err error)
}

// Driver summarizes text chunk by chunk. A failing chunk is recorded and
// never stops the others; results always come back in chunk order.
type Driver struct {
	summarizer  domain.Summarizer
	chunker     *chunker.SentenceChunker
	concurrency int
	recorder    Recorder
	logger      *zap.Logger
}

// DriverOption customizes a Driver.
type DriverOption func(*Driver)

// WithConcurrency sets how many chunk requests may be in flight at once.
func WithConcurrency(n int) DriverOption {
	return func(d *Driver) {
		if n > 0 {
			d.concurrency = n
		}
	}
}

// WithRecorder reports every chunk outcome to r.
func WithRecorder(r Recorder) DriverOption {
	return func(d *Driver) { d.recorder = r }
}

// WithLogger sets the driver logger.
func WithLogger(l *zap.Logger) DriverOption {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDriver builds a Driver that splits text with c and summarizes each
// chunk with s. Requests run one at a time unless WithConcurrency is given.
func NewDriver(s domain.Summarizer, c *chunker.SentenceChunker, opts ...DriverOption) *Driver {
	if c == nil {
		c = chunker.NewSentenceChunker(chunker.DefaultMaxWords)
	}
	d := &Driver{summarizer: s, chunker: c, concurrency: 1, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Summarize chunks text and summarizes every chunk. Text without any chunk
// yields a report with Empty set.
func (d *Driver) Summarize(ctx context.Context, text string) domain.SummaryReport {
	chunks := d.chunker.Chunk(text)
	if len(chunks) == 0 {
		return domain.SummaryReport{Empty: true}
	}

	segments := make([]domain.ChunkSummary, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)
	for i, ch := range chunks {
		i, ch := i, ch
		g.Go(func() error {
			seg := domain.ChunkSummary{Index: i, Chunk: ch}
			summary, err := d.summarizer.Summarize(gctx, ch.Text)
			if err != nil {
				d.logger.Warn("chunk summarization failed",
					zap.Int("chunk", i+1), zap.Int("chunks", len(chunks)), zap.Error(err))
				seg.Err = err
			} else {
				seg.Summary = textutil.CleanSummary(summary)
			}
			if d.recorder != nil {
				d.recorder.ChunkSummarized(err)
			}
			segments[i] = seg
			// Per-chunk failures stay in the segment so siblings keep running.
			return nil
		})
	}
	_ = g.Wait()
	return domain.SummaryReport{Segments: segments}
}
