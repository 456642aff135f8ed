package domain

import (
	"context"
	"fmt"
)

// Document holds the textual zones of a single page.
// Text is the zone chosen for body analysis: the main content when it is
// long enough, otherwise the full page text.
type Document struct {
	Title     string   `json:"title"`
	Headings  []string `json:"headings"`
	MainText  string   `json:"mainText"`
	NoiseText string   `json:"noiseText"`
	Text      string   `json:"text"`
}

// BodyText returns the main content, falling back to Text.
func (d Document) BodyText() string {
	if d.MainText != "" {
		return d.MainText
	}
	return d.Text
}

// Chunk is a sentence-aligned slice of text sized for a summarizer.
type Chunk struct {
	Text      string `json:"text"`
	WordCount int    `json:"wordCount"`
	Index     int    `json:"index"`
}

// KeywordResult is a ranked keyword or phrase.
// Count is the display frequency, Score the zone-weighted ranking value.
type KeywordResult struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
	Score int    `json:"score"`
}

// SentimentLabel is a coarse polarity label.
type SentimentLabel string

const (
	Positive SentimentLabel = "Positive"
	Neutral  SentimentLabel = "Neutral"
	Negative SentimentLabel = "Negative"
)

// ChunkSummary is the outcome of summarizing one chunk.
type ChunkSummary struct {
	Index   int
	Chunk   Chunk
	Summary string
	Err     error
}

// SummaryReport collects per-chunk summaries in chunk order.
type SummaryReport struct {
	Segments []ChunkSummary
	// Empty is set when the input produced no chunks at all.
	Empty bool
}

// Failed returns the number of chunks whose summarization failed.
func (r SummaryReport) Failed() int {
	n := 0
	for _, s := range r.Segments {
		if s.Err != nil {
			n++
		}
	}
	return n
}

// Lines renders the report as bullet lines, one per chunk.
func (r SummaryReport) Lines() []string {
	if r.Empty {
		return []string{"- Nothing to summarize."}
	}
	out := make([]string, 0, len(r.Segments))
	for _, s := range r.Segments {
		if s.Err != nil {
			out = append(out, fmt.Sprintf("- [chunk %d failed: %s]", s.Index+1, s.Err.Error()))
			continue
		}
		if s.Summary == "" {
			continue
		}
		out = append(out, "- "+s.Summary)
	}
	return out
}

// Report is the full analysis of one Document.
type Report struct {
	Keywords  []KeywordResult
	Sentiment SentimentLabel
	Summary   SummaryReport
}

// Summarizer turns one chunk of text into a prose summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Analyzer defines the operations exposed by the application core.
type Analyzer interface {
	Analyze(ctx context.Context, doc Document) (Report, error)
}
