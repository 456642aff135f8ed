package summarizer

import (
	"context"
	"math"
	"sort"
	"strings"

	"pagelens/internal/domain"
	"pagelens/internal/lexicon"
	"pagelens/internal/textutil"
)

// DefaultMaxSentences is used when a FrequencySummarizer has no limit set.
const DefaultMaxSentences = 3

// FrequencySummarizer ranks sentences by word frequency (stopwords filtered).
// It needs no network and serves as the offline summarizer.
type FrequencySummarizer struct {
	maxSentences int
}

var _ domain.Summarizer = (*FrequencySummarizer)(nil)

// NewFrequencySummarizer creates a frequency-based sentence ranker summarizer.
func NewFrequencySummarizer(maxSentences int) *FrequencySummarizer {
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentences
	}
	return &FrequencySummarizer{maxSentences: maxSentences}
}

// Summarize returns the highest ranked sentences of text in source order.
func (s *FrequencySummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	sentences := textutil.SplitSentences(text)
	if len(sentences) == 0 {
		return "", ErrEmptyText
	}
	// Compute word frequencies
	tokens := make([][]string, len(sentences))
	freq := map[string]float64{}
	for i, sent := range sentences {
		tokens[i] = textutil.Tokenize(sent)
		for _, tok := range tokens[i] {
			if lexicon.IsStopword(tok) {
				continue
			}
			freq[tok]++
		}
	}
	// Normalize frequencies
	maxF := 0.0
	for _, v := range freq {
		if v > maxF {
			maxF = v
		}
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}
	type pair struct {
		idx   int
		score float64
	}
	scores := make([]pair, len(sentences))
	for i := range sentences {
		sscore := 0.0
		for _, tok := range tokens[i] {
			sscore += freq[tok]
		}
		// Normalize by sentence length to avoid bias
		if l := float64(len(tokens[i])); l > 0 {
			sscore /= math.Sqrt(l)
		}
		scores[i] = pair{i, sscore}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	n := s.maxSentences
	if n > len(scores) {
		n = len(scores)
	}
	// Keep original order among selected
	selected := make([]int, n)
	for i := 0; i < n; i++ {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)
	out := make([]string, 0, n)
	for _, idx := range selected {
		out = append(out, sentences[idx])
	}
	summary := textutil.CleanSummary(strings.Join(out, " "))
	if summary == "" {
		return "", ErrNoSummary
	}
	return summary, nil
}
