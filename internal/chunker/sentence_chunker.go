package chunker

import (
	"strings"

	"pagelens/internal/domain"
	"pagelens/internal/textutil"
)

// DefaultMaxWords is the chunk size used when none is configured.
const DefaultMaxWords = 1000

// SentenceChunker packs whole sentences into chunks of bounded word count.
type SentenceChunker struct {
	maxWords int
}

func NewSentenceChunker(maxWords int) *SentenceChunker {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	return &SentenceChunker{maxWords: maxWords}
}

// MaxWords returns the configured word limit.
func (c *SentenceChunker) MaxWords() int { return c.maxWords }

// Chunk splits text into chunks in source order. A sentence is never split:
// one longer than the limit becomes its own oversized chunk.
func (c *SentenceChunker) Chunk(text string) []domain.Chunk {
	return Build(text, c.maxWords)
}

// Build greedily accumulates sentences until the next one would push the
// running word count past maxWords. Text that yields no sentences falls
// back to fixed groups of maxWords words.
func Build(text string, maxWords int) []domain.Chunk {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	if text == "" {
		return nil
	}
	sentences := textutil.SplitSentences(text)
	if len(sentences) == 0 {
		return byWords(strings.Fields(textutil.Normalize(text)), maxWords)
	}

	var chunks []domain.Chunk
	var current []string
	count := 0
	flush := func() {
		chunks = append(chunks, domain.Chunk{
			Text:      strings.Join(current, " "),
			WordCount: count,
			Index:     len(chunks),
		})
		current = nil
		count = 0
	}
	for _, sentence := range sentences {
		n := len(strings.Fields(sentence))
		if n == 0 {
			continue
		}
		if count+n > maxWords && len(current) > 0 {
			flush()
		}
		current = append(current, sentence)
		count += n
	}
	if len(current) > 0 {
		flush()
	}
	return chunks
}

func byWords(words []string, maxWords int) []domain.Chunk {
	var chunks []domain.Chunk
	for i := 0; i < len(words); i += maxWords {
		end := i + maxWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, domain.Chunk{
			Text:      strings.Join(words[i:end], " "),
			WordCount: end - i,
			Index:     len(chunks),
		})
	}
	return chunks
}
