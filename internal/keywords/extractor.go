// Package keywords ranks single terms and 2-3 word phrases across the
// weighted zones of a page.
//
// Two quantities are tracked per term: Score, the zone-weighted ranking
// value, and Count, the literal occurrence frequency shown to users. The
// weights are integers so scores never carry fractional parts.
package keywords

import (
	"sort"
	"strings"
	"unicode/utf8"

	"pagelens/internal/domain"
	"pagelens/internal/lexicon"
	"pagelens/internal/textutil"
)

const (
	DefaultMaxKeywords         = 12
	DefaultMinCount            = 1
	DefaultCandidatePoolFactor = 5

	minTermLength = 3
)

// ZoneWeight is the score added per single-term and per phrase occurrence.
type ZoneWeight struct {
	Term   int `yaml:"term" json:"term"`
	Phrase int `yaml:"phrase" json:"phrase"`
}

// Weights configures how much each page zone contributes to a score.
type Weights struct {
	// Title is the document title.
	Title ZoneWeight `yaml:"title" json:"title"`
	// Heading covers all headings joined together.
	Heading ZoneWeight `yaml:"heading" json:"heading"`
	// Body is the main text, or the full text when no main text exists.
	Body ZoneWeight `yaml:"body" json:"body"`
	// Noise is boilerplate such as navigation and footers. It is kept as
	// context but weighted low enough to rarely outrank real content.
	Noise ZoneWeight `yaml:"noise" json:"noise"`
}

// DefaultWeights returns the standard zone weights.
func DefaultWeights() Weights {
	return Weights{
		Title:   ZoneWeight{Term: 60, Phrase: 80},
		Heading: ZoneWeight{Term: 40, Phrase: 50},
		Body:    ZoneWeight{Term: 10, Phrase: 10},
		Noise:   ZoneWeight{Term: 3, Phrase: 3},
	}
}

// Options controls an extraction pass. Zero fields take their defaults.
type Options struct {
	MaxKeywords int
	MinCount    int
	// CandidatePoolFactor sizes the greedy selection pool as
	// MaxKeywords*CandidatePoolFactor. The pool is cut before MinCount is
	// applied, so a candidate outside it is never reconsidered.
	CandidatePoolFactor int
	Weights             *Weights
}

// DefaultOptions returns Options with every default filled in.
func DefaultOptions() Options {
	w := DefaultWeights()
	return Options{
		MaxKeywords:         DefaultMaxKeywords,
		MinCount:            DefaultMinCount,
		CandidatePoolFactor: DefaultCandidatePoolFactor,
		Weights:             &w,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxKeywords <= 0 {
		o.MaxKeywords = DefaultMaxKeywords
	}
	if o.MinCount < 1 {
		o.MinCount = DefaultMinCount
	}
	if o.CandidatePoolFactor < 1 {
		o.CandidatePoolFactor = DefaultCandidatePoolFactor
	}
	if o.Weights == nil {
		w := DefaultWeights()
		o.Weights = &w
	}
	return o
}

type candidate struct {
	term  string
	words int
	score int
}

// Extract returns up to opts.MaxKeywords keywords ordered by descending
// score, then ascending term.
func Extract(doc domain.Document, opts Options) []domain.KeywordResult {
	opts = opts.withDefaults()
	w := opts.Weights

	headingText := strings.Join(doc.Headings, " ")
	body := doc.BodyText()

	counts := make(map[string]int)
	for _, zone := range []struct {
		text   string
		weight ZoneWeight
	}{
		{doc.Title, w.Title},
		{headingText, w.Heading},
		{body, w.Body},
		{doc.NoiseText, w.Noise},
	} {
		tokens := textutil.Tokenize(zone.text)
		addTerms(tokens, zone.weight.Term, counts)
		addPhrases(tokens, zone.weight.Phrase, counts)
	}
	if len(counts) == 0 {
		return nil
	}

	picked := pick(rank(counts), opts.MaxKeywords*opts.CandidatePoolFactor)

	haystack := textutil.Tokenize(strings.Join([]string{doc.Title, headingText, body}, "\n"))
	results := make([]domain.KeywordResult, 0, len(picked))
	for _, c := range picked {
		count := countOccurrences(haystack, strings.Split(c.term, " "))
		if count < opts.MinCount {
			continue
		}
		results = append(results, domain.KeywordResult{Term: c.term, Count: count, Score: c.score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Term < results[j].Term
	})
	if len(results) > opts.MaxKeywords {
		results = results[:opts.MaxKeywords]
	}
	return results
}

// ExtractText runs Extract over plain text with no title or headings.
func ExtractText(text string, opts Options) []domain.KeywordResult {
	return Extract(domain.Document{Text: text}, opts)
}

func addTerms(tokens []string, weight int, counts map[string]int) {
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) < minTermLength || lexicon.IsStopword(tok) {
			continue
		}
		counts[tok] += weight
	}
}

// addPhrases counts every bigram and trigram that holds no stopword.
func addPhrases(tokens []string, weight int, counts map[string]int) {
	for i := 0; i+1 < len(tokens); i++ {
		first, second := tokens[i], tokens[i+1]
		if lexicon.IsStopword(first) || lexicon.IsStopword(second) {
			continue
		}
		counts[first+" "+second] += weight
		if i+2 < len(tokens) {
			third := tokens[i+2]
			if lexicon.IsStopword(third) {
				continue
			}
			counts[first+" "+second+" "+third] += weight
		}
	}
}

// rank orders candidates longest phrase first, then by score, then term.
func rank(counts map[string]int) []candidate {
	out := make([]candidate, 0, len(counts))
	for term, score := range counts {
		out = append(out, candidate{term: term, words: strings.Count(term, " ") + 1, score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.words != b.words {
			return a.words > b.words
		}
		if a.score != b.score {
			return a.score > b.score
		}
		return a.term < b.term
	})
	return out
}

// pick greedily selects up to limit candidates. A single word is skipped
// when an earlier phrase already contains it, and dropped afterwards when
// any selected phrase contains it.
func pick(ranked []candidate, limit int) []candidate {
	picked := make([]candidate, 0, limit)
	phraseWords := make(map[string]struct{})
	for _, c := range ranked {
		if len(picked) >= limit {
			break
		}
		if c.words == 1 {
			if _, ok := phraseWords[c.term]; ok {
				continue
			}
		} else {
			for _, word := range strings.Split(c.term, " ") {
				phraseWords[word] = struct{}{}
			}
		}
		picked = append(picked, c)
	}

	out := picked[:0]
	for _, c := range picked {
		if c.words == 1 {
			if _, ok := phraseWords[c.term]; ok {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// countOccurrences counts non-overlapping runs of needle in haystack.
func countOccurrences(haystack, needle []string) int {
	if len(needle) == 0 {
		return 0
	}
	count := 0
	for i := 0; i+len(needle) <= len(haystack); {
		if matchAt(haystack, needle, i) {
			count++
			i += len(needle)
			continue
		}
		i++
	}
	return count
}

func matchAt(haystack, needle []string, at int) bool {
	for j, tok := range needle {
		if haystack[at+j] != tok {
			return false
		}
	}
	return true
}
