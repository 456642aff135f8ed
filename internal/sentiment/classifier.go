// Package sentiment labels text with a coarse polarity by matching the
// weighted phrase lexicons. It is a bag-of-phrases heuristic: weak or
// balanced evidence yields Neutral.
package sentiment

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"pagelens/internal/domain"
	"pagelens/internal/lexicon"
	"pagelens/internal/textutil"
)

const (
	// MinHits is the number of lexicon matches needed before a label other
	// than Neutral is considered.
	MinHits = 2
	// Threshold is the score margin required for Positive or Negative.
	Threshold = 3
)

type phrasePattern struct {
	re     *regexp.Regexp
	weight int
}

var (
	positivePatterns = compile(lexicon.PositiveTerms())
	negativePatterns = compile(lexicon.NegativeTerms())
)

// Polarity is the evidence gathered for one lexicon.
type Polarity struct {
	Hits  int `json:"hits"`
	Score int `json:"score"`
}

// Result is the full scoring breakdown behind a label.
type Result struct {
	Label    domain.SentimentLabel `json:"sentiment"`
	Positive Polarity              `json:"positive"`
	Negative Polarity              `json:"negative"`
}

// Delta is the positive minus negative score.
func (r Result) Delta() int { return r.Positive.Score - r.Negative.Score }

// Classify returns the sentiment label of text.
func Classify(text string) domain.SentimentLabel {
	return Score(text).Label
}

// Score matches both lexicons against text and derives the label.
func Score(text string) Result {
	normalized := textutil.Lower(textutil.Normalize(text))
	if normalized == "" {
		return Result{Label: domain.Neutral}
	}
	res := Result{
		Positive: match(positivePatterns, normalized),
		Negative: match(negativePatterns, normalized),
	}
	res.Label = label(res)
	return res
}

func label(r Result) domain.SentimentLabel {
	if r.Positive.Hits+r.Negative.Hits < MinHits {
		return domain.Neutral
	}
	switch delta := r.Delta(); {
	case delta >= Threshold:
		return domain.Positive
	case delta <= -Threshold:
		return domain.Negative
	default:
		return domain.Neutral
	}
}

func match(patterns []phrasePattern, text string) Polarity {
	var p Polarity
	for _, pat := range patterns {
		n := countWholeWords(pat.re, text)
		p.Hits += n
		p.Score += n * pat.weight
	}
	return p
}

// countWholeWords counts matches of re that are not glued to a word
// character on either side. RE2's \b only knows ASCII, so the boundary is
// checked here against Unicode letters, digits and marks.
func countWholeWords(re *regexp.Regexp, text string) int {
	n := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[0] > 0 {
			if r, _ := utf8.DecodeLastRuneInString(text[:loc[0]]); isWordRune(r) {
				continue
			}
		}
		if loc[1] < len(text) {
			if r, _ := utf8.DecodeRuneInString(text[loc[1]:]); isWordRune(r) {
				continue
			}
		}
		n++
	}
	return n
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// compile turns each phrase into a literal pattern whose words may be
// separated by any whitespace run.
func compile(entries []lexicon.Entry) []phrasePattern {
	out := make([]phrasePattern, 0, len(entries))
	for _, e := range entries {
		parts := strings.Fields(e.Phrase)
		if len(parts) == 0 {
			continue
		}
		for i, p := range parts {
			parts[i] = regexp.QuoteMeta(p)
		}
		weight := e.Weight
		if weight < 1 {
			weight = 1
		}
		out = append(out, phrasePattern{
			re:     regexp.MustCompile(strings.Join(parts, `\s+`)),
			weight: weight,
		})
	}
	return out
}
