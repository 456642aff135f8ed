package keywords

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagelens/internal/domain"
	"pagelens/internal/lexicon"
)

func kmeansDoc() domain.Document {
	return domain.Document{
		Title:    "K-Means Clustering Guide",
		Headings: []string{"Introduction to K-Means"},
		MainText: "K-means clustering is a popular clustering algorithm. K-means clustering groups data into clusters.",
	}
}

func terms(results []domain.KeywordResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Term
	}
	return out
}

func TestExtract_KMeansScenario(t *testing.T) {
	results := Extract(kmeansDoc(), Options{MaxKeywords: 5, MinCount: 1})
	require.Len(t, results, 5)

	assert.Equal(t, domain.KeywordResult{Term: "k-means clustering", Count: 3, Score: 100}, results[0])
	assert.Equal(t, []string{"k-means clustering", "clustering guide", "k-means clustering guide", "introduction"}, terms(results)[:4])
	assert.NotContains(t, terms(results), "clustering")
	assert.NotContains(t, terms(results), "k-means")
}

func TestExtract_EmptyDocument(t *testing.T) {
	assert.Empty(t, Extract(domain.Document{}, DefaultOptions()))
	assert.Empty(t, Extract(domain.Document{Title: "the and of"}, DefaultOptions()))
}

func TestExtract_NoSingleWordInsidePhrase(t *testing.T) {
	doc := domain.Document{
		Title:    "Distributed Systems Design",
		Headings: []string{"Consensus Protocols", "Raft Leader Election", "Systems Failures"},
		MainText: "Distributed systems need consensus. Raft elects a leader. Leader election keeps systems consistent. Failures happen in distributed systems.",
	}
	results := Extract(doc, DefaultOptions())
	require.NotEmpty(t, results)

	phraseWords := map[string]bool{}
	for _, r := range results {
		if strings.Contains(r.Term, " ") {
			for _, w := range strings.Split(r.Term, " ") {
				phraseWords[w] = true
			}
		}
	}
	for _, r := range results {
		if !strings.Contains(r.Term, " ") {
			assert.False(t, phraseWords[r.Term], "single word %q is part of a returned phrase", r.Term)
		}
	}
}

func TestExtract_TermsNeverBoundedByStopwords(t *testing.T) {
	doc := domain.Document{
		Title:    "The State of the Art in Search",
		MainText: "The state of search is changing. Search engines rank the pages of the web for the users.",
	}
	for _, r := range Extract(doc, DefaultOptions()) {
		words := strings.Split(r.Term, " ")
		assert.LessOrEqual(t, len(words), 3)
		assert.False(t, lexicon.IsStopword(words[0]), r.Term)
		assert.False(t, lexicon.IsStopword(words[len(words)-1]), r.Term)
	}
}

func TestExtract_OrderingAndCap(t *testing.T) {
	doc := domain.Document{
		MainText: "apple banana cherry. apple banana cherry. durian elderberry fig grape. kiwi lemon mango.",
	}
	results := Extract(doc, Options{MaxKeywords: 3})
	require.Len(t, results, 3)
	for i := 1; i < len(results); i++ {
		prev, cur := results[i-1], results[i]
		assert.True(t, prev.Score > cur.Score || (prev.Score == cur.Score && prev.Term < cur.Term),
			"%v before %v", prev, cur)
	}
	assert.Equal(t, "apple banana", results[0].Term)
	assert.Equal(t, 2, results[0].Count)
	assert.Equal(t, 20, results[0].Score)
}

func TestExtract_MinCountFilters(t *testing.T) {
	doc := domain.Document{
		MainText: "solar power grows. solar power is cheap. solar power wins. wind turbines spin.",
	}
	results := Extract(doc, Options{MaxKeywords: 5, MinCount: 3})
	require.Len(t, results, 1)
	assert.Equal(t, "solar power", results[0].Term)
	assert.Equal(t, 3, results[0].Count)
}

func TestExtract_NoiseIsDownWeightedAndNotCounted(t *testing.T) {
	doc := domain.Document{
		Title:     "Solar Power",
		NoiseText: "subscribe newsletter subscribe newsletter subscribe newsletter",
	}
	results := Extract(doc, Options{MaxKeywords: 5})
	require.NotEmpty(t, results)
	assert.Equal(t, "solar power", results[0].Term)
	assert.Equal(t, 80, results[0].Score)
	assert.NotContains(t, terms(results), "subscribe newsletter", "noise-only phrases have zero display count")
}

// The candidate pool is cut to MaxKeywords*CandidatePoolFactor before the
// MinCount filter. A noise-only trigram ranks first (longest phrase) and
// fills a pool of one, so a valid body phrase never gets considered.
func TestExtract_PoolTruncatesBeforeMinCount(t *testing.T) {
	doc := domain.Document{
		MainText:  "solar power",
		NoiseText: "cookie policy settings",
	}

	narrow := Extract(doc, Options{MaxKeywords: 1, MinCount: 1, CandidatePoolFactor: 1})
	assert.Empty(t, narrow)

	wide := Extract(doc, Options{MaxKeywords: 1, MinCount: 1, CandidatePoolFactor: 5})
	require.Len(t, wide, 1)
	assert.Equal(t, "solar power", wide[0].Term)
}

func TestExtract_CustomWeights(t *testing.T) {
	w := DefaultWeights()
	w.Noise = ZoneWeight{Term: 500, Phrase: 500}
	doc := domain.Document{
		MainText:  "quantum computing basics",
		NoiseText: "quantum computing",
	}
	results := Extract(doc, Options{MaxKeywords: 3, Weights: &w})
	require.NotEmpty(t, results)
	assert.Equal(t, "quantum computing", results[0].Term)
	assert.Equal(t, 510, results[0].Score)
	assert.Equal(t, 1, results[0].Count)
}

func TestExtract_FallsBackToText(t *testing.T) {
	results := ExtractText("Graph databases store graph data. Graph databases scale.", Options{MaxKeywords: 5})
	require.NotEmpty(t, results)
	assert.Equal(t, "graph databases", results[0].Term)
	assert.Equal(t, 2, results[0].Count)
	assert.Equal(t, 20, results[0].Score)
}

func TestAddPhrases(t *testing.T) {
	counts := map[string]int{}
	addPhrases([]string{"fast", "search", "of", "large", "graphs", "now"}, 1, counts)
	assert.Equal(t, map[string]int{
		"fast search":      1,
		"large graphs":     1,
		"large graphs now": 1,
		"graphs now":       1,
	}, counts)
}

func TestCountOccurrences(t *testing.T) {
	hay := []string{"aa", "bb", "aa", "bb", "aa"}
	assert.Equal(t, 3, countOccurrences(hay, []string{"aa"}))
	assert.Equal(t, 2, countOccurrences(hay, []string{"aa", "bb"}))
	assert.Equal(t, 1, countOccurrences([]string{"aa", "aa", "aa"}, []string{"aa", "aa"}))
	assert.Equal(t, 0, countOccurrences(hay, nil))
}
