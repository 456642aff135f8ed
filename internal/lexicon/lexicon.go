// Package lexicon holds the static term tables used by keyword extraction
// and sentiment scoring. The tables are built once at package
// initialization and never mutated.
package lexicon

// Entry is a weighted lexicon phrase. Weight is at least 1.
type Entry struct {
	Phrase string
	Weight int
}

var englishStopwords = setOf(
	"the", "a", "an", "and", "or", "but", "if", "then", "else", "when", "while", "for", "to", "of", "in", "on", "at", "by", "from", "with", "as", "into", "about", "over", "under",
	"is", "are", "was", "were", "be", "been", "being", "do", "does", "did", "can", "could", "should", "would", "will", "may", "might", "must",
	"this", "that", "these", "those", "it", "its", "they", "them", "their", "we", "you", "your", "i", "he", "she", "his", "her", "our", "us",
	"not", "no", "yes", "more", "most", "less", "very", "also", "just", "than", "too",
)

var vietnameseStopwords = setOf(
	"và", "là", "của", "cho", "trong", "với", "một", "những", "các", "để", "khi", "thì", "từ", "đến", "trên", "dưới", "về", "này", "đó", "đang", "được", "bị", "có", "không",
	"ở", "ra", "vào", "như", "theo", "hơn", "rất", "cũng",
)

// Generic weak positives such as "great" are left out on purpose: they show
// up in negative contexts too often.
var positiveTerms = []Entry{
	{"good", 1},
	{"excellent", 2},
	{"amazing", 2},
	{"best", 2},
	{"love", 1},
	{"success", 2},
	{"benefit", 1},
	{"benefits", 1},
	{"improve", 1},
	{"improvement", 1},
	{"helpful", 1},
	{"tốt", 1},
	{"xuất sắc", 2},
	{"tuyệt vời", 2},
	{"thành công", 2},
	{"lợi ích", 1},
	{"hữu ích", 1},
	{"cải thiện", 1},
}

var negativeTerms = []Entry{
	{"bad", 1},
	{"poor", 1},
	{"terrible", 2},
	{"awful", 2},
	{"worst", 2},
	{"worse", 1},
	{"fail", 1},
	{"failure", 1},
	{"harm", 2},
	{"risk", 1},
	{"danger", 2},
	{"threat", 2},
	{"threats", 2},
	{"fear", 1},
	{"fears", 1},
	{"violence", 2},
	{"violent", 2},
	{"assault", 2},
	{"attack", 2},
	{"shooting", 2},
	{"assassinated", 3},
	{"killed", 3},
	{"killing", 3},
	{"death", 3},
	{"dead", 3},
	{"racist", 3},
	{"racism", 3},
	{"sexist", 3},
	{"sexism", 3},
	{"bigot", 3},
	{"bigoted", 3},
	{"bigotry", 3},
	{"hate", 2},
	{"civil war", 2},
	{"tiêu cực", 2},
	{"tệ", 2},
	{"xấu", 1},
	{"kém", 1},
	{"thất bại", 2},
	{"rủi ro", 1},
	{"nguy hiểm", 2},
	{"bạo lực", 2},
	{"phân biệt chủng tộc", 3},
	{"kỳ thị", 2},
}

// IsStopword reports whether token is an English or Vietnamese stopword.
// token must already be lowercase.
func IsStopword(token string) bool {
	if _, ok := englishStopwords[token]; ok {
		return true
	}
	_, ok := vietnameseStopwords[token]
	return ok
}

// IsEnglishStopword reports membership in the English table only.
func IsEnglishStopword(token string) bool {
	_, ok := englishStopwords[token]
	return ok
}

// IsVietnameseStopword reports membership in the Vietnamese table only.
func IsVietnameseStopword(token string) bool {
	_, ok := vietnameseStopwords[token]
	return ok
}

// PositiveTerms returns a copy of the positive polarity table.
func PositiveTerms() []Entry { return clone(positiveTerms) }

// NegativeTerms returns a copy of the negative polarity table.
func NegativeTerms() []Entry { return clone(negativeTerms) }

func setOf(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

func clone(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
