package textutil

import (
	"regexp"
	"strings"
)

// DefaultMaxInputChars bounds the text handed to a summarizer.
const DefaultMaxInputChars = 16000

const (
	boundaryRatio     = 0.6
	cleanCutoffRatio  = 0.5
	danglingConnector = `(?i)(^|[^\p{L}\p{N}_])(and|or|but|because|so|to|with|of|in|for|at|by|from)\s*$`
)

var (
	terminalRun  = regexp.MustCompile(`[.!?。！？]+`)
	trailingWord = regexp.MustCompile(danglingConnector)
)

// TruncateAtBoundary shortens text to at most maxChars characters,
// preferring to cut after a sentence or at a space when that keeps at
// least 60% of the budget.
func TruncateAtBoundary(text string, maxChars int) string {
	if maxChars <= 0 || runeLen(text) <= maxChars {
		return text
	}
	cut := string([]rune(text)[:maxChars])
	floor := int(float64(maxChars) * boundaryRatio)

	if locs := terminalRun.FindAllStringIndex(cut, -1); len(locs) > 0 {
		end := locs[len(locs)-1][1]
		if runeLen(cut[:end]) >= floor {
			return strings.TrimSpace(cut[:end])
		}
	}
	if i := strings.LastIndex(cut, " "); i >= 0 && runeLen(cut[:i]) >= floor {
		return strings.TrimSpace(cut[:i])
	}
	return strings.TrimSpace(cut)
}

// CleanSummary tidies generated summary text: whitespace is collapsed, an
// unfinished trailing sentence is dropped when a full one covers at least
// half the text, and a dangling connector word at the end is removed.
func CleanSummary(summary string) string {
	s := NormalizeWhitespace(summary)
	if s == "" {
		return ""
	}
	runes := []rune(s)
	if !IsTerminal(runes[len(runes)-1]) {
		last := -1
		for i, r := range runes {
			if IsTerminal(r) {
				last = i
			}
		}
		if last != -1 && last >= int(float64(len(runes))*cleanCutoffRatio) {
			s = strings.TrimSpace(string(runes[:last+1]))
		}
	}
	s = trailingWord.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}
