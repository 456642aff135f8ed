package textutil

import (
	"strings"
	"unicode"
)

// IsTerminal reports whether r ends a sentence.
func IsTerminal(r rune) bool {
	switch r {
	case '.', '!', '?', '。', '！', '？':
		return true
	}
	return false
}

// SplitSentences splits text after every sentence-terminal mark that is
// followed by whitespace. The mark stays with its sentence; empty pieces
// are dropped.
func SplitSentences(text string) []string {
	s := flatten(text)
	if s == "" {
		return nil
	}
	var sentences []string
	start := 0
	prevTerminal := false
	for i, r := range s {
		if prevTerminal && unicode.IsSpace(r) {
			if part := strings.TrimSpace(s[start:i]); part != "" {
				sentences = append(sentences, part)
			}
			start = i
		}
		prevTerminal = IsTerminal(r)
	}
	if part := strings.TrimSpace(s[start:]); part != "" {
		sentences = append(sentences, part)
	}
	return sentences
}
