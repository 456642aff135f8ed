package textutil

import (
	"regexp"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// tokenPattern keeps hyphen and underscore compounds such as "k-means"
// together but never joins across other punctuation.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:[-_][\p{L}\p{N}]+)*`)

// MinTokenLength is the shortest token Tokenize emits, in characters.
const MinTokenLength = 2

// Tokenize splits text into lowercase alphanumeric tokens in source order.
// Tokens shorter than MinTokenLength and purely numeric tokens are dropped.
func Tokenize(text string) []string {
	cleaned := Normalize(text)
	if cleaned == "" {
		return nil
	}
	// Casers keep state, so each call gets its own.
	lower := cases.Lower(language.Und)
	matches := tokenPattern.FindAllString(cleaned, -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		tok := lower.String(m)
		if runeLen(tok) < MinTokenLength || isNumeric(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Lower lowercases s with Unicode-aware rules.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
