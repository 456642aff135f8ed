// Package textutil holds the text primitives shared by the analysis
// packages: normalization, tokenization, sentence splitting and summary
// cleanup. Every function is pure and safe for concurrent use.
package textutil

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ws matches one whitespace character, including Unicode separators that
// the RE2 \s class leaves out.
const ws = `[\s\v\x{85}\p{Z}]`

var (
	spaceBeforeNewline = regexp.MustCompile(ws + `+\n`)
	spaceAfterNewline  = regexp.MustCompile(`\n` + ws + `+`)
	tabsAndReturns     = regexp.MustCompile(`[\t\r]+`)
	multiSpace         = regexp.MustCompile(ws + `{2,}`)
	anySpace           = regexp.MustCompile(ws + `+`)
	newlines           = regexp.MustCompile(`\n+`)
)

// Normalize collapses whitespace into a canonical form. Whitespace around a
// newline folds into the newline, tabs and carriage returns become spaces,
// longer runs become a single space and the result is trimmed.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.ReplaceAll(raw, "\u00a0", " ")
	s = spaceBeforeNewline.ReplaceAllString(s, "\n")
	s = spaceAfterNewline.ReplaceAllString(s, "\n")
	s = tabsAndReturns.ReplaceAllString(s, " ")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeWhitespace turns every whitespace run, newlines included, into a
// single space.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(anySpace.ReplaceAllString(s, " "))
}

// flatten normalizes s and joins its lines with spaces.
func flatten(s string) string {
	return newlines.ReplaceAllString(Normalize(s), " ")
}

// CountWords counts whitespace-separated words of the normalized text.
func CountWords(text string) int {
	return len(strings.Fields(flatten(text)))
}

// runeLen is the length used wherever character counts matter.
func runeLen(s string) int { return utf8.RuneCountInString(s) }
