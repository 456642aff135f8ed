package textutil

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var normalizeSamples = []string{
	"",
	"   ",
	"plain",
	"  leading and trailing  ",
	"a  b",
	"one\t\ttwo\r\rthree",
	"line one   \n   line two",
	"para\n\n\n\npara",
	"mixed \t\r\n \t end",
	"a   b c",
	"tab\tspace \t\n\t x",
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"nbsp", "a\u00a0b", "a b"},
		{"space before newline", "a   \nb", "a\nb"},
		{"space after newline", "a\n   b", "a\nb"},
		{"blank lines fold", "a\n\n\nb", "a\nb"},
		{"tabs", "a\t\tb", "a b"},
		{"carriage returns", "a\r\nb", "a\nb"},
		{"runs", "a    b", "a b"},
		{"trim", "  a b  ", "a b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalizeProperties(t *testing.T) {
	for _, in := range normalizeSamples {
		out := Normalize(in)
		assert.Equal(t, out, Normalize(out), "idempotent for %q", in)
		assert.Equal(t, strings.TrimSpace(out), out, "trimmed for %q", in)

		prevSpace := false
		for _, r := range out {
			space := unicode.IsSpace(r)
			assert.False(t, prevSpace && space, "whitespace run in %q", out)
			prevSpace = space
		}
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeWhitespace("  a\n\nb \t c "))
	assert.Equal(t, "", NormalizeWhitespace(" \n "))
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"hyphen compound", "K-Means clustering", []string{"k-means", "clustering"}},
		{"underscore compound", "snake_case names", []string{"snake_case", "names"}},
		{"no join across punctuation", "well,-done", []string{"well", "done"}},
		{"short and numeric dropped", "a 42 b2 x 2024 ok", []string{"b2", "ok"}},
		{"vietnamese", "Thành Công lớn", []string{"thành", "công", "lớn"}},
		{"trailing hyphen", "pre- post", []string{"pre", "post"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Tokenize(tc.in))
		})
	}
}

func TestTokenizeInvariants(t *testing.T) {
	text := "The 3 Quick-Brown foxes, 42 Jumped_Over 1999 lazy DOGS! Ünïcode Ça va 7a"
	for _, tok := range Tokenize(text) {
		assert.GreaterOrEqual(t, len([]rune(tok)), MinTokenLength)
		assert.Equal(t, strings.ToLower(tok), tok)
		assert.False(t, isNumeric(tok), "numeric token %q", tok)
	}
}

func TestSplitSentences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"no terminal", "just words here", []string{"just words here"}},
		{"basic", "One. Two! Three?", []string{"One.", "Two!", "Three?"}},
		{"no space after mark", "v1.2 is out. Yes", []string{"v1.2 is out.", "Yes"}},
		{"newlines collapse", "First line\nstill first. Second", []string{"First line still first.", "Second"}},
		{"cjk marks", "你好。 再见！ 好？", []string{"你好。", "再见！", "好？"}},
		{"ellipsis", "Wait... what? Ok", []string{"Wait...", "what?", "Ok"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SplitSentences(tc.in))
		})
	}
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords("  "))
	assert.Equal(t, 4, CountWords("one two\nthree\tfour"))
}

func TestTruncateAtBoundary(t *testing.T) {
	t.Run("short text untouched", func(t *testing.T) {
		assert.Equal(t, "short", TruncateAtBoundary("short", 100))
	})

	t.Run("cuts after last sentence", func(t *testing.T) {
		text := "Alpha beta gamma. Delta epsilon zeta eta theta"
		got := TruncateAtBoundary(text, 25)
		assert.Equal(t, "Alpha beta gamma.", got)
	})

	t.Run("falls back to last space", func(t *testing.T) {
		text := "Alpha beta gamma delta epsilon zeta"
		got := TruncateAtBoundary(text, 20)
		assert.Equal(t, "Alpha beta gamma", got)
	})

	t.Run("hard cut", func(t *testing.T) {
		text := strings.Repeat("x", 50)
		require.Len(t, TruncateAtBoundary(text, 10), 10)
	})
}

func TestCleanSummary(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "   ", ""},
		{"complete", "It works.  Really well.", "It works. Really well."},
		{"drops unfinished tail", "The first sentence is long enough. And then it", "The first sentence is long enough."},
		{"keeps tail when cut would lose too much", "Short. Then a much longer unfinished clause goes on", "Short. Then a much longer unfinished clause goes on"},
		{"strips dangling connector", "Prices rose sharply and", "Prices rose sharply"},
		{"connector must be whole word", "He went to Orlando", "He went to Orlando"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanSummary(tc.in))
		})
	}
}
