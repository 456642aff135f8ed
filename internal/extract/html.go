package extract

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"

	"pagelens/internal/domain"
	"pagelens/internal/textutil"
)

const (
	// MinMainTextChars is the main content length from which it replaces
	// the full body text.
	MinMainTextChars = 400
	MaxHeadings      = 50
	MaxNoiseChars    = 20000
)

const (
	mainSelectors    = `main, article, [role="main"]`
	headingSelectors = "h1, h2, h3"
	noiseSelectors   = "nav, footer, aside, header"
)

var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
}

var blocks = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Figcaption: true, atom.Figure: true, atom.Footer: true, atom.Form: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true, atom.Nav: true,
	atom.Ol: true, atom.P: true, atom.Pre: true, atom.Section: true, atom.Table: true,
	atom.Tr: true, atom.Td: true, atom.Th: true, atom.Ul: true, atom.Title: true,
}

var spaceRun = regexp.MustCompile(`\s+`)

// FromHTML reads an HTML page and splits it into analysis zones.
func FromHTML(r io.Reader) (domain.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return domain.Document{}, fmt.Errorf("parse html: %w", err)
	}

	out := domain.Document{
		Title: textutil.NormalizeWhitespace(doc.Find("title").First().Text()),
	}

	main, mainText := pickMain(doc)
	out.MainText = mainText
	if utf8.RuneCountInString(mainText) >= MinMainTextChars {
		out.Text = mainText
	} else {
		out.Text = innerText(doc.Find("body").First())
	}

	scope := doc.Selection
	if main != nil {
		scope = main
	}
	out.Headings = headings(scope)
	out.NoiseText = noise(doc)
	return out, nil
}

// pickMain returns the main-content candidate with the longest text.
func pickMain(doc *goquery.Document) (*goquery.Selection, string) {
	var (
		best     *goquery.Selection
		bestText string
		bestLen  = -1
	)
	doc.Find(mainSelectors).Each(func(_ int, s *goquery.Selection) {
		text := innerText(s)
		if n := utf8.RuneCountInString(text); n > bestLen {
			best, bestText, bestLen = s, text, n
		}
	})
	return best, bestText
}

func headings(scope *goquery.Selection) []string {
	var out []string
	scope.Find(headingSelectors).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if h := textutil.NormalizeWhitespace(innerText(s)); h != "" {
			out = append(out, h)
		}
		return len(out) < MaxHeadings
	})
	return out
}

func noise(doc *goquery.Document) string {
	var parts []string
	doc.Find(noiseSelectors).Each(func(_ int, s *goquery.Selection) {
		if t := innerText(s); t != "" {
			parts = append(parts, t)
		}
	})
	joined := strings.Join(parts, "\n")
	if utf8.RuneCountInString(joined) > MaxNoiseChars {
		joined = string([]rune(joined)[:MaxNoiseChars])
	}
	return joined
}

// innerText approximates the rendered text of the selection: hidden
// elements are dropped and block elements start new lines.
func innerText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		walk(&b, n)
	}
	return norm.NFC.String(textutil.Normalize(b.String()))
}

func walk(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(spaceRun.ReplaceAllString(n.Data, " "))
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		if skipped[n.DataAtom] {
			return
		}
		if n.DataAtom == atom.Br {
			b.WriteByte('\n')
			return
		}
	}
	block := n.Type == html.ElementNode && blocks[n.DataAtom]
	if block {
		b.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(b, c)
	}
	if block {
		b.WriteByte('\n')
	}
}
