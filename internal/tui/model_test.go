package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagelens/internal/domain"
	"pagelens/internal/service"
)

type fakeAnalyzer struct{}

func (fakeAnalyzer) Inspect(_ context.Context, doc domain.Document) (service.Insight, error) {
	return service.Insight{
		Keywords:  []domain.KeywordResult{{Term: "solar power", Count: 3, Score: 90}},
		Sentiment: domain.Positive,
	}, nil
}

func (fakeAnalyzer) Summarize(_ context.Context, doc domain.Document) domain.SummaryReport {
	return domain.SummaryReport{Segments: []domain.ChunkSummary{
		{Index: 0, Summary: "Solar is cheap."},
		{Index: 1, Err: errors.New("timeout")},
	}}
}

func loadOK(_ context.Context, source string) (domain.Document, error) {
	return domain.Document{Title: "Solar Guide", Text: "Solar power is cheap."}, nil
}

// find runs cmd and returns the first message of type T it produces,
// unpacking batches.
func find[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	if got, ok := msg.(T); ok {
		return got
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if got, ok := c().(T); ok {
				return got
			}
		}
	}
	var zero T
	t.Fatalf("no %T produced", zero)
	return zero
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func TestModel_AnalysisFlow(t *testing.T) {
	m := New(fakeAnalyzer{}, loadOK, "page.html")
	start, ok := m.Init()().(startMsg)
	require.True(t, ok)
	assert.Equal(t, "page.html", start.source)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, cmd := update(t, m, start)
	assert.Equal(t, statusAnalyzing, m.status)
	assert.True(t, m.busy)

	m, cmd = update(t, m, find[insightMsg](t, cmd))
	assert.Equal(t, "Solar Guide", m.title)
	assert.True(t, m.busy)

	m, _ = update(t, m, find[summaryMsg](t, cmd))
	assert.False(t, m.busy)
	assert.Equal(t, "Done (1 of 2 chunks failed)", m.status)
	assert.Equal(t, "- Solar is cheap.\n- [chunk 2 failed: timeout]", m.panel())
	assert.Contains(t, m.View(), "Solar Guide")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabKeywords, m.active)
	assert.Equal(t, "- solar power (3)", m.panel())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, tabSentiment, m.active)
	assert.Contains(t, m.panel(), "Positive")
}

func TestModel_LoadError(t *testing.T) {
	failing := func(context.Context, string) (domain.Document, error) {
		return domain.Document{}, errors.New("unsupported source")
	}
	m := New(fakeAnalyzer{}, failing, "")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m.input.SetValue("ftp://x")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, find[insightMsg](t, cmd))
	assert.False(t, m.busy)
	assert.Equal(t, "Error: unsupported source", m.status)
}

func TestModel_StaleResultsIgnored(t *testing.T) {
	m := New(fakeAnalyzer{}, loadOK, "")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, first := update(t, m, startMsg{source: "a"})
	m, _ = update(t, m, startMsg{source: "b"})

	m, _ = update(t, m, find[insightMsg](t, first))
	assert.Nil(t, m.insight)
	assert.Equal(t, statusAnalyzing, m.status)
}

func TestModel_NumberKeysSwitchTabsWhenBlurred(t *testing.T) {
	m := New(fakeAnalyzer{}, loadOK, "")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	assert.Equal(t, tabSummary, m.active)
	assert.Equal(t, "2", m.input.Value())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	assert.Equal(t, tabSentiment, m.active)
	assert.Equal(t, "Nothing analyzed yet.", m.panel())
}

func TestRenderKeywords(t *testing.T) {
	assert.Equal(t, "—", renderKeywords(nil))
	assert.Equal(t, "- a b (2)\n- c (1)", renderKeywords([]domain.KeywordResult{
		{Term: "a b", Count: 2}, {Term: "c", Count: 1},
	}))
}
