package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pagelens/internal/domain"
	"pagelens/internal/service"
)

// AnalyzerPort is the TUI-facing subset of the analyzer service.
type AnalyzerPort interface {
	Inspect(ctx context.Context, doc domain.Document) (service.Insight, error)
	Summarize(ctx context.Context, doc domain.Document) domain.SummaryReport
}

// LoadFunc turns a path or URL into a Document.
type LoadFunc func(ctx context.Context, source string) (domain.Document, error)

type tab int

const (
	tabSummary tab = iota
	tabKeywords
	tabSentiment
	tabCount
)

var tabNames = [tabCount]string{"Summary", "Keywords", "Sentiment"}

const (
	statusReady     = "Ready"
	statusAnalyzing = "Analyzing..."
	statusDone      = "Done"
)

// Model is the Bubble Tea model for the analysis panel.
type Model struct {
	analyzer AnalyzerPort
	load     LoadFunc

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	active  tab
	status  string
	busy    bool
	ready   bool
	seq     int
	ctx     context.Context
	cancel  context.CancelFunc
	source  string
	title   string
	insight *service.Insight
	summary *domain.SummaryReport
}

type insightMsg struct {
	seq     int
	doc     domain.Document
	insight service.Insight
	err     error
}

type summaryMsg struct {
	seq    int
	report domain.SummaryReport
}

// New creates a new TUI model. A non-empty source is analyzed on start.
func New(analyzer AnalyzerPort, load LoadFunc, source string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Path or URL to analyze, then Enter"
	ti.CharLimit = 0
	ti.SetValue(source)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		analyzer: analyzer,
		load:     load,
		input:    ti,
		viewport: viewport.New(0, 0),
		spinner:  sp,
		status:   statusReady,
		source:   strings.TrimSpace(source),
	}
}

// Init starts the cursor blink and, when a source was given, its analysis.
func (m Model) Init() tea.Cmd {
	if m.source == "" {
		return textinput.Blink
	}
	return func() tea.Msg { return startMsg{source: m.source} }
}

type startMsg struct{ source string }

// Update handles key and window events and analysis results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, bh := panelStyle.GetFrameSize()
		_, ih := inputStyle.GetFrameSize()
		reserved := 3 + ih + 1 // header, tabs, status + input box
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = max(3, msg.Height-reserved-bh)
		m.refresh()
		return m, nil

	case startMsg:
		return m.start(msg.source)

	case insightMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.busy = false
			m.status = "Error: " + msg.err.Error()
			m.refresh()
			return m, nil
		}
		m.title = msg.doc.Title
		m.insight = &msg.insight
		m.refresh()
		return m, m.summarize(msg.seq, msg.doc)

	case summaryMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.busy = false
		m.summary = &msg.report
		m.status = statusDone
		if n := msg.report.Failed(); n > 0 {
			m.status = fmt.Sprintf("%s (%d of %d chunks failed)", statusDone, n, len(msg.report.Segments))
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
		switch msg.String() {
		case "tab":
			m.active = (m.active + 1) % tabCount
			m.refresh()
			return m, nil
		case "shift+tab":
			m.active = (m.active + tabCount - 1) % tabCount
			m.refresh()
			return m, nil
		case "esc":
			m.input.Blur()
			return m, nil
		case "enter":
			if m.input.Focused() {
				if src := strings.TrimSpace(m.input.Value()); src != "" {
					return m.start(src)
				}
				return m, nil
			}
		}
		if !m.input.Focused() {
			switch msg.String() {
			case "1", "2", "3":
				m.active = tab(msg.String()[0] - '1')
				m.refresh()
				return m, nil
			case "i", "/":
				return m, m.input.Focus()
			case "q":
				if m.cancel != nil {
					m.cancel()
				}
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// start cancels any running analysis and analyzes source.
func (m Model) start(source string) (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.ctx, m.cancel = ctx, cancel
	m.seq++
	m.source = source
	m.busy = true
	m.status = statusAnalyzing
	m.title = ""
	m.insight = nil
	m.summary = nil
	m.refresh()

	seq, analyzer, load := m.seq, m.analyzer, m.load
	inspect := func() tea.Msg {
		doc, err := load(ctx, source)
		if err != nil {
			return insightMsg{seq: seq, err: err}
		}
		in, err := analyzer.Inspect(ctx, doc)
		return insightMsg{seq: seq, doc: doc, insight: in, err: err}
	}
	return m, tea.Batch(inspect, m.spinner.Tick)
}

func (m Model) summarize(seq int, doc domain.Document) tea.Cmd {
	// A newer analysis cancels this context.
	ctx := m.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	analyzer := m.analyzer
	return func() tea.Msg {
		return summaryMsg{seq: seq, report: analyzer.Summarize(ctx, doc)}
	}
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("pagelens")
	if m.title != "" {
		header += "  " + mutedStyle.Render(m.title)
	}
	status := m.status
	if m.busy {
		status = m.spinner.View() + " " + status
	}
	return strings.Join([]string{
		header,
		renderTabs(m.active),
		panelStyle.Render(m.viewport.View()),
		inputStyle.Render(m.input.View()),
		statusStyle(m.status).Render(status),
	}, "\n")
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.panel())
	m.viewport.GotoTop()
}

func (m Model) panel() string {
	switch m.active {
	case tabKeywords:
		if m.insight == nil {
			return placeholder(m.busy)
		}
		return renderKeywords(m.insight.Keywords)
	case tabSentiment:
		if m.insight == nil {
			return placeholder(m.busy)
		}
		return renderSentiment(m.insight.Sentiment)
	default:
		if m.summary == nil {
			return placeholder(m.busy)
		}
		return strings.Join(m.summary.Lines(), "\n")
	}
}

func placeholder(busy bool) string {
	if busy {
		return "Working..."
	}
	return "Nothing analyzed yet."
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
	pillStyle      = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("0"))
)

var pillColors = map[domain.SentimentLabel]lipgloss.Color{
	domain.Positive: lipgloss.Color("10"),
	domain.Neutral:  lipgloss.Color("7"),
	domain.Negative: lipgloss.Color("9"),
}

func statusStyle(status string) lipgloss.Style {
	if strings.HasPrefix(status, "Error") {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
}

func renderTabs(active tab) string {
	parts := make([]string, 0, tabCount)
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if tab(i) == active {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderKeywords(results []domain.KeywordResult) string {
	if len(results) == 0 {
		return "—"
	}
	lines := make([]string, len(results))
	for i, r := range results {
		lines[i] = fmt.Sprintf("- %s (%d)", r.Term, r.Count)
	}
	return strings.Join(lines, "\n")
}

func renderSentiment(label domain.SentimentLabel) string {
	if label == "" {
		label = domain.Neutral
	}
	return pillStyle.Background(pillColors[label]).Render(string(label))
}
