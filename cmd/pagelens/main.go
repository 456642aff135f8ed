package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"pagelens/internal/app"
	"pagelens/internal/config"
	"pagelens/internal/domain"
	"pagelens/internal/extract"
	"pagelens/internal/logging"
	"pagelens/internal/service"
	"pagelens/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var plain bool
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/pagelens/config.yaml if not provided)")
	flag.BoolVar(&plain, "plain", false, "Print the report to stdout instead of opening the TUI")
	flag.Parse()
	source := strings.Join(flag.Args(), " ")
	if plain && source == "" {
		fmt.Println("Usage: pagelens [--config=config.yaml] [--plain] page.html|notes.txt|https://...")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := zap.NewNop()
	if plain {
		// The TUI owns the terminal, so only plain mode logs to stderr.
		if logger, err = logging.New(cfg.Logging.Level); err != nil {
			log.Fatalf("failed to init logger: %v", err)
		}
	}
	defer func() { _ = logger.Sync() }()

	sum, err := app.NewSummarizer(cfg.Summarizer, logger)
	if err != nil {
		log.Fatalf("summarizer init failed: %v", err)
	}
	svc := app.NewAnalyzer(cfg, sum, nil, logger)

	if plain {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := printReport(ctx, svc, source); err != nil {
			logger.Error("analysis failed", zap.String("source", source), zap.Error(err))
			_ = logger.Sync()
			os.Exit(1)
		}
		return
	}

	m := tui.New(svc, extract.Load, source)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}

func printReport(ctx context.Context, svc *service.AnalyzerService, source string) error {
	doc, err := extract.Load(ctx, source)
	if err != nil {
		return err
	}
	report, err := svc.Analyze(ctx, doc)
	if err != nil {
		return err
	}
	fmt.Print(formatReport(doc, report))
	return nil
}

func formatReport(doc domain.Document, report domain.Report) string {
	var b strings.Builder
	if doc.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	}
	b.WriteString("Summary\n")
	for _, line := range report.Summary.Lines() {
		b.WriteString(line + "\n")
	}
	b.WriteString("\nKeywords\n")
	if len(report.Keywords) == 0 {
		b.WriteString("—\n")
	}
	for _, kw := range report.Keywords {
		fmt.Fprintf(&b, "- %s (%d)\n", kw.Term, kw.Count)
	}
	fmt.Fprintf(&b, "\nSentiment: %s\n", report.Sentiment)
	return b.String()
}
