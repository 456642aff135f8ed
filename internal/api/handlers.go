package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"pagelens/internal/chunker"
	"pagelens/internal/domain"
	"pagelens/internal/extract"
	"pagelens/internal/keywords"
	"pagelens/internal/sentiment"
	"pagelens/internal/service"
	"pagelens/internal/summarizer"
	"pagelens/internal/textutil"
)

const (
	defaultMinLength = 25
	defaultMaxLength = 90
	taskSummary      = "summary"
)

// Options configures a Handler.
type Options struct {
	Keywords      keywords.Options
	ChunkWordSize int
	MaxInputChars int
}

type Handler struct {
	analyzer   *service.AnalyzerService
	summarizer domain.Summarizer
	opts       Options
	logger     *zap.Logger
}

// NewHandler builds the API handlers. s serves the /analyze summarization
// contract; analyzer produces full reports.
func NewHandler(analyzer *service.AnalyzerService, s domain.Summarizer, opts Options, log *zap.Logger) *Handler {
	if opts.ChunkWordSize <= 0 {
		opts.ChunkWordSize = chunker.DefaultMaxWords
	}
	if opts.MaxInputChars <= 0 {
		opts.MaxInputChars = textutil.DefaultMaxInputChars
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{analyzer: analyzer, summarizer: s, opts: opts, logger: log}
}

type analyzeRequest struct {
	Text      *string `json:"text" binding:"required"`
	Task      string  `json:"task"`
	MinLength *int    `json:"min_length" binding:"omitempty,min=5"`
	MaxLength *int    `json:"max_length" binding:"omitempty,min=10"`
}

// Analyze implements POST /analyze. Content errors are answered with 200 and
// an "error" field; only malformed requests get 422.
func (h *Handler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation error", "detail": validationDetail(err)})
		return
	}
	minLength, maxLength := defaultMinLength, defaultMaxLength
	if req.MinLength != nil {
		minLength = *req.MinLength
	}
	if req.MaxLength != nil {
		maxLength = *req.MaxLength
	}
	task := req.Task
	if task == "" {
		task = taskSummary
	}

	text := textutil.NormalizeWhitespace(*req.Text)
	if text == "" {
		c.JSON(http.StatusOK, gin.H{"error": "Empty text"})
		return
	}
	if maxLength < minLength {
		c.JSON(http.StatusOK, gin.H{"error": "max_length must be >= min_length"})
		return
	}
	text = textutil.TruncateAtBoundary(text, h.opts.MaxInputChars)

	if task != taskSummary {
		c.JSON(http.StatusOK, gin.H{"error": "Unsupported task"})
		return
	}

	summary, err := h.summarizer.Summarize(c.Request.Context(), text)
	if err != nil {
		if !errors.Is(err, summarizer.ErrNoSummary) && !errors.Is(err, summarizer.ErrEmptyText) {
			_ = c.Error(err)
		}
		c.JSON(http.StatusOK, gin.H{"error": "Unable to generate summary"})
		return
	}
	summary = textutil.CleanSummary(limitWords(summary, maxLength))
	if summary == "" {
		c.JSON(http.StatusOK, gin.H{"error": "Unable to generate clean summary"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

type keywordsRequest struct {
	Document    domain.Document `json:"document"`
	MaxKeywords int             `json:"max_keywords" binding:"omitempty,min=1"`
	MinCount    int             `json:"min_count" binding:"omitempty,min=1"`
}

func (h *Handler) Keywords(c *gin.Context) {
	var req keywordsRequest
	if !bind(c, &req) {
		return
	}
	opts := h.opts.Keywords
	if req.MaxKeywords > 0 {
		opts.MaxKeywords = req.MaxKeywords
	}
	if req.MinCount > 0 {
		opts.MinCount = req.MinCount
	}
	results := keywords.Extract(req.Document, opts)
	if results == nil {
		results = []domain.KeywordResult{}
	}
	c.JSON(http.StatusOK, gin.H{"keywords": results})
}

type textRequest struct {
	Text     string `json:"text"`
	MaxWords int    `json:"max_words" binding:"omitempty,min=1"`
}

func (h *Handler) Sentiment(c *gin.Context) {
	var req textRequest
	if !bind(c, &req) {
		return
	}
	res := sentiment.Score(req.Text)
	c.JSON(http.StatusOK, gin.H{
		"sentiment":      res.Label,
		"positive_hits":  res.Positive.Hits,
		"positive_score": res.Positive.Score,
		"negative_hits":  res.Negative.Hits,
		"negative_score": res.Negative.Score,
	})
}

func (h *Handler) Chunks(c *gin.Context) {
	var req textRequest
	if !bind(c, &req) {
		return
	}
	maxWords := h.opts.ChunkWordSize
	if req.MaxWords > 0 {
		maxWords = req.MaxWords
	}
	chunks := chunker.Build(req.Text, maxWords)
	if chunks == nil {
		chunks = []domain.Chunk{}
	}
	c.JSON(http.StatusOK, gin.H{"chunks": chunks})
}

type reportRequest struct {
	Document *domain.Document `json:"document"`
	// Source is an http(s) URL fetched server side when no document is given.
	Source string `json:"source"`
}

type reportResponse struct {
	Keywords     []domain.KeywordResult `json:"keywords"`
	Sentiment    domain.SentimentLabel  `json:"sentiment"`
	Summary      []string               `json:"summary"`
	FailedChunks int                    `json:"failed_chunks"`
}

func (h *Handler) Report(c *gin.Context) {
	var req reportRequest
	if !bind(c, &req) {
		return
	}
	ctx := c.Request.Context()

	var doc domain.Document
	switch {
	case req.Document != nil:
		doc = *req.Document
	case req.Source != "":
		u, err := url.Parse(req.Source)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "source must be an http(s) URL"})
			return
		}
		doc, err = extract.Load(ctx, req.Source)
		if err != nil {
			h.logger.Warn("Failed to load source", zap.String("source", req.Source), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load source", "detail": err.Error()})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "document or source is required"})
		return
	}

	report, err := h.analyzer.Analyze(ctx, doc)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Analysis canceled"})
		return
	}
	resp := reportResponse{
		Keywords:     report.Keywords,
		Sentiment:    report.Sentiment,
		Summary:      report.Summary.Lines(),
		FailedChunks: report.Summary.Failed(),
	}
	if resp.Keywords == nil {
		resp.Keywords = []domain.KeywordResult{}
	}
	c.JSON(http.StatusOK, resp)
}

func bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation error", "detail": validationDetail(err)})
		return false
	}
	return true
}

var fieldNames = map[string]string{
	"Text":        "text",
	"MinLength":   "min_length",
	"MaxLength":   "max_length",
	"MaxKeywords": "max_keywords",
	"MinCount":    "min_count",
	"MaxWords":    "max_words",
}

func validationDetail(err error) []gin.H {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []gin.H{{"loc": []string{"body"}, "msg": "invalid JSON body: " + err.Error()}}
	}
	out := make([]gin.H, 0, len(verrs))
	for _, fe := range verrs {
		name := fieldNames[fe.Field()]
		if name == "" {
			name = strings.ToLower(fe.Field())
		}
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "field required"
		case "min":
			msg = fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
		default:
			msg = fmt.Sprintf("failed on the %q rule", fe.Tag())
		}
		out = append(out, gin.H{"loc": []string{"body", name}, "msg": msg})
	}
	return out
}

// limitWords keeps at most n words of s.
func limitWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ")
}
