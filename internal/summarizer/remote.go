package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"pagelens/internal/domain"
)

const (
	DefaultURL        = "http://127.0.0.1:8000/analyze"
	DefaultTimeout    = 60 * time.Second
	DefaultMaxRetries = 2

	taskSummary  = "summary"
	maxBodyBytes = 1 << 20
)

// RemoteConfig configures the HTTP summarization client.
type RemoteConfig struct {
	URL        string
	Timeout    time.Duration
	MaxRetries int
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Remote calls an external summarization service, one request per chunk.
type Remote struct {
	url        string
	client     *http.Client
	maxRetries int
	logger     *zap.Logger
}

var _ domain.Summarizer = (*Remote)(nil)

// NewRemote creates a client for the service at cfg.URL.
func NewRemote(cfg RemoteConfig) *Remote {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Remote{url: cfg.URL, client: client, maxRetries: cfg.MaxRetries, logger: logger}
}

type summaryRequest struct {
	Text string `json:"text"`
	Task string `json:"task"`
}

type summaryResponse struct {
	Summary string          `json:"summary"`
	Error   string          `json:"error"`
	Detail  json.RawMessage `json:"detail"`
}

// Summarize posts text to the service and returns its summary.
func (r *Remote) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	body, err := json.Marshal(summaryRequest{Text: text, Task: taskSummary})
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			r.logger.Debug("retrying summarization request",
				zap.Int("attempt", attempt), zap.Error(lastErr))
		}
		summary, wait, err := r.do(ctx, body)
		if err == nil {
			return summary, nil
		}
		lastErr = err
		if !retryable(err) || attempt == r.maxRetries {
			break
		}
		if wait <= 0 {
			wait = retryDelay(attempt)
		}
		if err := sleep(ctx, wait); err != nil {
			return "", err
		}
	}
	return "", lastErr
}

// do performs one request. The returned duration is the server's
// Retry-After hint, zero when absent.
func (r *Remote) do(ctx context.Context, body []byte) (string, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", 0, fmt.Errorf("read response: %w", err)
	}

	var out summaryResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := ""
		if decodeErr == nil {
			msg = out.message()
		}
		if msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return "", retryAfter(resp.Header.Get("Retry-After")), &StatusError{StatusCode: resp.StatusCode, Message: msg}
	}

	if decodeErr != nil {
		return "", 0, fmt.Errorf("decode response: %w", decodeErr)
	}
	if out.Summary == "" {
		if msg := out.message(); msg != "" {
			return "", 0, errors.New(msg)
		}
		return "", 0, ErrNoSummary
	}
	return out.Summary, 0, nil
}

// message picks the error text: error first, then detail given either as
// a string or as a list of {msg} objects.
func (r summaryResponse) message() string {
	if r.Error != "" {
		return r.Error
	}
	if len(r.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.Detail, &s); err == nil {
		return s
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(r.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	// Transport failures are worth another try; a bad payload is not.
	var ue *url.Error
	return errors.As(err, &ue)
}

func retryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	base := 200 * time.Millisecond
	// exponential backoff capped at 5s
	d := base << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
