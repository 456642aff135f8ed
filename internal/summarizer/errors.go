package summarizer

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrEmptyText is returned when there is nothing to summarize.
	ErrEmptyText = errors.New("empty text")
	// ErrNoSummary is returned when the service answered without a summary.
	ErrNoSummary = errors.New("no summary available")
)

// StatusError is a non-success answer from the summarization service.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// Temporary reports whether retrying the request may succeed.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}
