package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"pagelens/internal/domain"
	"pagelens/internal/textutil"
)

// ErrUnsupportedSource is returned for sources that are neither an
// http(s) URL nor a readable file.
var ErrUnsupportedSource = errors.New("unsupported source")

const (
	maxPageBytes = 8 << 20
	fetchTimeout = 30 * time.Second
)

var httpClient = &http.Client{Timeout: fetchTimeout}

// Load turns source into a Document. URLs are fetched, .html/.htm files are
// parsed as pages and any other file is taken as plain text.
func Load(ctx context.Context, source string) (domain.Document, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return domain.Document{}, ErrUnsupportedSource
	}
	if u, err := url.Parse(source); err == nil && u.Scheme != "" && u.Host != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return Fetch(ctx, httpClient, u.String())
		default:
			return domain.Document{}, fmt.Errorf("%w: scheme %q", ErrUnsupportedSource, u.Scheme)
		}
	}

	data, err := os.ReadFile(source)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Document{}, fmt.Errorf("%w: %s", ErrUnsupportedSource, err)
		}
		return domain.Document{}, err
	}
	switch strings.ToLower(filepath.Ext(source)) {
	case ".html", ".htm":
		return FromHTML(bytes.NewReader(data))
	default:
		return FromText(string(data)), nil
	}
}

// FromText wraps plain text into a Document with only the Text zone set.
func FromText(content string) domain.Document {
	return domain.Document{Text: norm.NFC.String(textutil.Normalize(content))}
}

// Fetch downloads pageURL and extracts it. Non-HTML responses are treated as
// plain text.
func Fetch(ctx context.Context, client *http.Client, pageURL string) (domain.Document, error) {
	if client == nil {
		client = httpClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return domain.Document{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "text/html,text/plain;q=0.9,*/*;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return domain.Document{}, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Document{}, fmt.Errorf("fetch %s: HTTP %d", pageURL, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return domain.Document{}, fmt.Errorf("read %s: %w", pageURL, err)
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType == "text/plain" {
		return FromText(string(body)), nil
	}
	return FromHTML(bytes.NewReader(body))
}
