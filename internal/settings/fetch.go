package settings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// maxDocumentSize caps how much of a settings document is read.
const maxDocumentSize = 1 << 20

// ErrDocumentTooLarge is returned for a document over maxDocumentSize.
// A truncated document is never parsed.
var ErrDocumentTooLarge = errors.New("settings document too large")

// readDocument reads at most maxDocumentSize bytes from r.
func readDocument(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("%w: over %d bytes", ErrDocumentTooLarge, maxDocumentSize)
	}
	return data, nil
}

// Fetcher retrieves the raw settings document.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
	// Source describes where the document comes from, for logs.
	Source() string
}

// HTTPFetcher GETs the settings document from a base URL and path.
type HTTPFetcher struct {
	url        string
	httpClient *http.Client
}

// NewHTTPFetcher creates a fetcher for baseURL joined with path.
func NewHTTPFetcher(baseURL, path string, timeout time.Duration) *HTTPFetcher {
	u := strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
	return &HTTPFetcher{
		url:        u,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Source returns the full document URL.
func (f *HTTPFetcher) Source() string { return f.url }

// Fetch performs the GET and returns the body.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", f.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("GET %s: HTTP %d: %s", f.url, resp.StatusCode, truncate(string(body), 200))
	}
	body, err := readDocument(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}

// FileFetcher reads the settings document from disk.
type FileFetcher struct {
	Path string
}

// Source returns the file path.
func (f FileFetcher) Source() string { return f.Path }

// Fetch reads the file.
func (f FileFetcher) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", f.Path, err)
	}
	defer file.Close()
	data, err := readDocument(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Path, err)
	}
	return data, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
