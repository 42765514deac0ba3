package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/text/encoding/unicode"
)

type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

func NewFetcher(httpClient *http.Client, userAgent string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		httpClient: httpClient,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// Run downloads url and returns its body as UTF-8 text. Invalid byte
// sequences become U+FFFD and a leading byte order mark is dropped.
func (f *Fetcher) Run(ctx context.Context, url string) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	text, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	return string(text), nil
}
