// Package fetch retrieves raw rule lists over HTTP. Retry policy lives here,
// with the fetch capability, not in the pipeline: by default a fetch is a
// single attempt, and raising the attempt budget retries transport errors and
// 5xx responses with exponential backoff.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	URL    string
	Status string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status fetching %s: %s", e.URL, e.Status)
}

// Fetcher downloads rule lists. A single Fetcher, and with it a single
// http.Client, is shared by all concurrent source pipelines.
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxTries  uint
}

// New creates a Fetcher. A maxTries of 1 (or 0) disables retries.
func New(timeout time.Duration, userAgent string, maxTries uint) *Fetcher {
	if maxTries == 0 {
		maxTries = 1
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		maxTries:  maxTries,
	}
}

// Fetch performs a plain GET against url and returns the body as text.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return backoff.Retry(ctx, func() (string, error) {
		return f.fetchOnce(ctx, url)
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(f.maxTries))
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{URL: url, Status: resp.Status, Code: resp.StatusCode}
		if resp.StatusCode >= 500 {
			return "", statusErr
		}
		// 4xx will not get better on retry.
		return "", backoff.Permanent(statusErr)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(body), nil
}
