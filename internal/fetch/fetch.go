// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads remote documents so the convert command can mix
// URLs and local paths in one batch.
package fetch

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/pdiddy/docread/pkg/types"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 10 * time.Second

const defaultMaxRetries = 5

// IsURL reports whether arg looks like a fetchable http(s) URL.
func IsURL(arg string) bool {
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://")
}

// Fetch downloads rawurl and returns the remote document's name (the URL
// path basename) and payload. Rate-limited responses are retried with
// exponential backoff; any other non-2xx status is an error.
func Fetch(ctx context.Context, client *http.Client, rawurl string, cfg types.FetchConfig) (name string, data []byte, err error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return "", nil, fmt.Errorf("parsing %s: %w", rawurl, err)
	}
	name = path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", nil, fmt.Errorf("cannot derive a document name from %s", rawurl)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
	if err != nil {
		return "", nil, err
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := doWithRetry(ctx, client, req, cfg.MaxRetries)
	if err != nil {
		return "", nil, fmt.Errorf("fetching %s: %w", rawurl, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", nil, fmt.Errorf("fetching %s: unexpected status %s", rawurl, resp.Status)
	}

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("reading %s: %w", rawurl, err)
	}
	return name, data, nil
}

// doWithRetry executes req and retries on HTTP 429 with exponential
// backoff starting at RetryBaseDelay and doubling each attempt. On each
// 429 the response body is drained and closed before sleeping. If the
// context is cancelled during a backoff wait, ctx.Err() is returned. After
// exhausting retries the last 429 response is returned for inspection.
func doWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		if attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
