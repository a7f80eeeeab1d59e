// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides request pacing and retry helpers for API clients.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 10 * time.Second

const defaultMaxRetries = 3

// DoWithRetry executes an HTTP request and retries transient failures:
// transport errors, HTTP 429 and HTTP 5xx. Every attempt first waits on
// pacer (when non-nil) so retries respect the client's request spacing.
// A 429 additionally backs off exponentially from RetryBaseDelay.
//
// When maxRetries is 0 the default (3) is used; a negative value disables
// retries. If the context is cancelled during a wait the function returns
// ctx.Err(). After exhausting retries the last transient response is
// returned so the caller can inspect its status, or the last transport
// error if no response was received.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int, pacer *Pacer) (*http.Response, error) {
	switch {
	case maxRetries == 0:
		maxRetries = defaultMaxRetries
	case maxRetries < 0:
		maxRetries = 0
	}

	for attempt := 0; ; attempt++ {
		if err := pacer.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			if ctx.Err() != nil || attempt >= maxRetries {
				return nil, err
			}
			continue
		}

		if !isTransient(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusTooManyRequests {
			continue
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

func isTransient(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
