package spotify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const maxRetries = 3

// get makes an authenticated GET request to the Web API with bounded retry.
//
// It handles:
// - Lazy token acquisition and renewal on 401
// - Rate limiting (429 with Retry-After)
// - Transient network and server errors with exponential backoff
// - Context cancellation
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	var lastErr error
	backoff := 1 * time.Second

	for i := 0; i < maxRetries; i++ {
		c.logDebugf("spotify: GET %s (attempt %d/%d)", path, i+1, maxRetries)

		token, err := c.token(ctx)
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path+"?"+query.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if shouldRetryNetworkError(err) && i < maxRetries-1 {
				c.logDebugf("spotify: network error, retrying: %v", err)
				if !sleep(ctx, backoff) {
					return nil, ctx.Err()
				}
				backoff = nextBackoff(backoff)
				continue
			}
			return nil, fmt.Errorf("http request failed: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return body, nil

		case resp.StatusCode == http.StatusUnauthorized:
			// Token expired or was revoked; renew once per attempt.
			c.invalidateToken()
			lastErr = parseAPIError(resp.StatusCode, body)
			continue

		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = parseAPIError(resp.StatusCode, body)
			if i < maxRetries-1 {
				wait := backoff
				if s := resp.Header.Get("Retry-After"); s != "" {
					if secs, err := strconv.Atoi(s); err == nil {
						wait = time.Duration(secs) * time.Second
					}
				}
				c.logDebugf("spotify: rate limited, retrying in %s", wait)
				if !sleep(ctx, wait) {
					return nil, ctx.Err()
				}
				backoff = nextBackoff(backoff)
				continue
			}
			return nil, lastErr

		case resp.StatusCode >= 500:
			lastErr = parseAPIError(resp.StatusCode, body)
			if i < maxRetries-1 {
				c.logDebugf("spotify: server error, retrying: %v", lastErr)
				if !sleep(ctx, backoff) {
					return nil, ctx.Err()
				}
				backoff = nextBackoff(backoff)
				continue
			}
			return nil, lastErr

		default:
			return nil, parseAPIError(resp.StatusCode, body)
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// shouldRetryNetworkError checks if a network error is retryable.
func shouldRetryNetworkError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Temporary()
}

// sleep waits for the specified duration or until context is cancelled.
// Returns true if sleep completed, false if context was cancelled.
func sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(duration):
		return true
	}
}

// nextBackoff calculates the next backoff duration with exponential
// increase, capped at 30 seconds.
func nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > 30*time.Second {
		return 30 * time.Second
	}
	return next
}
