// Package fetch provides the rate-limited HTTP capability the discovery
// sources are built on. It reports response statuses to callers instead of
// mapping them to errors; the sources own that decision.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const userAgent = "vidshelf/1.0"

// Client handles HTTP requests to the video site.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
}

// New creates a new client.
func New(reqPerSec float64) *Client {
	if reqPerSec <= 0 {
		reqPerSec = 5.0
	}

	return &Client{
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(reqPerSec), 5),
	}
}

// FetchText fetches a URL and returns the response status and body.
// The error is non-nil only for transport failures; non-2xx statuses are
// returned with a nil error and the (possibly empty) body.
func (c *Client) FetchText(ctx context.Context, rawURL string) (int, string, error) {
	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("reading %s: %w", rawURL, err)
	}
	return resp.StatusCode, string(body), nil
}

// FetchJSON fetches a URL and decodes the response body into v.
// The body is decoded only for 2xx responses; other statuses are returned
// with a nil error and v untouched. A 2xx body that is not valid JSON
// returns the status alongside the decode error.
func (c *Client) FetchJSON(ctx context.Context, rawURL string, v any) (int, error) {
	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return resp.StatusCode, fmt.Errorf("decoding %s: %w", rawURL, err)
	}
	return resp.StatusCode, nil
}

func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	// The manifest and listing may change between runs; never serve stale copies.
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	return resp, nil
}
