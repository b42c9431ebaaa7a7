package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"BulletinScanner/internal/ports"
)

const defaultTimeout = 30 * time.Second

// Client retrieves bulletin pages over HTTP.
type Client struct {
	rest *resty.Client
}

var _ ports.PageFetcher = (*Client)(nil)

// New builds a fetcher with the given per-request timeout and user agent.
func New(timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rest := resty.New().SetTimeout(timeout)
	if userAgent != "" {
		rest.SetHeader("User-Agent", userAgent)
	}
	return &Client{rest: rest}
}

// FetchPage GETs one page and returns its body as text.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (string, error) {
	resp, err := c.rest.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return "", fmt.Errorf("request %s: %w", pageURL, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s for %s", resp.Status(), pageURL)
	}
	return resp.String(), nil
}
