package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/localpulse/localpulse/pkg/logging"
	"github.com/localpulse/localpulse/pkg/ratelimit"
)

// FetchConfig controls how venue pages are downloaded.
type FetchConfig struct {
	UserAgent   string
	Timeout     time.Duration
	MaxBodySize int64
	MinInterval time.Duration // per-host spacing between requests
}

// DefaultFetchConfig returns the polite defaults used by the scraper.
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		UserAgent:   "LocalPulse-Scraper/1.0 (event listings; contact: hello@localpulse.app)",
		Timeout:     30 * time.Second,
		MaxBodySize: 5 * 1024 * 1024,
		MinInterval: 2 * time.Second,
	}
}

// Client downloads venue pages for extraction.
type Client struct {
	http    *http.Client
	config  FetchConfig
	limiter *ratelimit.HostLimiter
	logger  zerolog.Logger
}

// NewClient builds a fetch client.
func NewClient(config FetchConfig) *Client {
	return &Client{
		http: &http.Client{
			Timeout: config.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		config:  config,
		limiter: ratelimit.NewHostLimiter(config.MinInterval),
		logger:  logging.GetLogger("fetch"),
	}
}

// Fetch downloads one page and returns its HTML. Requests to the same
// host are spaced out by MinInterval, and the body is capped at
// MaxBodySize.
func (c *Client) Fetch(ctx context.Context, pageURL string) (string, error) {
	host := hostOf(pageURL)
	if err := c.limiter.Wait(ctx, host); err != nil {
		return "", err
	}

	html, err := c.fetch(ctx, pageURL)
	if err != nil {
		c.limiter.RecordError(host)
		return "", err
	}
	c.limiter.RecordSuccess(host)
	return html, nil
}

func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBodySize))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}

	c.logger.Debug().
		Str("url", url).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("Fetched page")
	return string(body), nil
}

func hostOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return pageURL
	}
	return u.Host
}
