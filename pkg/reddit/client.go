// Package reddit is a minimal read-only client for subreddit listings.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/triclops200/besttime/pkg/pagecache"
)

const (
	defaultBaseURL   = "https://www.reddit.com"
	defaultUserAgent = "besttime/1.0 (best posting time estimator)"
	maxLimit         = 100
)

// Client fetches subreddit listing pages with retry and optional caching.
// It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	cache      *pagecache.Cache
	baseURL    string
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent sets the User-Agent header. The API throttles generic agents
// aggressively, so callers should identify themselves.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithBaseURL points the client at a different host.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

// WithCache enables read-through caching of listing pages.
func WithCache(cache *pagecache.Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// NewClient creates a listing client.
func NewClient(logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		baseURL:    defaultBaseURL,
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListingRequest describes one page fetch. Zero values select the defaults:
// sort top, window day, limit 100, no cursor.
type ListingRequest struct {
	Subreddit string
	Sort      Sort
	Window    Window
	After     string
	Limit     int
}

// Listing fetches a single page of a subreddit listing.
func (c *Client) Listing(ctx context.Context, req ListingRequest) (Page, error) {
	if req.Subreddit == "" {
		return Page{}, fmt.Errorf("%w: subreddit is required", ErrInvalidArgument)
	}
	sort, err := ParseSort(string(req.Sort))
	if err != nil {
		return Page{}, err
	}
	window, err := ParseWindow(string(req.Window))
	if err != nil {
		return Page{}, err
	}
	limit := req.Limit
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}

	q := url.Values{}
	q.Set("t", string(window))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("raw_json", "1")
	if req.After != "" {
		q.Set("after", req.After)
	}
	apiURL := fmt.Sprintf("%s/r/%s/%s.json?%s", c.baseURL, url.PathEscape(req.Subreddit), sort, q.Encode())

	body, err := c.fetch(ctx, apiURL)
	if err != nil {
		return Page{}, fmt.Errorf("fetching r/%s listing: %w", req.Subreddit, err)
	}

	var env listing
	if err := json.Unmarshal(body, &env); err != nil {
		return Page{}, fmt.Errorf("decoding r/%s listing: %w", req.Subreddit, err)
	}

	page := Page{After: env.Data.After}
	for _, child := range env.Data.Children {
		page.Posts = append(page.Posts, child.Data)
	}
	c.logger.Debug("fetched listing page", "subreddit", req.Subreddit,
		"sort", sort, "window", window, "after", req.After,
		"posts", len(page.Posts), "next", page.After)
	return page, nil
}

// fetch retrieves a URL through the cache, retrying transient failures with
// exponential backoff and jitter.
func (c *Client) fetch(ctx context.Context, apiURL string) ([]byte, error) {
	if c.cache != nil {
		if data, ok := c.cache.Get(apiURL); ok {
			return data, nil
		}
	}

	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, http.NoBody)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("creating request: %w", err))
			}
			req.Header.Set("User-Agent", c.userAgent)

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := resp.Body.Close(); closeErr != nil {
					c.logger.Debug("failed to close response body", "error", closeErr)
				}
			}()

			if resp.StatusCode == http.StatusTooManyRequests {
				// Backing off further would still hammer a throttled public API.
				return retry.Unrecoverable(fmt.Errorf("rate limited (HTTP %d)", resp.StatusCode))
			}
			if resp.StatusCode >= 500 {
				snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
				return fmt.Errorf("server error (HTTP %d): %s", resp.StatusCode, snippet)
			}
			if resp.StatusCode != http.StatusOK {
				snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
				return retry.Unrecoverable(fmt.Errorf("HTTP %d: %s", resp.StatusCode, snippet))
			}

			body, err = io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("reading response body: %w", err)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(4),
		retry.Delay(time.Second),
		retry.MaxDelay(30*time.Second),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying listing fetch", "attempt", n+1, "url", apiURL, "error", err)
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Set(apiURL, body)
	}
	return body, nil
}
