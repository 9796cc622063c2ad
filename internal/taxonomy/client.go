package taxonomy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the O*NET Web Services endpoint.
	DefaultBaseURL = "https://services.onetcenter.org/ws"

	// DefaultTimeout is the per-call HTTP timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent identifies us to the taxonomy service.
	DefaultUserAgent = "skillsource/1.0"

	// defaultMaxAttempts bounds retries of transient failures per call.
	defaultMaxAttempts = 3

	// defaultBackoff is the initial retry delay, doubled per attempt.
	defaultBackoff = 500 * time.Millisecond
)

// Limiter gates outbound calls. It matches ratelimit.Limiter without
// importing it, so tests can pass anything with an Acquire method.
type Limiter interface {
	Acquire(ctx context.Context) error
}

// Options configures the taxonomy client.
type Options struct {
	BaseURL     string
	APIKey      string
	Timeout     time.Duration
	UserAgent   string
	MaxAttempts int
	Backoff     time.Duration
}

// DefaultOptions returns sensible defaults; the API key must still be set.
func DefaultOptions() *Options {
	return &Options{
		BaseURL:     DefaultBaseURL,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxAttempts: defaultMaxAttempts,
		Backoff:     defaultBackoff,
	}
}

// Client is an HTTP RemoteLookup implementation for the O*NET service.
// Every call waits on the injected limiter before touching the network and
// retries transient failures with exponential backoff.
type Client struct {
	opts    *Options
	http    *http.Client
	limiter Limiter
	cache   *ResponseCache // optional, nil disables memoization
}

// NewClient creates a taxonomy client. limiter must not be nil; cache may
// be nil to disable on-disk response memoization.
func NewClient(opts *Options, limiter Limiter, cache *ResponseCache) (*Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.Backoff <= 0 {
		opts.Backoff = defaultBackoff
	}
	if opts.APIKey == "" {
		return nil, fmt.Errorf("taxonomy API key is required")
	}
	if limiter == nil {
		return nil, fmt.Errorf("rate limiter is required")
	}

	return &Client{
		opts:    opts,
		http:    &http.Client{Timeout: opts.Timeout},
		limiter: limiter,
		cache:   cache,
	}, nil
}

type searchResponse struct {
	Occupations []Occupation `json:"occupation"`
}

type skillsResponse struct {
	Skills []Skill `json:"element"`
}

// Search returns occupations relevant to a keyword. An empty result is not
// an error.
func (c *Client) Search(ctx context.Context, keyword string) ([]Occupation, error) {
	endpoint := fmt.Sprintf("%s/online/search?keyword=%s", c.opts.BaseURL, url.QueryEscape(keyword))

	body, err := c.get(ctx, "search", endpoint)
	if err != nil {
		return nil, err
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &Error{Op: "search", URL: endpoint, Message: "malformed response", Cause: err}
	}
	return parsed.Occupations, nil
}

// SkillsFor returns the skill elements associated with an occupation code.
func (c *Client) SkillsFor(ctx context.Context, occupationCode string) ([]Skill, error) {
	endpoint := fmt.Sprintf("%s/online/occupations/%s/summary/skills", c.opts.BaseURL, url.PathEscape(occupationCode))

	body, err := c.get(ctx, "skills", endpoint)
	if err != nil {
		return nil, err
	}

	var parsed skillsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &Error{Op: "skills", URL: endpoint, Message: "malformed response", Cause: err}
	}
	return parsed.Skills, nil
}

// get fetches a URL with rate limiting, response caching, and bounded
// retries. The returned error is always a *Error.
func (c *Client) get(ctx context.Context, op, endpoint string) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(endpoint); ok {
			return body, nil
		}
	}

	var lastErr error
	backoff := c.opts.Backoff
	for attempt := 1; attempt <= c.opts.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, &Error{Op: op, URL: endpoint, Message: "cancelled", Retryable: false, Cause: ctx.Err()}
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		if err := c.limiter.Acquire(ctx); err != nil {
			return nil, &Error{Op: op, URL: endpoint, Message: "cancelled while throttled", Cause: err}
		}

		body, err := c.fetch(ctx, op, endpoint)
		if err == nil {
			if c.cache != nil {
				c.cache.Put(endpoint, body)
			}
			return body, nil
		}

		lastErr = err
		var terr *Error
		if errors.As(err, &terr) && !terr.Retryable {
			return nil, err
		}
	}
	return nil, lastErr
}

// fetch performs a single HTTP round trip and classifies the outcome.
func (c *Client) fetch(ctx context.Context, op, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &Error{Op: op, URL: endpoint, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("X-API-Key", c.opts.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		// Network-level failures (DNS, timeout, refused) are transient.
		return nil, &Error{Op: op, URL: endpoint, Message: "request failed", Retryable: true, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: op, URL: endpoint, Message: "failed to read response body", Retryable: true, Cause: err}
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &Error{Op: op, URL: endpoint, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode), Terminal: true}
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &Error{Op: op, URL: endpoint, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode), Retryable: true}
	default:
		return nil, &Error{Op: op, URL: endpoint, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
}
