package omdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Querier issues a single OMDB query
type Querier interface {
	Query(ctx context.Context, filters Filters) (*Result, error)
}

// Client represents an OMDB API client
type Client struct {
	baseURL    *url.URL
	apiKey     string
	httpClient Doer
	userAgent  string
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// NewClient creates a new OMDB client
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	base, err := url.Parse(o.baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: invalid base URI %q", ErrInvalidConfig, o.baseURL)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	return &Client{
		baseURL:    base,
		apiKey:     apiKey,
		httpClient: httpClient,
		userAgent:  o.userAgent,
		limiter:    o.limiter,
		logger:     logger,
	}, nil
}

// Query validates filters, performs the GET request and classifies the response
func (c *Client) Query(ctx context.Context, filters Filters) (*Result, error) {
	if err := Validate(filters); err != nil {
		return nil, err
	}

	status, body, err := c.get(ctx, c.buildURL(filters))
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("status", status).
		Int("bytes", len(body)).
		Msg("Received OMDB response")

	return newResult(c, status, body)
}

// buildURL adds the server-required parameters to filters and encodes them
func (c *Client) buildURL(filters Filters) string {
	params := url.Values{}
	for key, value := range filters {
		params.Set(key, value)
	}
	params.Set("apikey", c.apiKey)
	params.Set("r", "json")

	u := *c.baseURL
	u.RawQuery = params.Encode()
	return u.String()
}

// get performs the request and returns the status code and body
func (c *Client) get(ctx context.Context, requestURL string) (int, []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, nil, fmt.Errorf("rate limit wait failed: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().
		Str("url", redactKey(requestURL)).
		Msg("Making OMDB API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, body, nil
}

// redactKey hides the API key before a URL is logged
func redactKey(requestURL string) string {
	u, err := url.Parse(requestURL)
	if err != nil {
		return requestURL
	}
	q := u.Query()
	if q.Has("apikey") {
		q.Set("apikey", strings.Repeat("*", 4))
		u.RawQuery = q.Encode()
	}
	return u.String()
}
