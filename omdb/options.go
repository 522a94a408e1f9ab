package omdb

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public OMDB endpoint
const DefaultBaseURL = "http://www.omdbapi.com/"

// Doer performs HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL    string
	timeout    time.Duration
	httpClient Doer
	userAgent  string
	limiter    *rate.Limiter
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL:   DefaultBaseURL,
		timeout:   30 * time.Second,
		userAgent: "omdbq",
	}
}

// WithBaseURL points the client at another OMDB compatible endpoint.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithTimeout sets the HTTP client timeout. Ignored when WithHTTPClient is used.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the transport used for requests.
func WithHTTPClient(doer Doer) Option {
	return func(o *clientOptions) {
		o.httpClient = doer
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithRateLimit limits outgoing requests to requestsPerSecond with the given burst.
// The free OMDB tier allows 1000 requests a day.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(o *clientOptions) {
		if requestsPerSecond <= 0 {
			o.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		o.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}
