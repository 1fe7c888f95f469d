package http

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/hopperhttp/hopper/transport"
)

// Option is a function that configures a Client.
type Option func(*Client)

// WithTransport sets the transport capability used for every exchange.
// When the transport also implements transport.Multiplexer, the async
// path uses it directly.
func WithTransport(t transport.Transport) Option {
	return func(c *Client) {
		c.transport = t
		c.mux = nil
	}
}

// WithMultiplexer overrides the multiplexer used by the async path.
func WithMultiplexer(m transport.Multiplexer) Option {
	return func(c *Client) {
		c.mux = m
	}
}

// WithBaseURL sets the base URL resolved against relative request URLs.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHeader adds a default header merged into every request. Headers set
// on individual requests override these defaults.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithTimeout bounds each exchange, including redirect hops.
// The default timeout is 30 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.opts.Timeout = timeout
	}
}

// WithFollowRedirects toggles transparent redirect following.
// Redirects are followed by default.
func WithFollowRedirects(follow bool) Option {
	return func(c *Client) {
		c.opts.FollowRedirects = follow
	}
}

// WithMaxRedirects caps the number of followed redirect hops.
func WithMaxRedirects(n int) Option {
	return func(c *Client) {
		c.opts.MaxRedirects = n
	}
}

// WithInsecureSkipVerify disables TLS certificate verification.
// WARNING: This should only be used for testing purposes.
func WithInsecureSkipVerify() Option {
	return func(c *Client) {
		c.opts.InsecureSkipVerify = true
	}
}

// WithRaiseHTTPErrors makes Send return an *HTTPError when the final
// status is an error status instead of returning the Response. The async
// path is unaffected: it always delivers HTTP errors to the error
// callback.
func WithRaiseHTTPErrors() Option {
	return func(c *Client) {
		c.raiseHTTPErrors = true
	}
}

// WithLogger enables structured debug logging of attempts, retries and
// async completions. The default logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithCircuitBreaker wraps the synchronous path's transport calls in a
// circuit breaker. While the circuit is open, attempts fail with a
// transport-level error and flow through the usual exception hook.
func WithCircuitBreaker(settings gobreaker.Settings) Option {
	return func(c *Client) {
		c.breaker = gobreaker.NewCircuitBreaker[*transport.Result](settings)
	}
}
