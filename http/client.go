package http

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/hopperhttp/hopper/transport"
)

// Client is an HTTP client engine layering a hook-driven retry protocol
// and an asynchronous multiplexed dispatch path over a raw Transport.
//
// The synchronous path (Send and the convenience verbs) is safe for
// concurrent use. The asynchronous path (Dispatch, Poll, WaitAll) follows
// a single-threaded cooperative discipline: those three methods must not
// be called concurrently on the same Client.
type Client struct {
	transport       transport.Transport
	mux             transport.Multiplexer
	opts            transport.Options
	baseURL         string
	headers         map[string]string
	raiseHTTPErrors bool
	hooks           hookRegistry
	logger          zerolog.Logger
	breaker         *gobreaker.CircuitBreaker[*transport.Result]

	// async state, owned by Dispatch/Poll/WaitAll
	handle  transport.Handle
	pending map[uint64]*inFlightEntry
}

// New constructs a Client using the provided functional options.
//
// Example:
//
//	client := http.New(
//	    http.WithBaseURL("https://api.example.com"),
//	    http.WithTimeout(10*time.Second),
//	    http.WithRaiseHTTPErrors(),
//	)
func New(options ...Option) *Client {
	client := &Client{
		transport: transport.NewHTTPTransport(),
		opts: transport.Options{
			FollowRedirects: true,
			MaxRedirects:    10,
			Timeout:         30 * time.Second,
		},
		headers: make(map[string]string),
		logger:  zerolog.Nop(),
		pending: make(map[uint64]*inFlightEntry),
	}

	for _, option := range options {
		option(client)
	}

	if client.mux == nil {
		if m, ok := client.transport.(transport.Multiplexer); ok {
			client.mux = m
		} else {
			client.mux = transport.NewMultiplexer(client.transport)
		}
	}

	return client
}

// On subscribes a hook to a named event. Subscribers for one event run
// synchronously in registration order.
func (c *Client) On(event string, fn HookFunc) {
	c.hooks.on(event, fn)
}

// Send executes the request, retrying as long as a hook subscriber
// requests it. Without subscribers exactly one attempt is made.
//
// Send returns the final Response, or an error when the last attempt
// failed at the transport level, or an *HTTPError when the client is
// configured with WithRaiseHTTPErrors and the final status is an error
// status.
func (c *Client) Send(ctx context.Context, req *Request) (*Response, error) {
	c.hooks.emit(&Event{Name: EventBeforeRequest, Request: req})

	retries := 0
	for {
		// Rebuilt every attempt: error and exception subscribers may
		// mutate the Request between attempts.
		treq, err := req.build(c.baseURL, c.headers)
		if err != nil {
			return nil, err
		}

		outcome := c.attempt(ctx, treq)

		if outcome.IsTransportError() {
			decision := &RetryDecision{Count: retries}
			c.hooks.emit(&Event{Name: EventException, Request: req, Failure: outcome.Failure, Decision: decision})
			if !decision.Retry {
				return nil, outcome.Failure
			}
			retries++
			c.logger.Debug().
				Str("method", req.Method).
				Str("url", req.URL).
				Int("retry", retries).
				Str("cause", outcome.Failure.Code.String()).
				Msg("retrying after transport failure")
			continue
		}

		resp := outcome.Response
		if outcome.IsHTTPError() {
			decision := &RetryDecision{Count: retries}
			c.hooks.emit(&Event{Name: EventError, Request: req, Response: resp, Decision: decision})
			c.hooks.emit(&Event{Name: ErrorEvent(resp.StatusCode), Request: req, Response: resp, Decision: decision})
			if decision.Retry {
				retries++
				c.logger.Debug().
					Str("method", req.Method).
					Str("url", req.URL).
					Int("retry", retries).
					Int("status", resp.StatusCode).
					Msg("retrying after error status")
				continue
			}
		}

		c.hooks.emit(&Event{Name: EventAfterRequest, Request: req, Response: resp})
		c.logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL).
			Int("status", resp.StatusCode).
			Int("retries", retries).
			Msg("request finished")

		if c.raiseHTTPErrors && resp.IsError() {
			return nil, &HTTPError{Response: resp}
		}
		return resp, nil
	}
}

// attempt performs one transport exchange and classifies it.
func (c *Client) attempt(ctx context.Context, treq *transport.Request) Outcome {
	if c.breaker == nil {
		return classify(c.transport.Execute(ctx, treq, c.opts))
	}

	res, err := c.breaker.Execute(func() (*transport.Result, error) {
		res, terr := c.transport.Execute(ctx, treq, c.opts)
		if terr != nil {
			return nil, terr
		}
		return res, nil
	})
	if err != nil {
		var terr *transport.Error
		if !errors.As(err, &terr) {
			// Rejected by the breaker without reaching the transport.
			terr = &transport.Error{Code: transport.CodeUnknown, Message: "circuit breaker rejected request", Cause: err}
		}
		return classify(nil, terr)
	}
	return classify(res, nil)
}

// Get is a convenience method for making GET requests.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	return c.Send(ctx, NewRequest("GET", url))
}

// Post is a convenience method for making POST requests with a body.
func (c *Client) Post(ctx context.Context, url, contentType string, body []byte) (*Response, error) {
	return c.Send(ctx, NewRequest("POST", url).WithHeader("Content-Type", contentType).WithBody(body))
}

// Put is a convenience method for making PUT requests with a body.
func (c *Client) Put(ctx context.Context, url, contentType string, body []byte) (*Response, error) {
	return c.Send(ctx, NewRequest("PUT", url).WithHeader("Content-Type", contentType).WithBody(body))
}

// Delete is a convenience method for making DELETE requests.
func (c *Client) Delete(ctx context.Context, url string) (*Response, error) {
	return c.Send(ctx, NewRequest("DELETE", url))
}
