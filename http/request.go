package http

import (
	"encoding/json"
	"io"
	"net/url"
	"strings"

	"github.com/hopperhttp/hopper/transport"
)

// Request represents an HTTP request with a fluent builder pattern.
// Use NewRequest to create a Request and chain method calls to configure
// it. A Request must not be mutated while an attempt is in flight; hook
// subscribers may mutate it between attempts.
type Request struct {
	Method     string
	URL        string
	Headers    map[string]string
	Body       []byte
	BodyStream io.Reader

	buildErr error
}

// NewRequest creates a request with the given method and URL. The URL may
// be absolute or a path resolved against the client's base URL.
//
// Example:
//
//	req := http.NewRequest("GET", "/users").
//	    WithHeader("Accept", "application/json")
func NewRequest(method, rawurl string) *Request {
	return &Request{
		Method:  method,
		URL:     rawurl,
		Headers: make(map[string]string),
	}
}

// WithHeader adds a header to the request.
// Returns the Request to allow method chaining.
func (r *Request) WithHeader(key, value string) *Request {
	r.Headers[key] = value
	return r
}

// WithHeaders adds multiple headers to the request.
// Returns the Request to allow method chaining.
func (r *Request) WithHeaders(headers map[string]string) *Request {
	for key, value := range headers {
		r.Headers[key] = value
	}
	return r
}

// WithBody sets an in-memory request body, clearing any body stream.
// Returns the Request to allow method chaining.
func (r *Request) WithBody(body []byte) *Request {
	r.Body = body
	r.BodyStream = nil
	return r
}

// WithBodyString sets an in-memory request body from a string.
// Returns the Request to allow method chaining.
func (r *Request) WithBodyString(body string) *Request {
	return r.WithBody([]byte(body))
}

// WithBodyStream sets a streaming request body, clearing any in-memory
// body. The stream is consumed by the attempt that sends it.
// Returns the Request to allow method chaining.
func (r *Request) WithBodyStream(stream io.Reader) *Request {
	r.BodyStream = stream
	r.Body = nil
	return r
}

// WithJSON marshals v as the request body and sets the Content-Type
// header to application/json. A marshal failure is reported when the
// request is sent.
// Returns the Request to allow method chaining.
func (r *Request) WithJSON(v interface{}) *Request {
	body, err := json.Marshal(v)
	if err != nil {
		r.buildErr = err
		return r
	}
	r.Headers["Content-Type"] = "application/json"
	return r.WithBody(body)
}

// WithFormData sets the body as URL-encoded form data and sets the
// Content-Type header accordingly.
// Returns the Request to allow method chaining.
func (r *Request) WithFormData(data map[string]string) *Request {
	values := url.Values{}
	for key, value := range data {
		values.Set(key, value)
	}
	r.Headers["Content-Type"] = "application/x-www-form-urlencoded"
	return r.WithBodyString(values.Encode())
}

// build resolves the request against the client's base URL and default
// headers into the transport's wire form.
func (r *Request) build(baseURL string, defaults map[string]string) (*transport.Request, error) {
	if r.buildErr != nil {
		return nil, r.buildErr
	}

	target := r.URL
	if baseURL != "" && !strings.Contains(target, "://") {
		target = strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(target, "/")
	}
	if _, err := url.Parse(target); err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(defaults)+len(r.Headers))
	for key, value := range defaults {
		headers[key] = value
	}
	// Request headers override client defaults.
	for key, value := range r.Headers {
		headers[key] = value
	}

	return &transport.Request{
		Method:     r.Method,
		URL:        target,
		Header:     headers,
		Body:       r.Body,
		BodyStream: r.BodyStream,
	}, nil
}
