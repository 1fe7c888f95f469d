package http

import (
	"encoding/json"
	nethttp "net/http"
)

// Response represents a framed HTTP response. Responses are constructed
// only by the framer; the status code is always the one reported by the
// final hop of a multi-hop exchange.
type Response struct {
	// StatusCode is the HTTP status code (e.g., 200, 404, 500)
	StatusCode int

	// Headers contains the final hop's response headers
	Headers nethttp.Header

	// Body is the raw response body, undecoded
	Body []byte
}

// GetHeader returns the value of the specified header.
// Returns an empty string if the header is not present.
func (r *Response) GetHeader(key string) string {
	return r.Headers.Get(key)
}

// GetBodyAsString returns the response body as a string.
func (r *Response) GetBodyAsString() string {
	return string(r.Body)
}

// GetBodyAsJSON unmarshals the response body into the provided value.
//
// Example:
//
//	var users []User
//	if err := resp.GetBodyAsJSON(&users); err != nil {
//	    log.Fatal(err)
//	}
func (r *Response) GetBodyAsJSON(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

// IsSuccess returns true if the response status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsRedirect returns true if the response status code is in the 3xx range.
func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

// IsClientError returns true if the response status code is in the 4xx range.
func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

// IsServerError returns true if the response status code is in the 5xx range.
func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500 && r.StatusCode < 600
}

// IsError returns true if the response status code indicates an error (4xx or 5xx).
func (r *Response) IsError() bool {
	return r.StatusCode >= httpErrorThreshold
}
