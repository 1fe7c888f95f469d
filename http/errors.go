package http

import "fmt"

// HTTPError reports a completed exchange whose final status was an error.
// It carries the framed Response so callers can inspect headers and body.
type HTTPError struct {
	Response *Response
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("http: server returned status %d", e.Response.StatusCode)
}

// StatusCode returns the response's status code.
func (e *HTTPError) StatusCode() int {
	return e.Response.StatusCode
}
