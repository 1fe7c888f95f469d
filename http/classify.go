package http

import "github.com/hopperhttp/hopper/transport"

// httpErrorThreshold is the conventional client/server error boundary.
// Statuses at or above it classify as HTTP errors; it is not configurable.
const httpErrorThreshold = 400

// Outcome is the tri-state classification of a completed attempt.
// Exactly one of Response and Failure is set; an Outcome with a Response
// is an HTTP error when the status is at or above the threshold.
type Outcome struct {
	Response *Response
	Failure  *transport.Error
}

// IsTransportError reports whether the attempt failed below the HTTP layer.
func (o Outcome) IsTransportError() bool {
	return o.Failure != nil
}

// IsHTTPError reports whether the attempt completed with an error status.
func (o Outcome) IsHTTPError() bool {
	return o.Response != nil && o.Response.StatusCode >= httpErrorThreshold
}

// IsSuccess reports whether the attempt completed with a non-error status.
func (o Outcome) IsSuccess() bool {
	return o.Response != nil && o.Response.StatusCode < httpErrorThreshold
}

// Err returns the outcome as an error: the transport failure, an
// *HTTPError wrapping the response, or nil on success.
func (o Outcome) Err() error {
	switch {
	case o.IsTransportError():
		return o.Failure
	case o.IsHTTPError():
		return &HTTPError{Response: o.Response}
	default:
		return nil
	}
}

// classify turns a raw transport result or failure into an Outcome,
// framing the response when the exchange completed.
func classify(res *transport.Result, terr *transport.Error) Outcome {
	if terr != nil {
		return Outcome{Failure: terr}
	}
	return Outcome{Response: frameResponse(res.Raw, res.HeaderLen, res.StatusCode)}
}
