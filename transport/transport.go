// Package transport defines the network-execution capability the hopper
// engine delegates to, along with a default implementation backed by
// net/http. A Transport performs one blocking exchange and hands back the
// raw bytes of the response together with the metadata the engine needs
// to frame it; a Multiplexer drives many exchanges from one control loop.
package transport

import (
	"context"
	"io"
	"time"
)

// Request is a fully-formed outgoing exchange. Body and BodyStream are
// mutually exclusive; when both are set, Body wins.
type Request struct {
	Method     string
	URL        string
	Header     map[string]string
	Body       []byte
	BodyStream io.Reader
}

// Options is the fixed option set merged into every exchange performed on
// behalf of one client.
type Options struct {
	// FollowRedirects enables transparent redirect following. Each
	// followed hop contributes its own header section to Result.Raw.
	FollowRedirects bool

	// MaxRedirects caps the number of followed hops when FollowRedirects
	// is enabled. Exceeding it fails the exchange with CodeRedirectLoop.
	MaxRedirects int

	// Timeout bounds the whole exchange, including redirect hops.
	// Zero means no timeout.
	Timeout time.Duration

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool
}

// Result is the raw outcome of a completed exchange: an undifferentiated
// byte blob holding one or more header sections followed by the final
// body, plus the metadata needed to split them.
type Result struct {
	// Raw is the header section(s) followed immediately by the body.
	Raw []byte

	// HeaderLen is the number of bytes of Raw occupied by header
	// sections. Raw[HeaderLen:] is the body.
	HeaderLen int

	// StatusCode is the status reported by the final hop.
	StatusCode int
}

// Transport performs a single blocking exchange. A nil *Error means the
// exchange completed and Result is populated; the result may still carry
// an HTTP error status, which is not the transport's concern.
type Transport interface {
	Execute(ctx context.Context, req *Request, opts Options) (*Result, *Error)
}

// Completion is one finished exchange drained from a multiplex handle.
// Exactly one of Result and Err is set.
type Completion struct {
	ID     uint64
	Result *Result
	Err    *Error
}

// Handle drives many concurrent exchanges from one control loop. Handles
// are not safe for concurrent use: Register, Step and Wait must all be
// called from the same goroutine.
type Handle interface {
	// Register starts an exchange and returns its handle identifier.
	Register(req *Request, opts Options) uint64

	// Step drains every exchange that has completed since the last call
	// without blocking, and reports whether any are still running.
	Step() (done []Completion, running bool)

	// Wait blocks until at least one completion is available for the
	// next Step. It returns immediately when nothing is running.
	Wait()
}

// Multiplexer creates multiplex handles.
type Multiplexer interface {
	Begin() Handle
}
