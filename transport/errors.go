package transport

import "fmt"

// Code identifies the class of a transport-level failure.
type Code int

const (
	CodeUnknown Code = iota
	CodeConnect
	CodeDNS
	CodeTLS
	CodeTimeout
	CodeRedirectLoop
)

// String returns a short lowercase name for the code.
func (c Code) String() string {
	switch c {
	case CodeConnect:
		return "connect"
	case CodeDNS:
		return "dns"
	case CodeTLS:
		return "tls"
	case CodeTimeout:
		return "timeout"
	case CodeRedirectLoop:
		return "redirect-loop"
	default:
		return "unknown"
	}
}

// Error is a transport-level failure: the exchange never produced a
// usable response. It carries a coarse classification code, a message and
// the underlying cause when one exists.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("transport: %s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("transport: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Timeout reports whether the failure was a timeout, satisfying the
// convention used by net.Error.
func (e *Error) Timeout() bool {
	return e.Code == CodeTimeout
}
