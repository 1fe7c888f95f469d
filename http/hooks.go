package http

import (
	"strconv"

	"github.com/hopperhttp/hopper/transport"
)

// Event names emitted by the client. Status-scoped error channels are
// composed with ErrorEvent.
const (
	// EventBeforeRequest fires once per Send call (never per attempt) and
	// once per Dispatch. Subscribers may mutate the Request in place.
	EventBeforeRequest = "beforeRequest"

	// EventAfterRequest fires when the synchronous path reaches a final
	// Response, whether success or an unretried HTTP error.
	EventAfterRequest = "afterRequest"

	// EventError fires on every attempt that completes with an error
	// status, followed by the status-scoped channel (e.g. "error:503").
	EventError = "error"

	// EventException fires on every attempt that fails at the transport
	// level.
	EventException = "exception"
)

// ErrorEvent returns the status-scoped error channel name, e.g. "error:404".
func ErrorEvent(status int) string {
	return EventError + ":" + strconv.Itoa(status)
}

// RetryDecision is the mutable decision object handed to error and
// exception subscribers. The client inspects Retry after every subscriber
// for the event has run.
type RetryDecision struct {
	// Retry requests another attempt when set by any subscriber.
	Retry bool

	// Count is the number of retries performed so far: 0 on the first
	// failed attempt, incremented once per retry.
	Count int
}

// Event carries the data for one hook invocation. Fields are populated
// according to the event: beforeRequest sees only the Request,
// afterRequest adds the Response, error events add Response and Decision,
// and exception carries Failure and Decision instead of a Response.
type Event struct {
	Name     string
	Request  *Request
	Response *Response
	Failure  *transport.Error
	Decision *RetryDecision
}

// HookFunc is a hook subscriber. Handlers run synchronously on the
// calling goroutine, in registration order.
type HookFunc func(e *Event)

// hookRegistry is a per-client named event bus.
type hookRegistry struct {
	handlers map[string][]HookFunc
}

func (h *hookRegistry) on(event string, fn HookFunc) {
	if h.handlers == nil {
		h.handlers = make(map[string][]HookFunc)
	}
	h.handlers[event] = append(h.handlers[event], fn)
}

func (h *hookRegistry) emit(e *Event) {
	for _, fn := range h.handlers[e.Name] {
		fn(e)
	}
}
