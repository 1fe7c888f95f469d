package transport

import "context"

// NewMultiplexer adapts any Transport into a Multiplexer. Each registered
// exchange runs on its own goroutine; the handle collects completions
// through a channel that Step drains without blocking and Wait blocks on.
func NewMultiplexer(t Transport) Multiplexer {
	return multiplexer{t: t}
}

type multiplexer struct {
	t Transport
}

func (m multiplexer) Begin() Handle {
	return newMultiHandle(m.t)
}

// multiHandle implements Handle. All methods must run on the same
// goroutine; only the completion channel is touched by the exchange
// goroutines.
type multiHandle struct {
	t       Transport
	nextID  uint64
	running int
	done    chan Completion
	queued  []Completion
}

func newMultiHandle(t Transport) *multiHandle {
	return &multiHandle{t: t, done: make(chan Completion, 16)}
}

func (h *multiHandle) Register(req *Request, opts Options) uint64 {
	h.nextID++
	id := h.nextID
	h.running++
	go func() {
		res, err := h.t.Execute(context.Background(), req, opts)
		h.done <- Completion{ID: id, Result: res, Err: err}
	}()
	return id
}

func (h *multiHandle) Step() (done []Completion, running bool) {
	done = h.queued
	h.queued = nil
	for {
		select {
		case c := <-h.done:
			h.running--
			done = append(done, c)
		default:
			return done, h.running > 0
		}
	}
}

func (h *multiHandle) Wait() {
	if h.running == 0 {
		return
	}
	c := <-h.done
	h.running--
	h.queued = append(h.queued, c)
}
