package http

// SuccessFunc receives the original request and its framed response when
// an asynchronously dispatched exchange completes with a non-error status.
type SuccessFunc func(req *Request, resp *Response)

// ErrorFunc receives the original request and the failure when an
// asynchronously dispatched exchange fails: a *transport.Error for
// transport-level failures or an *HTTPError for error statuses. The async
// path never returns failures any other way.
type ErrorFunc func(req *Request, err error)

// inFlightEntry associates a dispatched request with its callbacks. An
// entry exists in the pending map iff its exchange is still pending.
type inFlightEntry struct {
	req       *Request
	onSuccess SuccessFunc
	onError   ErrorFunc
}

// Dispatch registers the request with the multiplex handle and returns
// without waiting for completion. The handle is created on first use and
// reused for the client's lifetime. One poll cycle runs before returning
// so fast-completing exchanges resolve without an explicit Poll call.
//
// The returned error reports request-build problems only; transport and
// HTTP failures are delivered to onError.
func (c *Client) Dispatch(req *Request, onSuccess SuccessFunc, onError ErrorFunc) error {
	c.hooks.emit(&Event{Name: EventBeforeRequest, Request: req})

	treq, err := req.build(c.baseURL, c.headers)
	if err != nil {
		return err
	}

	if c.handle == nil {
		c.handle = c.mux.Begin()
	}
	id := c.handle.Register(treq, c.opts)
	c.pending[id] = &inFlightEntry{req: req, onSuccess: onSuccess, onError: onError}
	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL).
		Uint64("handle", id).
		Msg("dispatched")

	c.Poll()
	return nil
}

// Poll drains every exchange completed since the last call, invoking
// exactly one callback per completion, and reports whether any requests
// remain pending. Poll never blocks.
func (c *Client) Poll() bool {
	if len(c.pending) == 0 {
		return false
	}

	done, _ := c.handle.Step()
	for _, completion := range done {
		entry, ok := c.pending[completion.ID]
		if !ok {
			c.logger.Debug().
				Uint64("handle", completion.ID).
				Msg("completion without a pending entry")
			continue
		}
		delete(c.pending, completion.ID)

		outcome := classify(completion.Result, completion.Err)
		c.logger.Debug().
			Uint64("handle", completion.ID).
			Bool("success", outcome.IsSuccess()).
			Msg("completed")
		if err := outcome.Err(); err != nil {
			entry.onError(entry.req, err)
		} else {
			entry.onSuccess(entry.req, outcome.Response)
		}
	}
	return len(c.pending) > 0
}

// WaitAll blocks until every dispatched exchange has completed and its
// callback has run. It is the only blocking operation in the async path.
func (c *Client) WaitAll() {
	for c.Poll() {
		c.handle.Wait()
	}
}
