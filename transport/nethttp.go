package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
)

// HTTPTransport is the default Transport, backed by net/http. It owns a
// shared connection pool so sequential exchanges against the same host
// reuse connections. HTTPTransport is safe for concurrent use.
type HTTPTransport struct {
	mu       sync.Mutex
	base     *http.Transport
	insecure *http.Transport
}

// NewHTTPTransport creates an HTTPTransport with lazily-built connection
// pools.
func NewHTTPTransport() *HTTPTransport {
	return &HTTPTransport{}
}

var errTooManyRedirects = errors.New("too many redirects")

func (t *HTTPTransport) pool(insecureSkipVerify bool) *http.Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	if insecureSkipVerify {
		if t.insecure == nil {
			t.insecure = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			}
		}
		return t.insecure
	}
	if t.base == nil {
		t.base = &http.Transport{}
	}
	return t.base
}

// Execute performs one blocking exchange. When redirects are followed,
// every hop contributes its own status line and header section to
// Result.Raw, final hop last, so the engine's framer sees the same shape
// a raw multi-hop exchange produces on the wire.
func (t *HTTPTransport) Execute(ctx context.Context, req *Request, opts Options) (*Result, *Error) {
	hreq, err := buildHTTPRequest(ctx, req)
	if err != nil {
		return nil, &Error{Code: CodeUnknown, Message: "build request", Cause: err}
	}

	var head bytes.Buffer
	client := &http.Client{
		Transport: t.pool(opts.InsecureSkipVerify),
		Timeout:   opts.Timeout,
		CheckRedirect: func(next *http.Request, via []*http.Request) error {
			if !opts.FollowRedirects {
				return http.ErrUseLastResponse
			}
			if opts.MaxRedirects > 0 && len(via) > opts.MaxRedirects {
				return errTooManyRedirects
			}
			// next.Response is the interim hop that triggered this redirect.
			writeHeaderSection(&head, next.Response)
			return nil
		},
	}

	hresp, err := client.Do(hreq)
	if err != nil {
		return nil, classifyNetError(err)
	}
	defer hresp.Body.Close()

	body, err := io.ReadAll(hresp.Body)
	if err != nil {
		return nil, classifyNetError(err)
	}

	writeHeaderSection(&head, hresp)
	headerLen := head.Len()
	head.Write(body)
	return &Result{Raw: head.Bytes(), HeaderLen: headerLen, StatusCode: hresp.StatusCode}, nil
}

// Begin implements Multiplexer. The returned handle runs each registered
// exchange on its own goroutine and funnels completions into a queue
// drained by Step.
func (t *HTTPTransport) Begin() Handle {
	return newMultiHandle(t)
}

func buildHTTPRequest(ctx context.Context, req *Request) (*http.Request, error) {
	var body io.Reader
	switch {
	case req.Body != nil:
		body = bytes.NewReader(req.Body)
	case req.BodyStream != nil:
		body = req.BodyStream
	}
	hreq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, err
	}
	for name, value := range req.Header {
		hreq.Header.Set(name, value)
	}
	return hreq, nil
}

// writeHeaderSection appends one hop's status line and headers followed by
// a blank line, mirroring the on-wire framing.
func writeHeaderSection(buf *bytes.Buffer, resp *http.Response) {
	if resp == nil {
		return
	}
	fmt.Fprintf(buf, "%s %s\r\n", resp.Proto, resp.Status)
	for name, values := range resp.Header {
		for _, value := range values {
			fmt.Fprintf(buf, "%s: %s\r\n", name, value)
		}
	}
	buf.WriteString("\r\n")
}

func classifyNetError(err error) *Error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &Error{Code: CodeDNS, Message: "name resolution failed", Cause: err}
	}
	if errors.Is(err, errTooManyRedirects) {
		return &Error{Code: CodeRedirectLoop, Message: "too many redirects", Cause: err}
	}
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return &Error{Code: CodeTLS, Message: "certificate verification failed", Cause: err}
	}
	var recErr tls.RecordHeaderError
	if errors.As(err, &recErr) {
		return &Error{Code: CodeTLS, Message: "tls handshake failed", Cause: err}
	}
	var netErr net.Error
	if (errors.As(err, &netErr) && netErr.Timeout()) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Code: CodeTimeout, Message: "exchange timed out", Cause: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return &Error{Code: CodeConnect, Message: "connection failed", Cause: err}
	}
	return &Error{Code: CodeUnknown, Message: "exchange failed", Cause: err}
}
