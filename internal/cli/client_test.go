package cli

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hopperhttp "github.com/hopperhttp/hopper/http"
	"github.com/hopperhttp/hopper/transport"
)

// stubTransport returns a fixed status, or a connect failure, counting
// attempts.
type stubTransport struct {
	mu     sync.Mutex
	calls  int
	status int
	fail   bool
}

func (s *stubTransport) Execute(context.Context, *transport.Request, transport.Options) (*transport.Result, *transport.Error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.fail {
		return nil, &transport.Error{Code: transport.CodeConnect, Message: "connection failed"}
	}
	head := fmt.Sprintf("HTTP/1.1 %d X\r\n\r\n", s.status)
	return &transport.Result{Raw: []byte(head), HeaderLen: len(head), StatusCode: s.status}, nil
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example.com/path", "http://example.com/path"},
		{"http://example.com", "http://example.com"},
		{"https://example.com/x", "https://example.com/x"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeURL(tt.in))
	}
}

func TestParseHeaderFlags(t *testing.T) {
	headers := parseHeaderFlags([]string{
		"Accept: application/json",
		"X-Token:abc",
		"malformed-no-colon",
		": empty-name",
	})

	assert.Equal(t, map[string]string{
		"Accept":  "application/json",
		"X-Token": "abc",
	}, headers)
}

func TestRegisterRetryHooks_StatusScoped(t *testing.T) {
	stub := &stubTransport{status: 503}
	client := hopperhttp.New(hopperhttp.WithTransport(stub))
	registerRetryHooks(client, 2, []int{503})

	resp, err := client.Send(context.Background(), hopperhttp.NewRequest("GET", "http://api.test/x"))

	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
	assert.Equal(t, 3, stub.calls)
}

func TestRegisterRetryHooks_ScopedStatusesIgnoreOthers(t *testing.T) {
	stub := &stubTransport{status: 404}
	client := hopperhttp.New(hopperhttp.WithTransport(stub))
	registerRetryHooks(client, 2, []int{503})

	_, err := client.Send(context.Background(), hopperhttp.NewRequest("GET", "http://api.test/x"))

	require.NoError(t, err)
	assert.Equal(t, 1, stub.calls, "a 404 must not retry when only 503 is listed")
}

func TestRegisterRetryHooks_TransportFailures(t *testing.T) {
	stub := &stubTransport{fail: true}
	client := hopperhttp.New(hopperhttp.WithTransport(stub))
	registerRetryHooks(client, 1, nil)

	_, err := client.Send(context.Background(), hopperhttp.NewRequest("GET", "http://api.test/x"))

	assert.Error(t, err)
	assert.Equal(t, 2, stub.calls)
}

func TestRegisterRetryHooks_ZeroRetriesRegistersNothing(t *testing.T) {
	stub := &stubTransport{status: 500}
	client := hopperhttp.New(hopperhttp.WithTransport(stub))
	registerRetryHooks(client, 0, nil)

	_, err := client.Send(context.Background(), hopperhttp.NewRequest("GET", "http://api.test/x"))

	require.NoError(t, err)
	assert.Equal(t, 1, stub.calls)
}
