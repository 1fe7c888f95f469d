package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPTransport_Execute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected method POST, got %s", r.Method)
		}
		if r.Header.Get("X-Test") != "yes" {
			t.Errorf("expected header X-Test: yes, got %q", r.Header.Get("X-Test"))
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "ping" {
			t.Errorf("expected body ping, got %q", body)
		}
		w.Header().Set("X-Answer", "pong")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("created"))
	}))
	defer server.Close()

	tr := NewHTTPTransport()
	res, terr := tr.Execute(context.Background(), &Request{
		Method: "POST",
		URL:    server.URL,
		Header: map[string]string{"X-Test": "yes"},
		Body:   []byte("ping"),
	}, Options{Timeout: 5 * time.Second})

	require.Nil(t, terr)
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	head := res.Raw[:res.HeaderLen]
	assert.True(t, bytes.HasPrefix(head, []byte("HTTP/1.1 201 Created\r\n")))
	assert.Contains(t, string(head), "X-Answer: pong\r\n")
	assert.True(t, bytes.HasSuffix(head, []byte("\r\n\r\n")))
	assert.Equal(t, "created", string(res.Raw[res.HeaderLen:]))
}

func TestHTTPTransport_BodyStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Write(body)
	}))
	defer server.Close()

	tr := NewHTTPTransport()
	res, terr := tr.Execute(context.Background(), &Request{
		Method:     "POST",
		URL:        server.URL,
		BodyStream: bytes.NewBufferString("streamed"),
	}, Options{Timeout: 5 * time.Second})

	require.Nil(t, terr)
	assert.Equal(t, "streamed", string(res.Raw[res.HeaderLen:]))
}

func TestHTTPTransport_RedirectHopsStackHeaderSections(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Hop", "interim")
		http.Redirect(w, r, "/final", http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Hop", "final")
		w.Write([]byte("landed"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	tr := NewHTTPTransport()
	res, terr := tr.Execute(context.Background(), &Request{
		Method: "GET",
		URL:    server.URL + "/start",
	}, Options{FollowRedirects: true, MaxRedirects: 5, Timeout: 5 * time.Second})

	require.Nil(t, terr)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	head := string(res.Raw[:res.HeaderLen])
	// Both hops are present, interim first, separated by a blank line.
	assert.Contains(t, head, "302 Found")
	assert.Contains(t, head, "200 OK")
	assert.Less(t, bytes.Index([]byte(head), []byte("302")), bytes.Index([]byte(head), []byte("200 OK")))
	assert.GreaterOrEqual(t, bytes.Count([]byte(head), []byte("\r\n\r\n")), 2)
	assert.Equal(t, "landed", string(res.Raw[res.HeaderLen:]))
}

func TestHTTPTransport_RedirectsNotFollowed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusFound)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	tr := NewHTTPTransport()
	res, terr := tr.Execute(context.Background(), &Request{
		Method: "GET",
		URL:    server.URL + "/start",
	}, Options{FollowRedirects: false, Timeout: 5 * time.Second})

	require.Nil(t, terr)
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Contains(t, string(res.Raw[:res.HeaderLen]), "Location:")
}

func TestHTTPTransport_RedirectLoop(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/again", http.StatusMovedPermanently)
	}))
	defer server.Close()

	tr := NewHTTPTransport()
	res, terr := tr.Execute(context.Background(), &Request{
		Method: "GET",
		URL:    server.URL,
	}, Options{FollowRedirects: true, MaxRedirects: 3, Timeout: 5 * time.Second})

	assert.Nil(t, res)
	require.NotNil(t, terr)
	assert.Equal(t, CodeRedirectLoop, terr.Code)
}

func TestHTTPTransport_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	tr := NewHTTPTransport()
	res, terr := tr.Execute(context.Background(), &Request{Method: "GET", URL: url}, Options{Timeout: 2 * time.Second})

	assert.Nil(t, res)
	require.NotNil(t, terr)
	assert.Equal(t, CodeConnect, terr.Code)
}

func TestHTTPTransport_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	tr := NewHTTPTransport()
	res, terr := tr.Execute(context.Background(), &Request{Method: "GET", URL: server.URL}, Options{Timeout: 30 * time.Millisecond})

	assert.Nil(t, res)
	require.NotNil(t, terr)
	assert.Equal(t, CodeTimeout, terr.Code)
	assert.True(t, terr.Timeout())
}

func TestHTTPTransport_InvalidRequest(t *testing.T) {
	tr := NewHTTPTransport()
	res, terr := tr.Execute(context.Background(), &Request{Method: "GET", URL: "://bad"}, Options{})

	assert.Nil(t, res)
	require.NotNil(t, terr)
	assert.Equal(t, CodeUnknown, terr.Code)
}

func TestError_Messages(t *testing.T) {
	terr := &Error{Code: CodeDNS, Message: "name resolution failed", Cause: fmt.Errorf("no such host")}
	assert.Equal(t, "transport: dns: name resolution failed: no such host", terr.Error())
	assert.EqualError(t, terr.Unwrap(), "no such host")

	bare := &Error{Code: CodeConnect, Message: "connection failed"}
	assert.Equal(t, "transport: connect: connection failed", bare.Error())
}
