// Package http provides an HTTP client engine with a hook-driven retry
// protocol and an asynchronous multiplexed dispatch path.
//
// This package is designed for programmatic use and provides:
//   - A configurable client with functional options
//   - A synchronous send path whose retries are decided by hook subscribers
//   - An asynchronous dispatch/poll loop delivering results via callbacks
//   - A framer that splits raw multi-hop exchanges into structured responses
//
// Basic Usage:
//
//	client := http.New(
//	    http.WithBaseURL("https://api.example.com"),
//	    http.WithTimeout(30*time.Second),
//	    http.WithHeader("Authorization", "Bearer token"),
//	)
//
//	resp, err := client.Send(context.Background(), http.NewRequest("GET", "/users"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Status: %d\n", resp.StatusCode)
//
// Retries are opt-in per call site: subscribe to the generic "error"
// channel or a status-scoped one and toggle the decision flag.
//
//	client.On(http.ErrorEvent(503), func(e *http.Event) {
//	    if e.Decision.Count < 2 {
//	        e.Decision.Retry = true
//	    }
//	})
//
// Asynchronous dispatch runs many requests against one event loop:
//
//	for _, u := range urls {
//	    client.Dispatch(http.NewRequest("GET", u), onSuccess, onError)
//	}
//	client.WaitAll()
//
// Concurrency:
//
// Send is safe to call from multiple goroutines. Dispatch, Poll and
// WaitAll follow a single-threaded cooperative discipline and must not be
// called concurrently on the same Client.
package http
