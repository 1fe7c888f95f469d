package http

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hopperhttp/hopper/transport"
)

func TestSend_CircuitBreakerOpensAfterFailures(t *testing.T) {
	tr := &scriptedTransport{steps: []scriptedStep{
		{err: &transport.Error{Code: transport.CodeConnect, Message: "connection failed"}},
	}}
	client := New(
		WithTransport(tr),
		WithCircuitBreaker(gobreaker.Settings{
			Name: "api.test",
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 2
			},
		}),
	)

	req := NewRequest("GET", "http://api.test/x")
	for i := 0; i < 2; i++ {
		_, err := client.Send(context.Background(), req)
		require.Error(t, err)
	}
	require.Equal(t, 2, tr.callCount())

	var exceptions int
	client.On(EventException, func(e *Event) { exceptions++ })

	_, err := client.Send(context.Background(), req)

	require.Error(t, err)
	assert.Equal(t, 2, tr.callCount(), "an open breaker must not reach the transport")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	var terr *transport.Error
	require.True(t, errors.As(err, &terr))
	// Breaker rejections flow through the normal exception channel.
	assert.Equal(t, 1, exceptions)
}

func TestSend_CircuitBreakerPassesSuccessesThrough(t *testing.T) {
	tr := &scriptedTransport{steps: []scriptedStep{
		{res: rawResult(200, nil, "ok")},
	}}
	client := New(WithTransport(tr), WithCircuitBreaker(gobreaker.Settings{Name: "api.test"}))

	resp, err := client.Send(context.Background(), NewRequest("GET", "http://api.test/x"))

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.GetBodyAsString())
}
