package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	calls int
	out   string
	err   error
}

func (s *stubClient) Complete(ctx context.Context, req Request) (string, error) {
	s.calls++
	return s.out, s.err
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	inner := &stubClient{err: errors.New("boom")}
	b := NewBreakerClient(inner, "test", 3, time.Minute)

	for i := 0; i < 3; i++ {
		_, err := b.Complete(context.Background(), Request{Prompt: "x"})
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())

	_, err := b.Complete(context.Background(), Request{Prompt: "x"})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 3, inner.calls, "open circuit must not reach the upstream")
}

func TestBreakerPassesThrough(t *testing.T) {
	inner := &stubClient{out: "ok"}
	b := NewBreakerClient(inner, "test", 0, 0)

	out, err := b.Complete(context.Background(), Request{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestBreakerIgnoresCancellation(t *testing.T) {
	inner := &stubClient{err: context.Canceled}
	b := NewBreakerClient(inner, "test", 1, time.Minute)

	for i := 0; i < 3; i++ {
		_, _ = b.Complete(context.Background(), Request{Prompt: "x"})
	}
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestBreakerDefaultsTripAfterThreeFailures(t *testing.T) {
	inner := &stubClient{err: errors.New("boom")}
	b := NewBreakerClient(inner, "test", 0, 0)

	for i := 0; i < int(defaultMaxFailures)-1; i++ {
		_, _ = b.Complete(context.Background(), Request{Prompt: "x"})
	}
	assert.Equal(t, gobreaker.StateClosed, b.State())

	_, _ = b.Complete(context.Background(), Request{Prompt: "x"})
	assert.Equal(t, gobreaker.StateOpen, b.State())
	assert.Equal(t, 3, inner.calls)
}
