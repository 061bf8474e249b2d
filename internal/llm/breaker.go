package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sony/gobreaker/v2"
)

const defaultMaxFailures uint32 = 3

const (
	defaultOpenTimeout   = 30 * time.Second
	defaultResetInterval = 60 * time.Second
)

// BreakerClient fails fast once the wrapped client keeps failing.
type BreakerClient struct {
	inner   Client
	breaker *gobreaker.CircuitBreaker[string]
}

func NewBreakerClient(inner Client, name string, maxFailures uint32, openTimeout time.Duration) *BreakerClient {
	if maxFailures == 0 {
		maxFailures = defaultMaxFailures
	}
	if openTimeout == 0 {
		openTimeout = defaultOpenTimeout
	}

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    defaultResetInterval,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("LLM_BREAKER %s: %s -> %s", name, from, to)
		},
		// a cancelled caller says nothing about upstream health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &BreakerClient{inner: inner, breaker: cb}
}

func (b *BreakerClient) Complete(ctx context.Context, req Request) (string, error) {
	out, err := b.breaker.Execute(func() (string, error) {
		return b.inner.Complete(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return out, err
}

func (b *BreakerClient) State() gobreaker.State {
	return b.breaker.State()
}
