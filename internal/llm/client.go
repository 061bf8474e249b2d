package llm

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the completion service cannot be reached,
// answers with an error status, or its circuit is open.
var ErrUnavailable = errors.New("llm service unavailable")

type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
