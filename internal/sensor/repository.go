package sensor

import "context"

// Repository keeps reading history.
type Repository interface {
	Save(ctx context.Context, r Reading) error
	Latest(ctx context.Context) (*Reading, error)
	Recent(ctx context.Context, limit int) ([]Reading, error)
}
