package plant

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("plant not found")

type Repository interface {
	Create(ctx context.Context, p *Plant) error
	ListByOwner(ctx context.Context, ownerID string) ([]*Plant, error)
	GetByID(ctx context.Context, id string) (*Plant, error)
	Delete(ctx context.Context, id string) error
	UpdatePhoto(ctx context.Context, id string, photoURL string) error
	// MarkSeeded records that the owner received the default plants.
	// It reports true only the first time it is called for an owner.
	MarkSeeded(ctx context.Context, ownerID string) (bool, error)
}
