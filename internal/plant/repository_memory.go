package plant

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	plants map[string]*Plant
	order  []string
	seeded map[string]bool
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		plants: make(map[string]*Plant),
		seeded: make(map[string]bool),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, p *Plant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	stored := *p
	if _, exists := r.plants[p.ID]; !exists {
		r.order = append(r.order, p.ID)
	}
	r.plants[p.ID] = &stored
	return nil
}

func (r *InMemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Plant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Plant
	for _, id := range r.order {
		p, ok := r.plants[id]
		if ok && p.OwnerID == ownerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Plant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plants[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plants[id]; !ok {
		return ErrNotFound
	}
	delete(r.plants, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *InMemoryRepository) UpdatePhoto(ctx context.Context, id string, photoURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.plants[id]
	if !ok {
		return ErrNotFound
	}
	p.PhotoURL = photoURL
	return nil
}

func (r *InMemoryRepository) MarkSeeded(ctx context.Context, ownerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seeded[ownerID] {
		return false, nil
	}
	r.seeded[ownerID] = true
	return true, nil
}
