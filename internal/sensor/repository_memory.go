package sensor

import (
	"context"
	"sync"
)

const memoryHistorySize = 500

type InMemoryRepository struct {
	mu       sync.RWMutex
	readings []Reading
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Save(ctx context.Context, reading Reading) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.readings = append(r.readings, reading)
	if len(r.readings) > memoryHistorySize {
		r.readings = r.readings[len(r.readings)-memoryHistorySize:]
	}
	return nil
}

func (r *InMemoryRepository) Latest(ctx context.Context) (*Reading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.readings) == 0 {
		return nil, ErrNoReading
	}
	latest := r.readings[len(r.readings)-1]
	return &latest, nil
}

// Recent returns up to limit readings, newest first.
func (r *InMemoryRepository) Recent(ctx context.Context, limit int) ([]Reading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.readings) {
		limit = len(r.readings)
	}

	out := make([]Reading, 0, limit)
	for i := len(r.readings) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.readings[i])
	}
	return out, nil
}
