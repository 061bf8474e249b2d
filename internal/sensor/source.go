package sensor

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"
)

var ErrNoReading = errors.New("no sensor reading available")

// Source produces readings for a connected device.
type Source interface {
	Read(ctx context.Context, deviceID string) (Reading, error)
}

// Simulator stands in for the real sensor characteristics.
type Simulator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewSimulator uses rng for every value so tests can pin the sequence.
func NewSimulator(rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulator{rng: rng, now: time.Now}
}

func (s *Simulator) Read(ctx context.Context, deviceID string) (Reading, error) {
	if err := ctx.Err(); err != nil {
		return Reading{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return Reading{
		DeviceID:    deviceID,
		Temperature: between(s.rng, 18, 32),
		Humidity:    between(s.rng, 30, 80),
		AirQuality:  between(s.rng, 50, 400),
		Timestamp:   s.now(),
	}, nil
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
