package sensor

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrUnknownDevice = errors.New("unknown device")

// Discovery is one advertisement reported by the radio.
type Discovery struct {
	Device           Device
	HasAdvertisement bool
}

// Scanner is the platform radio. Scan blocks until ctx is done.
type Scanner interface {
	Scan(ctx context.Context, found func(Discovery)) error
	Connect(ctx context.Context, deviceID string) error
	Disconnect(deviceID string) error
}

// SimulatedScanner advertises a fixed set of demo peripherals.
type SimulatedScanner struct {
	mu          sync.Mutex
	discoveries []Discovery
	connected   string
}

func NewSimulatedScanner(discoveries ...Discovery) *SimulatedScanner {
	return &SimulatedScanner{discoveries: discoveries}
}

// DefaultDiscoveries is what the demo radio "hears": one plant sensor plus
// noise the discovery filter is expected to drop.
func DefaultDiscoveries() []Discovery {
	return []Discovery{
		{Device: Device{ID: uuid.NewString(), Name: "Caktus Sensor", RSSI: -48}, HasAdvertisement: true},
		{Device: Device{ID: uuid.NewString(), Name: "Caktus Sensor (sala)", RSSI: -71}, HasAdvertisement: true},
		{Device: Device{ID: uuid.NewString(), RSSI: rssiInvalid}, HasAdvertisement: true},
		{Device: Device{ID: uuid.NewString(), Name: "Fone BT", RSSI: -99}, HasAdvertisement: true},
	}
}

func (s *SimulatedScanner) Scan(ctx context.Context, found func(Discovery)) error {
	s.mu.Lock()
	discoveries := append([]Discovery{}, s.discoveries...)
	s.mu.Unlock()

	for _, d := range discoveries {
		select {
		case <-ctx.Done():
			return nil
		default:
			found(d)
		}
	}

	<-ctx.Done()
	return nil
}

func (s *SimulatedScanner) Connect(ctx context.Context, deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.discoveries {
		if d.Device.ID == deviceID {
			s.connected = deviceID
			return nil
		}
	}
	return ErrUnknownDevice
}

func (s *SimulatedScanner) Disconnect(deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected == deviceID {
		s.connected = ""
	}
	return nil
}
