package sensor

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

type Options struct {
	ScanTimeout       time.Duration
	PollInterval      time.Duration
	FirstReadingDelay time.Duration
	FailureSettle     time.Duration
	DisconnectSettle  time.Duration
}

func DefaultOptions() Options {
	return Options{
		ScanTimeout:       15 * time.Second,
		PollInterval:      5 * time.Second,
		FirstReadingDelay: time.Second,
		FailureSettle:     2 * time.Second,
		DisconnectSettle:  time.Second,
	}
}

// Manager owns the device session: it drives the scanner, applies events
// through Transition and polls the source while a device is connected.
type Manager struct {
	scanner Scanner
	source  Source
	repo    Repository
	opts    Options

	mu         sync.Mutex
	state      State
	scanID     uint64
	scanCancel context.CancelFunc
	pollCancel context.CancelFunc
	pollDone   chan struct{}
}

func NewManager(scanner Scanner, source Source, repo Repository, opts Options) *Manager {
	defaults := DefaultOptions()
	if opts.ScanTimeout <= 0 {
		opts.ScanTimeout = defaults.ScanTimeout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaults.PollInterval
	}
	if opts.FirstReadingDelay < 0 {
		opts.FirstReadingDelay = 0
	}

	return &Manager{
		scanner: scanner,
		source:  source,
		repo:    repo,
		opts:    opts,
		state:   Transition(InitialState(), PowerChanged{Power: PoweredOn}),
	}
}

// State returns a snapshot of the session.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

func (m *Manager) apply(ev Event) {
	m.mu.Lock()
	m.state = Transition(m.state, ev)
	m.mu.Unlock()
}

// StartScan restarts discovery; it ends on its own after ScanTimeout.
func (m *Manager) StartScan() State {
	m.mu.Lock()
	if m.scanCancel != nil {
		m.scanCancel()
	}
	ctx, cancel := context.WithTimeout(context.Background(), m.opts.ScanTimeout)
	m.scanID++
	id := m.scanID
	m.scanCancel = cancel
	m.state = Transition(m.state, ScanStarted{})
	snapshot := m.state.Clone()
	m.mu.Unlock()

	log.Printf("DEVICE_SCAN_STARTED timeout=%s", m.opts.ScanTimeout)

	go func() {
		defer cancel()

		err := m.scanner.Scan(ctx, func(d Discovery) {
			m.mu.Lock()
			if m.scanID == id {
				m.state = Transition(m.state, DeviceDiscovered{Device: d.Device, HasAdvertisement: d.HasAdvertisement})
			}
			m.mu.Unlock()
		})
		if err != nil {
			log.Printf("DEVICE_SCAN_FAILED err=%v", err)
		}

		m.mu.Lock()
		if m.scanID == id {
			m.scanCancel = nil
			m.state = Transition(m.state, ScanStopped{})
			log.Printf("DEVICE_SCAN_DONE devices=%d status=%q", len(m.state.Devices), m.state.Status)
		}
		m.mu.Unlock()
	}()

	return snapshot
}

func (m *Manager) StopScan() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.scanCancel != nil {
		m.stopScanLocked()
		m.state = Transition(m.state, ScanStopped{})
	}
	return m.state.Clone()
}

func (m *Manager) stopScanLocked() {
	if m.scanCancel != nil {
		m.scanCancel()
		m.scanCancel = nil
	}
	// invalidate callbacks from the cancelled scan
	m.scanID++
}

// Connect attaches to deviceID and starts polling it for readings.
func (m *Manager) Connect(ctx context.Context, deviceID string) error {
	m.mu.Lock()
	current := m.state.Connected
	m.mu.Unlock()

	if current != nil {
		if current.ID == deviceID {
			return nil
		}
		m.Disconnect()
	}

	m.apply(ConnectRequested{DeviceID: deviceID})

	if err := m.scanner.Connect(ctx, deviceID); err != nil {
		log.Printf("DEVICE_CONNECT_FAILED id=%s err=%v", deviceID, err)
		m.apply(ConnectFailed{DeviceID: deviceID})
		m.settleAfter(m.opts.FailureSettle)
		return err
	}

	m.mu.Lock()
	m.stopScanLocked()
	m.stopPollLocked()
	m.state = Transition(m.state, ConnectSucceeded{DeviceID: deviceID})

	pollCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	m.pollCancel = cancel
	m.pollDone = done
	m.mu.Unlock()

	log.Printf("DEVICE_CONNECTED id=%s", deviceID)
	go m.poll(pollCtx, deviceID, done)
	return nil
}

func (m *Manager) Disconnect() State {
	m.mu.Lock()
	dev := m.state.Connected
	m.stopPollLocked()
	m.mu.Unlock()

	if dev != nil {
		if err := m.scanner.Disconnect(dev.ID); err != nil {
			log.Printf("DEVICE_DISCONNECT_FAILED id=%s err=%v", dev.ID, err)
		}
	}

	m.apply(Disconnected{})
	m.settleAfter(m.opts.DisconnectSettle)
	return m.State()
}

// LatestReading is the last reading taken from the connected device.
func (m *Manager) LatestReading() (Reading, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Reading == nil {
		return Reading{}, false
	}
	return *m.state.Reading, true
}

// Latest returns the live reading of the connected device. Stored
// history is served by the repository, never from here.
func (m *Manager) Latest(ctx context.Context) (*Reading, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Connected == nil || m.state.Reading == nil {
		return nil, ErrNoReading
	}
	r := *m.state.Reading
	return &r, nil
}

// Close stops scanning and polling and waits for the poller to exit.
func (m *Manager) Close() {
	m.mu.Lock()
	m.stopScanLocked()
	done := m.pollDone
	m.stopPollLocked()
	m.mu.Unlock()

	if done != nil {
		<-done
	}
}

func (m *Manager) stopPollLocked() {
	if m.pollCancel != nil {
		m.pollCancel()
		m.pollCancel = nil
		m.pollDone = nil
	}
}

func (m *Manager) settleAfter(d time.Duration) {
	if d <= 0 {
		m.apply(Settled{})
		return
	}
	time.AfterFunc(d, func() { m.apply(Settled{}) })
}

func (m *Manager) poll(ctx context.Context, deviceID string, done chan struct{}) {
	defer close(done)

	timer := time.NewTimer(m.opts.FirstReadingDelay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		m.collect(ctx, deviceID)
		timer.Reset(m.opts.PollInterval)
	}
}

func (m *Manager) collect(ctx context.Context, deviceID string) {
	reading, err := m.source.Read(ctx, deviceID)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("SENSOR_READ_FAILED id=%s err=%v", deviceID, err)
		}
		return
	}

	if m.repo != nil {
		if err := m.repo.Save(ctx, reading); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("SENSOR_SAVE_FAILED id=%s err=%v", deviceID, err)
		}
	}

	m.mu.Lock()
	// a disconnect cancels ctx under the same lock
	if ctx.Err() == nil {
		m.state = Transition(m.state, ReadingReceived{Reading: reading})
	}
	m.mu.Unlock()
}
