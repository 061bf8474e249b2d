package sensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanning() State {
	s := Transition(InitialState(), PowerChanged{Power: PoweredOn})
	return Transition(s, ScanStarted{})
}

func TestInitialState(t *testing.T) {
	s := InitialState()

	assert.Equal(t, StatusDisconnected, s.Status)
	assert.Empty(t, s.Devices)
	assert.Nil(t, s.Connected)
	assert.Nil(t, s.Reading)
}

func TestPowerChangedStatus(t *testing.T) {
	cases := map[PowerState]string{
		PoweredOn:         StatusReady,
		PoweredOff:        StatusPoweredOff,
		PowerUnauthorized: StatusUnauthorized,
		PowerUnsupported:  StatusUnsupported,
		PowerUnknown:      StatusUnavailable,
	}

	for power, want := range cases {
		got := Transition(InitialState(), PowerChanged{Power: power})
		assert.Equal(t, want, got.Status)
	}
}

func TestDiscoveryFilter(t *testing.T) {
	s := scanning()
	require.Equal(t, StatusScanning, s.Status)

	events := []DeviceDiscovered{
		{Device: Device{ID: "a", Name: "Caktus", RSSI: -50}},
		{Device: Device{ID: "b", RSSI: -60}, HasAdvertisement: true},
		{Device: Device{ID: "c", Name: "noise", RSSI: rssiInvalid}},
		{Device: Device{ID: "d", Name: "far", RSSI: -95}},
		{Device: Device{ID: "e", Name: "farther", RSSI: -99}},
		{Device: Device{ID: "f", RSSI: -40}},
		{Device: Device{ID: "a", Name: "Caktus again", RSSI: -30}},
	}
	for _, ev := range events {
		s = Transition(s, ev)
	}

	require.Len(t, s.Devices, 2)
	assert.Equal(t, "a", s.Devices[0].ID)
	assert.Equal(t, "Caktus", s.Devices[0].Name)
	assert.Equal(t, "b", s.Devices[1].ID)
}

func TestDiscoveryIgnoredWhenNotScanning(t *testing.T) {
	s := Transition(InitialState(), DeviceDiscovered{Device: Device{ID: "a", Name: "x", RSSI: -40}})
	assert.Empty(t, s.Devices)
}

func TestScanStoppedStatus(t *testing.T) {
	empty := Transition(scanning(), ScanStopped{})
	assert.False(t, empty.Scanning)
	assert.Equal(t, StatusNoDevices, empty.Status)

	s := Transition(scanning(), DeviceDiscovered{Device: Device{ID: "a", Name: "x", RSSI: -40}})
	s = Transition(s, ScanStopped{})
	assert.Equal(t, StatusReady, s.Status)
	assert.Len(t, s.Devices, 1)
}

func TestConnectLifecycle(t *testing.T) {
	s := Transition(scanning(), DeviceDiscovered{Device: Device{ID: "a", Name: "Caktus", RSSI: -40}})

	s = Transition(s, ConnectRequested{DeviceID: "a"})
	assert.Equal(t, StatusConnecting, s.Status)
	assert.Equal(t, "a", s.Connecting)

	s = Transition(s, ConnectSucceeded{DeviceID: "a"})
	require.NotNil(t, s.Connected)
	assert.Equal(t, "Caktus", s.Connected.Name)
	assert.Empty(t, s.Connecting)
	assert.False(t, s.Scanning)
	assert.Equal(t, StatusConnected, s.Status)

	s = Transition(s, ReadingReceived{Reading: Reading{DeviceID: "a", Temperature: 21}})
	require.NotNil(t, s.Reading)
	assert.Equal(t, 21.0, s.Reading.Temperature)

	s = Transition(s, Disconnected{})
	assert.Nil(t, s.Connected)
	assert.Nil(t, s.Reading)
	assert.Equal(t, StatusDisconnected, s.Status)

	s = Transition(s, Settled{})
	assert.Equal(t, StatusReady, s.Status)
}

func TestReadingIgnoredWithoutConnection(t *testing.T) {
	s := Transition(InitialState(), ReadingReceived{Reading: Reading{Temperature: 20}})
	assert.Nil(t, s.Reading)
}

func TestConnectFailedSettles(t *testing.T) {
	s := Transition(InitialState(), ConnectRequested{DeviceID: "a"})
	s = Transition(s, ConnectFailed{DeviceID: "a"})
	assert.Equal(t, StatusFailed, s.Status)
	assert.Empty(t, s.Connecting)

	s = Transition(s, Settled{})
	assert.Equal(t, StatusReady, s.Status)
}

func TestSettledKeepsActiveStatus(t *testing.T) {
	s := Transition(scanning(), Settled{})
	assert.Equal(t, StatusScanning, s.Status)

	s = Transition(InitialState(), ConnectRequested{DeviceID: "a"})
	s = Transition(s, ConnectSucceeded{DeviceID: "a"})
	s = Transition(s, Settled{})
	assert.Equal(t, StatusConnected, s.Status)
}

func TestTransitionDoesNotMutateInput(t *testing.T) {
	s := Transition(scanning(), DeviceDiscovered{Device: Device{ID: "a", Name: "x", RSSI: -40}})
	before := s.Clone()

	_ = Transition(s, DeviceDiscovered{Device: Device{ID: "b", Name: "y", RSSI: -40}})
	_ = Transition(s, ScanStarted{})

	assert.Equal(t, before, s)
}
