package sensor

// Status texts shown by the device screen.
const (
	StatusReady        = "Bluetooth pronto"
	StatusScanning     = "Procurando dispositivos..."
	StatusNoDevices    = "Nenhum dispositivo encontrado"
	StatusConnecting   = "Conectando..."
	StatusConnected    = "Conectado"
	StatusFailed       = "Falha ao conectar"
	StatusDisconnected = "Desconectado"
	StatusPoweredOff   = "Bluetooth desligado"
	StatusUnauthorized = "Bluetooth não autorizado"
	StatusUnsupported  = "Bluetooth não suportado"
	StatusUnavailable  = "Bluetooth indisponível"
)

const (
	// rssiInvalid is reported by the radio for unusable advertisements.
	rssiInvalid = 127
	rssiFloor   = -95
)

type PowerState int

const (
	PowerUnknown PowerState = iota
	PoweredOn
	PoweredOff
	PowerUnauthorized
	PowerUnsupported
)

// State is the device screen model. Treat it as a value: Transition never
// mutates its input.
type State struct {
	Power      PowerState `json:"-"`
	Scanning   bool       `json:"scanning"`
	Devices    []Device   `json:"devices"`
	Connecting string     `json:"connecting,omitempty"`
	Connected  *Device    `json:"connected,omitempty"`
	Status     string     `json:"status"`
	Reading    *Reading   `json:"reading,omitempty"`
}

func InitialState() State {
	return State{Status: StatusDisconnected, Devices: []Device{}}
}

type Event interface {
	isEvent()
}

type (
	PowerChanged     struct{ Power PowerState }
	ScanStarted      struct{}
	DeviceDiscovered struct {
		Device           Device
		HasAdvertisement bool
	}
	ScanStopped      struct{}
	ConnectRequested struct{ DeviceID string }
	ConnectSucceeded struct{ DeviceID string }
	ConnectFailed    struct{ DeviceID string }
	Disconnected     struct{}
	ReadingReceived  struct{ Reading Reading }
	// Settled fires a moment after a failure or disconnect so the status
	// falls back to ready.
	Settled struct{}
)

func (PowerChanged) isEvent()     {}
func (ScanStarted) isEvent()      {}
func (DeviceDiscovered) isEvent() {}
func (ScanStopped) isEvent()      {}
func (ConnectRequested) isEvent() {}
func (ConnectSucceeded) isEvent() {}
func (ConnectFailed) isEvent()    {}
func (Disconnected) isEvent()     {}
func (ReadingReceived) isEvent()  {}
func (Settled) isEvent()          {}

// Clone returns a copy that shares nothing mutable with s.
func (s State) Clone() State {
	s.Devices = append([]Device{}, s.Devices...)
	return s
}

// Transition returns the state that follows s after ev.
func Transition(s State, ev Event) State {
	next := s.Clone()

	switch e := ev.(type) {
	case PowerChanged:
		next.Power = e.Power
		switch e.Power {
		case PoweredOn:
			next.Status = StatusReady
		case PoweredOff:
			next.Status = StatusPoweredOff
			next.Devices = []Device{}
		case PowerUnauthorized:
			next.Status = StatusUnauthorized
		case PowerUnsupported:
			next.Status = StatusUnsupported
		default:
			next.Status = StatusUnavailable
		}

	case ScanStarted:
		next.Devices = []Device{}
		next.Scanning = true
		next.Status = StatusScanning

	case DeviceDiscovered:
		if !s.Scanning || !acceptDiscovery(e) || hasDevice(s.Devices, e.Device.ID) {
			return next
		}
		next.Devices = append(next.Devices, e.Device)

	case ScanStopped:
		next.Scanning = false
		next = settleScanStatus(next)

	case ConnectRequested:
		next.Connecting = e.DeviceID
		next.Status = StatusConnecting

	case ConnectSucceeded:
		dev := Device{ID: e.DeviceID}
		if found, ok := findDevice(s.Devices, e.DeviceID); ok {
			dev = found
		}
		next.Connecting = ""
		next.Connected = &dev
		next.Scanning = false
		next.Status = StatusConnected

	case ConnectFailed:
		next.Connecting = ""
		next.Status = StatusFailed

	case Disconnected:
		next.Connected = nil
		next.Connecting = ""
		next.Reading = nil
		next.Status = StatusDisconnected

	case ReadingReceived:
		if s.Connected == nil {
			return next
		}
		r := e.Reading
		next.Reading = &r

	case Settled:
		if s.Connected == nil && s.Connecting == "" && !s.Scanning {
			next.Status = StatusReady
		}
	}

	return next
}

func settleScanStatus(s State) State {
	switch {
	case s.Connected != nil:
		s.Status = StatusConnected
	case len(s.Devices) == 0:
		s.Status = StatusNoDevices
	default:
		s.Status = StatusReady
	}
	return s
}

func acceptDiscovery(e DeviceDiscovered) bool {
	if e.Device.RSSI == rssiInvalid || e.Device.RSSI <= rssiFloor {
		return false
	}
	return e.Device.Name != "" || e.HasAdvertisement
}

func hasDevice(devices []Device, id string) bool {
	_, ok := findDevice(devices, id)
	return ok
}

func findDevice(devices []Device, id string) (Device, bool) {
	for _, d := range devices {
		if d.ID == id {
			return d, true
		}
	}
	return Device{}, false
}
