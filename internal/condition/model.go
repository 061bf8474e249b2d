package condition

type Status string

const (
	Ideal Status = "ideal"
	Below Status = "below"
	Above Status = "above"
)

// Severity is the display weight of a metric.
type Severity string

const (
	Nominal  Severity = "nominal"
	Info     Severity = "info"
	Warning  Severity = "warning"
	Critical Severity = "critical"
)

// AirSeverity grades air quality against its upper bound only.
type AirSeverity string

const (
	AirOk       AirSeverity = "ok"
	AirWarning  AirSeverity = "warning"
	AirCritical AirSeverity = "critical"
)

type Metric struct {
	Status   Status   `json:"status"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Report is the per-metric verdict for one reading.
type Report struct {
	Temperature Metric      `json:"temperature"`
	Humidity    Metric      `json:"humidity"`
	AirQuality  Metric      `json:"air_quality"`
	AirSeverity AirSeverity `json:"air_severity"`
}
