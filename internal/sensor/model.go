package sensor

import "time"

// Reading is one sample from the plant sensor. Values are not sanitized.
type Reading struct {
	DeviceID    string    `json:"device_id"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	AirQuality  float64   `json:"air_quality"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewReading stamps a reading with the capture time.
func NewReading(deviceID string, temperature, humidity, airQuality float64) Reading {
	return Reading{
		DeviceID:    deviceID,
		Temperature: temperature,
		Humidity:    humidity,
		AirQuality:  airQuality,
		Timestamp:   time.Now(),
	}
}

// Device is a peripheral seen during a scan.
type Device struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	RSSI int    `json:"rssi"`
}
