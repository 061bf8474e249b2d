package condition

import (
	"fmt"

	"caktus/internal/plant"
	"caktus/internal/sensor"
)

const (
	idealMessage = "Ideal"

	// airWarningRatio marks the share of the upper bound where air quality
	// starts being flagged.
	airWarningRatio = 0.7
)

// Evaluate compares a reading against a plant's ideal range.
// PURE: no I/O, no clock, no randomness. NaN and negative values pass through.
func Evaluate(ideal plant.Conditions, r sensor.Reading) Report {
	air, airSeverity := evaluateAirQuality(ideal.MaxAirQuality, r.AirQuality)

	return Report{
		Temperature: evaluateTemperature(ideal.MinTemperature, ideal.MaxTemperature, r.Temperature),
		Humidity:    evaluateHumidity(ideal.MinHumidity, ideal.MaxHumidity, r.Humidity),
		AirQuality:  air,
		AirSeverity: airSeverity,
	}
}

func evaluateTemperature(min, max, t float64) Metric {
	switch {
	case t < min:
		return Metric{Status: Below, Severity: Info, Message: fmt.Sprintf("%.1f°C abaixo", min-t)}
	case t > max:
		return Metric{Status: Above, Severity: Warning, Message: fmt.Sprintf("%.1f°C acima", t-max)}
	default:
		return Metric{Status: Ideal, Severity: Nominal, Message: idealMessage}
	}
}

// both directions weigh the same for humidity
func evaluateHumidity(min, max, h float64) Metric {
	switch {
	case h < min:
		return Metric{Status: Below, Severity: Warning, Message: fmt.Sprintf("%.0f%% abaixo", min-h)}
	case h > max:
		return Metric{Status: Above, Severity: Warning, Message: fmt.Sprintf("%.0f%% acima", h-max)}
	default:
		return Metric{Status: Ideal, Severity: Nominal, Message: idealMessage}
	}
}

func evaluateAirQuality(max, aq float64) (Metric, AirSeverity) {
	switch {
	case aq > max:
		return Metric{Status: Above, Severity: Critical, Message: fmt.Sprintf("%.0f acima", aq-max)}, AirCritical
	case aq > airWarningRatio*max:
		// no deviation text for the warning band
		return Metric{Status: Ideal, Severity: Warning, Message: idealMessage}, AirWarning
	default:
		return Metric{Status: Ideal, Severity: Nominal, Message: idealMessage}, AirOk
	}
}
