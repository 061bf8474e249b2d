package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportRequest(t *testing.T) {
	req := ReportRequest(ReportInput{
		PlantName:      "Samambaia",
		Species:        "Nephrolepis exaltata",
		MinTemperature: 18,
		MaxTemperature: 24,
		MinHumidity:    60,
		MaxHumidity:    80,
		MinAirQuality:  0,
		MaxAirQuality:  100,
		Temperature:    26.44,
		Humidity:       55,
		AirQuality:     120,
	})

	assert.Equal(t, 0.7, req.Temperature)
	assert.Equal(t, 400, req.MaxTokens)
	assert.Contains(t, req.Prompt, "Samambaia (Nephrolepis exaltata)")
	assert.Contains(t, req.Prompt, "Temperatura: 18°C - 24°C")
	assert.Contains(t, req.Prompt, "Temperatura: 26.4°C")
	assert.Contains(t, req.Prompt, "Qualidade do ar: 120 AQI")
	assert.Contains(t, req.Prompt, "• ")
}

func TestSearchRequest(t *testing.T) {
	req := SearchRequest("Costela-de-adão")

	assert.Equal(t, 0.3, req.Temperature)
	assert.Equal(t, 300, req.MaxTokens)
	assert.Contains(t, req.Prompt, `"Costela-de-adão"`)
	assert.Contains(t, req.Prompt, "maxAirQuality")
	assert.Contains(t, req.Prompt, "umidade 40-70%")
}
