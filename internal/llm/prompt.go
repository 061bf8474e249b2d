package llm

import (
	"fmt"
	"strings"
)

// ReportInput carries what the care report prompt needs.
type ReportInput struct {
	PlantName      string
	Species        string
	MinTemperature float64
	MaxTemperature float64
	MinHumidity    float64
	MaxHumidity    float64
	MinAirQuality  float64
	MaxAirQuality  float64
	Temperature    float64
	Humidity       float64
	AirQuality     float64
}

func ReportRequest(in ReportInput) Request {
	return Request{Prompt: BuildReportPrompt(in), Temperature: 0.7, MaxTokens: 400}
}

func SearchRequest(plantName string) Request {
	return Request{Prompt: BuildSearchPrompt(plantName), Temperature: 0.3, MaxTokens: 300}
}

func BuildReportPrompt(in ReportInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Você é um especialista em plantas. Analise os dados do sensor para a planta %s (%s).\n\n", in.PlantName, in.Species)

	b.WriteString("Condições ideais:\n")
	fmt.Fprintf(&b, "- Temperatura: %g°C - %g°C\n", in.MinTemperature, in.MaxTemperature)
	fmt.Fprintf(&b, "- Umidade: %g%% - %g%%\n", in.MinHumidity, in.MaxHumidity)
	fmt.Fprintf(&b, "- Qualidade do ar: %g - %g AQI\n\n", in.MinAirQuality, in.MaxAirQuality)

	b.WriteString("Condições atuais:\n")
	fmt.Fprintf(&b, "- Temperatura: %.1f°C\n", in.Temperature)
	fmt.Fprintf(&b, "- Umidade: %.1f%%\n", in.Humidity)
	fmt.Fprintf(&b, "- Qualidade do ar: %.0f AQI\n\n", in.AirQuality)

	b.WriteString(`Gere um relatório OBJETIVO e BREVE seguindo estas regras:

1. Use **texto entre asteriscos duplos** para DESTACAR o diagnóstico principal e ações críticas
2. Seja DIRETO: no máximo 4-5 frases curtas
3. Foque APENAS no essencial
4. Use "• " no início da linha para listar recomendações práticas (no máximo 3 itens)
5. Use emojis relevantes: 🌡️ 💧 🌱 ⚠️ ✅ quando apropriado

Formato:
**Status Geral**: [diagnóstico em 1 frase]

[1 frase sobre temperatura se relevante]
[1 frase sobre umidade se relevante]
[1 frase sobre ar se relevante]

**Ações recomendadas:**
• [ação 1]
• [ação 2]
• [ação 3]
`)

	return b.String()
}

func BuildSearchPrompt(plantName string) string {
	return fmt.Sprintf(`
Você é um botânico especialista. Busque informações sobre a planta: %q

Retorne APENAS um JSON válido (sem markdown) com esta estrutura:
{
  "species": "nome científico completo",
  "icon": "um entre: leaf.fill, leaf.circle.fill, flame.fill, drop.fill, tree.fill, bolt.fill, camera.macro, cloud.fill",
  "minTemperature": número (°C),
  "maxTemperature": número (°C),
  "minHumidity": número (%%),
  "maxHumidity": número (%%),
  "minAirQuality": número (geralmente 0),
  "maxAirQuality": número (AQI máximo ideal, geralmente entre 50 e 150)
}

Se não conhecer a planta, use valores padrão: temperatura 18-26°C, umidade 40-70%%, aqi 0-100.
Retorne SOMENTE o JSON.
`, plantName)
}
