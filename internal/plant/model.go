package plant

import "time"

// Conditions is the ideal-condition range of a plant.
type Conditions struct {
	MinTemperature float64 `json:"min_temperature" yaml:"min_temperature"`
	MaxTemperature float64 `json:"max_temperature" yaml:"max_temperature"`
	MinHumidity    float64 `json:"min_humidity" yaml:"min_humidity"`
	MaxHumidity    float64 `json:"max_humidity" yaml:"max_humidity"`
	MinAirQuality  float64 `json:"min_air_quality" yaml:"min_air_quality"`
	MaxAirQuality  float64 `json:"max_air_quality" yaml:"max_air_quality"`
}

type Plant struct {
	ID              string     `json:"id"`
	OwnerID         string     `json:"owner_id"`
	Name            string     `json:"name"`
	Species         string     `json:"species"`
	Icon            string     `json:"icon"`
	IdealConditions Conditions `json:"ideal_conditions"`
	PhotoURL        string     `json:"photo_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// SearchResult is a plant lookup answer decoded from the LLM.
// It is untrusted until ValidateSearchResult accepts it.
type SearchResult struct {
	Species        string  `json:"species"`
	Icon           string  `json:"icon"`
	MinTemperature float64 `json:"minTemperature"`
	MaxTemperature float64 `json:"maxTemperature"`
	MinHumidity    float64 `json:"minHumidity"`
	MaxHumidity    float64 `json:"maxHumidity"`
	MinAirQuality  float64 `json:"minAirQuality"`
	MaxAirQuality  float64 `json:"maxAirQuality"`
}

func (r SearchResult) Conditions() Conditions {
	return Conditions{
		MinTemperature: r.MinTemperature,
		MaxTemperature: r.MaxTemperature,
		MinHumidity:    r.MinHumidity,
		MaxHumidity:    r.MaxHumidity,
		MinAirQuality:  r.MinAirQuality,
		MaxAirQuality:  r.MaxAirQuality,
	}
}

// Validated is a search result that passed validation, icon already normalized.
type Validated struct {
	Species    string     `json:"species"`
	Icon       string     `json:"icon"`
	Conditions Conditions `json:"ideal_conditions"`
}
