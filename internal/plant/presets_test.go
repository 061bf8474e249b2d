package plant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedPresets(t *testing.T) {
	all := Presets()
	require.Len(t, all, 6)

	defaults := DefaultPresets()
	require.Len(t, defaults, 3)
	assert.Equal(t, "Samambaia", defaults[0].Name)
	assert.Equal(t, "Suculenta", defaults[1].Name)
	assert.Equal(t, "Orquídea", defaults[2].Name)

	p, ok := FindPreset("cactus")
	require.True(t, ok)
	assert.Equal(t, "Cacto", p.Name)
	assert.Equal(t, 200.0, p.Conditions.MaxAirQuality)

	_, ok = FindPreset("bonsai")
	assert.False(t, ok)
}

func TestPresetsReturnsCopy(t *testing.T) {
	a := Presets()
	a[0].Name = "changed"
	assert.NotEqual(t, "changed", Presets()[0].Name)
}

func TestLoadPresetsRejectsBadCatalog(t *testing.T) {
	cases := map[string]string{
		"duplicate key": `
- {key: a, name: A, species: S, icon: leaf.fill, conditions: {max_temperature: 1}}
- {key: a, name: B, species: S, icon: leaf.fill, conditions: {max_temperature: 1}}
`,
		"unknown icon": `
- {key: a, name: A, species: S, icon: rose.fill, conditions: {max_temperature: 1}}
`,
		"inverted range": `
- {key: a, name: A, species: S, icon: leaf.fill, conditions: {min_humidity: 80, max_humidity: 20}}
`,
		"not yaml list": `key: a`,
	}

	for name, src := range cases {
		_, err := LoadPresets([]byte(src))
		assert.Error(t, err, name)
	}
}
