package plant

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validResult() SearchResult {
	return SearchResult{
		Species:        "Epipremnum aureum",
		Icon:           "leaf.circle.fill",
		MinTemperature: 18,
		MaxTemperature: 29,
		MinHumidity:    40,
		MaxHumidity:    70,
		MinAirQuality:  0,
		MaxAirQuality:  100,
	}
}

func TestValidateSearchResultOK(t *testing.T) {
	got, err := ValidateSearchResult(validResult())
	require.NoError(t, err)

	assert.Equal(t, "Epipremnum aureum", got.Species)
	assert.Equal(t, "leaf.circle.fill", got.Icon)
	assert.Equal(t, 29.0, got.Conditions.MaxTemperature)
}

func TestValidateInvertedTemperature(t *testing.T) {
	r := validResult()
	r.MinTemperature, r.MaxTemperature = 30, 10

	_, err := ValidateSearchResult(r)
	require.ErrorIs(t, err, ErrInvalidRange)

	var rangeErr *RangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, "temperature", rangeErr.Pair)
	assert.Equal(t, 30.0, rangeErr.Min)
}

func TestValidateNamesOffendingPair(t *testing.T) {
	humidity := validResult()
	humidity.MinHumidity = 90

	air := validResult()
	air.MaxAirQuality = math.Inf(1)

	nan := validResult()
	nan.MinTemperature = math.NaN()

	cases := map[string]SearchResult{
		"humidity":    humidity,
		"airQuality":  air,
		"temperature": nan,
	}

	for pair, r := range cases {
		_, err := ValidateSearchResult(r)

		var rangeErr *RangeError
		require.True(t, errors.As(err, &rangeErr), pair)
		assert.Equal(t, pair, rangeErr.Pair)
	}
}

func TestValidateEqualBounds(t *testing.T) {
	r := validResult()
	r.MinHumidity, r.MaxHumidity = 50, 50

	_, err := ValidateSearchResult(r)
	assert.NoError(t, err)
}

func TestValidateMissingSpecies(t *testing.T) {
	for _, species := range []string{"", "   ", "\t\n"} {
		r := validResult()
		r.Species = species

		_, err := ValidateSearchResult(r)
		assert.ErrorIs(t, err, ErrMissingSpecies)
		assert.NotErrorIs(t, err, ErrMalformedPayload)
	}
}

func TestUnknownIconDefaults(t *testing.T) {
	r := validResult()
	r.Icon = "bogus.tag"

	got, err := ValidateSearchResult(r)
	require.NoError(t, err)
	assert.Equal(t, DefaultIcon, got.Icon)
	assert.Equal(t, "leaf.fill", NormalizeIcon(""))
	assert.Equal(t, "camera.macro", NormalizeIcon(" camera.macro "))
}
