package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinutes(t *testing.T) {
	for value, expected := range map[string]int{
		"45":      45,
		"PT45M":   45,
		"PT1H15M": 75,
	} {
		minutes, err := parseMinutes(value)
		require.NoError(t, err, value)
		assert.Equal(t, expected, minutes, value)
	}

	_, err := parseMinutes("soon")
	assert.Error(t, err)
}

func TestBuildVersion(t *testing.T) {
	Version = "v2.0.1"
	defer func() { Version = "" }()

	assert.Equal(t, "v2.0.1", BuildVersion())
}
