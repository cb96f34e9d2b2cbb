package planner

import (
	"testing"

	"github.com/smartroute/smartroute/pkg/ctdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileLegFilter(t *testing.T) {
	t.Run("empty expression", func(t *testing.T) {
		filter, err := CompileLegFilter("  ")
		require.NoError(t, err)
		assert.Nil(t, filter)

		legs := []*ctdf.Leg{{Mode: ctdf.TransportTypeBus}}
		filtered, err := filter.Apply(legs)
		require.NoError(t, err)
		assert.Equal(t, legs, filtered)
	})

	t.Run("invalid expression", func(t *testing.T) {
		_, err := CompileLegFilter(`Mode +`)
		assert.Error(t, err)
	})

	t.Run("must be boolean", func(t *testing.T) {
		_, err := CompileLegFilter(`Price * 2`)
		assert.Error(t, err)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := CompileLegFilter(`Operator == "PKP"`)
		assert.Error(t, err)
	})
}

func TestLegFilterApply(t *testing.T) {
	bus := datedLeg(ctdf.TransportTypeBus, 60, "PLN", at(6, 0), 480)
	train := datedLeg(ctdf.TransportTypeTrain, 149, "PLN", at(10, 0), 320)
	flight := datedLeg(ctdf.TransportTypeFlight, 450, "PLN", at(19, 0), 90)
	estimate := &ctdf.Leg{Mode: ctdf.TransportTypeTrain, Price: ctdf.Price{Amount: 40, Currency: "EUR"}, Duration: 300, Synthetic: true}

	tests := []struct {
		expression string
		expected   []*ctdf.Leg
	}{
		{expression: `Mode != "Flight"`, expected: []*ctdf.Leg{bus, train, estimate}},
		{expression: `Price < 200 && Duration < 400`, expected: []*ctdf.Leg{train, estimate}},
		{expression: `DepartureHour >= 8`, expected: []*ctdf.Leg{train, flight}},
		{expression: `Synthetic || Currency == "EUR"`, expected: []*ctdf.Leg{estimate}},
	}

	for _, test := range tests {
		t.Run(test.expression, func(t *testing.T) {
			filter, err := CompileLegFilter(test.expression)
			require.NoError(t, err)

			filtered, err := filter.Apply([]*ctdf.Leg{bus, train, flight, estimate})
			require.NoError(t, err)
			assert.Equal(t, test.expected, filtered)
		})
	}
}
