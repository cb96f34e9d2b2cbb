package journeyplanner

import (
	"context"
	"testing"
	"time"

	"github.com/smartroute/smartroute/pkg/ctdf"
	"github.com/smartroute/smartroute/pkg/dataaggregator/query"
	"github.com/smartroute/smartroute/pkg/dataaggregator/source"
	"github.com/smartroute/smartroute/pkg/dataaggregator/source/offline"
	"github.com/smartroute/smartroute/pkg/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	warszawa = ctdf.Waypoint{ID: "warszawa", DisplayName: "Warszawa", Location: ctdf.NewLocation(52.2297, 21.0122)}
	berlin   = ctdf.Waypoint{ID: "berlin", DisplayName: "Berlin", Location: ctdf.NewLocation(52.52, 13.405)}
)

func TestLookup(t *testing.T) {
	s := Source{
		Planner: &planner.Planner{
			Hubs:            planner.NearestHubs{},
			Offline:         offline.Source{},
			DefaultCurrency: offline.Currency,
		},
		Sessions: planner.NewSessions(),
	}

	value, err := s.Lookup(context.Background(), query.JourneyPlan{
		SessionKey: "user-1",
		Request: ctdf.RouteRequest{
			Origin:      warszawa,
			Destination: berlin,
			Date:        time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		},
	})
	require.NoError(t, err)

	plan := value.(*ctdf.JourneyPlan)
	assert.Equal(t, ctdf.JourneyPlanStatusFallback, plan.Status)
	assert.Equal(t, uint64(1), plan.Sequence)
	require.Len(t, plan.Legs, 1)
	assert.True(t, plan.Legs[0].Synthetic)
	assert.Equal(t, "EUR", plan.TotalPrice.Currency)
}

func TestLookupUnsupported(t *testing.T) {
	_, err := Source{}.Lookup(context.Background(), query.Place{Text: "Berlin"})
	assert.ErrorIs(t, err, source.UnsupportedSourceError)
}
