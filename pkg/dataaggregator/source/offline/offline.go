package offline

import (
	"context"
	"math"
	"reflect"
	"time"

	"github.com/smartroute/smartroute/pkg/ctdf"
	"github.com/smartroute/smartroute/pkg/dataaggregator/query"
	"github.com/smartroute/smartroute/pkg/dataaggregator/source"
)

const (
	Currency = "EUR"

	flightDistance = 900.0
	busDistance    = 180.0

	minimumDuration = 25
	minimumPrice    = 8
)

type modeProfile struct {
	speed     float64
	costPerKm float64
}

var profiles = map[ctdf.TransportType]modeProfile{
	ctdf.TransportTypeFlight: {speed: 650, costPerKm: 0.14},
	ctdf.TransportTypeTrain:  {speed: 140, costPerKm: 0.10},
	ctdf.TransportTypeBus:    {speed: 95, costPerKm: 0.07},
}

// Source estimates legs from the great circle distance when no schedules are available
type Source struct{}

func (s Source) GetName() string {
	return "Offline Estimator"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.ProviderHealth{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q.(type) {
	case query.ProviderHealth:
		return &ctdf.ProviderHealth{
			Mode:      ctdf.ProviderModeMock,
			Available: false,
			CheckedAt: time.Now(),
		}, nil
	default:
		return nil, source.UnsupportedSourceError
	}
}

func (s Source) Candidates(ctx context.Context, from ctdf.Waypoint, to ctdf.Waypoint, date time.Time, currency string) ([]*ctdf.Leg, error) {
	return []*ctdf.Leg{Synthesize(from, to)}, nil
}

func Mode(distance float64) ctdf.TransportType {
	switch {
	case distance > flightDistance:
		return ctdf.TransportTypeFlight
	case distance < busDistance:
		return ctdf.TransportTypeBus
	default:
		return ctdf.TransportTypeTrain
	}
}

// Synthesize always returns the same leg for the same pair of locations. Prices are in EUR.
func Synthesize(from ctdf.Waypoint, to ctdf.Waypoint) *ctdf.Leg {
	distance := from.Distance(to)
	mode := Mode(distance)
	profile := profiles[mode]

	duration := int(math.Round(distance / profile.speed * 60))
	if duration < minimumDuration {
		duration = minimumDuration
	}

	price := math.Round(distance * profile.costPerKm)
	if price < minimumPrice {
		price = minimumPrice
	}

	return &ctdf.Leg{
		Mode:        mode,
		Origin:      from,
		Destination: to,
		Duration:    duration,
		Price: ctdf.Price{
			Amount:   price,
			Currency: Currency,
		},
		Synthetic: true,
	}
}
