package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/smartroute/smartroute/pkg/ctdf"
)

var (
	warszawa = waypoint("warszawa", "Warszawa", 52.2297, 21.0122)
	berlin   = waypoint("berlin", "Berlin", 52.52, 13.405)
	paris    = waypoint("paris", "Paris", 48.8566, 2.3522)
	krakow   = waypoint("krakow", "Kraków", 50.0647, 19.945)
	praha    = waypoint("praha", "Praha", 50.0755, 14.4378)
	madrid   = waypoint("madrid", "Madrid", 40.4168, -3.7038)
	poznan   = waypoint("poznan", "Poznań", 52.4064, 16.9252)
	gdansk   = waypoint("gdansk", "Gdańsk", 54.352, 18.6466)

	travelDate = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
)

func waypoint(id string, name string, lat float64, lng float64) ctdf.Waypoint {
	return ctdf.Waypoint{ID: id, DisplayName: name, Location: ctdf.NewLocation(lat, lng)}
}

func at(hour int, minute int) *time.Time {
	value := travelDate.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	return &value
}

func datedLeg(mode ctdf.TransportType, price float64, currency string, departure *time.Time, duration int) *ctdf.Leg {
	arrival := departure.Add(time.Duration(duration) * time.Minute)

	return &ctdf.Leg{
		Mode:          mode,
		Duration:      duration,
		Price:         ctdf.Price{Amount: price, Currency: currency},
		DepartureTime: departure,
		ArrivalTime:   &arrival,
	}
}

// fakeProvider answers from a fixed table keyed by "from>to" and records every call
type fakeProvider struct {
	legs   map[string][]*ctdf.Leg
	errors map[string]error
	calls  []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		legs:   map[string][]*ctdf.Leg{},
		errors: map[string]error{},
	}
}

func (f *fakeProvider) on(from ctdf.Waypoint, to ctdf.Waypoint, legs ...*ctdf.Leg) *fakeProvider {
	f.legs[from.ID+">"+to.ID] = legs
	return f
}

func (f *fakeProvider) failOn(from ctdf.Waypoint, to ctdf.Waypoint, err error) *fakeProvider {
	f.errors[from.ID+">"+to.ID] = err
	return f
}

func (f *fakeProvider) Candidates(ctx context.Context, from ctdf.Waypoint, to ctdf.Waypoint, date time.Time, currency string) ([]*ctdf.Leg, error) {
	key := from.ID + ">" + to.ID
	f.calls = append(f.calls, key)

	if err, exists := f.errors[key]; exists {
		return nil, err
	}

	// copy so ranking and filtering never touch the table
	legs := make([]*ctdf.Leg, len(f.legs[key]))
	copy(legs, f.legs[key])
	return legs, nil
}

// fixedRateConverter converts EUR to PLN at 4.0 and leaves any other pair unconverted
type fixedRateConverter struct {
	err error
}

func (f fixedRateConverter) Convert(ctx context.Context, amount float64, from string, to string) (float64, bool, error) {
	if f.err != nil {
		return 0, false, f.err
	}

	switch fmt.Sprintf("%s>%s", from, to) {
	case "EUR>PLN":
		return amount * 4, true, nil
	case "PLN>EUR":
		return amount / 4, true, nil
	}
	if from == to {
		return amount, true, nil
	}
	return amount, false, nil
}
