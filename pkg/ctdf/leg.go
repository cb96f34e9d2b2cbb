package ctdf

import "time"

type Price struct {
	Amount   float64 `groups:"basic"`
	Currency string  `groups:"basic"`
}

// Leg is one point to point segment of an itinerary.
// Synthetic legs are estimated from distance and never have wall clock times, StartOffset is the
// only timing information they carry.
type Leg struct {
	Mode TransportType `groups:"basic"`

	OriginIndex      int      `groups:"detailed"`
	DestinationIndex int      `groups:"detailed"`
	Origin           Waypoint `groups:"basic"`
	Destination      Waypoint `groups:"basic"`

	Duration int   `groups:"basic"`
	Price    Price `groups:"basic"`

	DepartureTime *time.Time `groups:"basic"`
	ArrivalTime   *time.Time `groups:"basic"`

	Carrier  string `groups:"basic"`
	Stops    int    `groups:"detailed"`
	DeepLink string `groups:"detailed"`

	Synthetic   bool `groups:"basic"`
	StartOffset int  `groups:"basic"`
}

func (l *Leg) DurationTime() time.Duration {
	return time.Duration(l.Duration) * time.Minute
}

// EffectiveArrival falls back to departure plus duration when the provider gave no arrival
func (l *Leg) EffectiveArrival() (time.Time, bool) {
	if l.ArrivalTime != nil {
		return *l.ArrivalTime, true
	}
	if l.DepartureTime != nil {
		return l.DepartureTime.Add(l.DurationTime()), true
	}
	return time.Time{}, false
}
