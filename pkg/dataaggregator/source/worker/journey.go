package worker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smartroute/smartroute/pkg/ctdf"
)

const localDateTimeLayout = "2006-01-02T15:04:05"

type providerJourneys struct {
	Journeys []providerJourney `json:"journeys"`
}

type providerJourney struct {
	Price                *float64 `json:"price"`
	Currency             string   `json:"currency"`
	DurationInMinutes    int      `json:"durationInMinutes"`
	TravelMode           string   `json:"travelMode"`
	DepartureDateAndTime string   `json:"departureDateAndTime"`
	ArrivalDateAndTime   string   `json:"arrivalDateAndTime"`
	Carrier              string   `json:"carrier"`
	NumberOfStops        int      `json:"numberOfStops"`
	DeepLink             string   `json:"deeplink"`
}

type providerStations struct {
	Stations []Station `json:"stations"`
}

type Station struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Lat  *float64 `json:"lat"`
	Lng  *float64 `json:"lng"`
}

type providerHealth struct {
	OK bool `json:"ok"`
}

func (j providerJourney) toLeg(from ctdf.Waypoint, to ctdf.Waypoint, currency string, location *time.Location) (*ctdf.Leg, error) {
	if j.DurationInMinutes <= 0 {
		return nil, fmt.Errorf("invalid duration %d", j.DurationInMinutes)
	}
	if j.Price == nil || *j.Price < 0 {
		return nil, errors.New("missing or negative price")
	}

	mode := ctdf.ParseTransportType(j.TravelMode)
	if mode == ctdf.TransportTypeUnknown {
		return nil, fmt.Errorf("unknown travel mode %q", j.TravelMode)
	}

	legCurrency := strings.ToUpper(strings.TrimSpace(j.Currency))
	if legCurrency == "" {
		legCurrency = currency
	}

	departure, err := parseDateTime(j.DepartureDateAndTime, location)
	if err != nil {
		return nil, fmt.Errorf("departure: %w", err)
	}
	arrival, err := parseDateTime(j.ArrivalDateAndTime, location)
	if err != nil {
		return nil, fmt.Errorf("arrival: %w", err)
	}
	if departure != nil && arrival != nil && arrival.Before(*departure) {
		return nil, errors.New("arrival before departure")
	}

	return &ctdf.Leg{
		Mode:          mode,
		Origin:        from,
		Destination:   to,
		Duration:      j.DurationInMinutes,
		Price:         ctdf.Price{Amount: *j.Price, Currency: legCurrency},
		DepartureTime: departure,
		ArrivalTime:   arrival,
		Carrier:       j.Carrier,
		Stops:         j.NumberOfStops,
		DeepLink:      j.DeepLink,
	}, nil
}

func parseDateTime(value string, location *time.Location) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return &parsed, nil
	}

	if location == nil {
		location = time.Local
	}
	parsed, err := time.ParseInLocation(localDateTimeLayout, value, location)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
