package planner

import (
	"cmp"
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/smartroute/smartroute/pkg/ctdf"
	"golang.org/x/exp/slices"
)

// LegProvider returns the candidate legs between one pair of stops. An empty result means no
// connection exists, errors are reserved for the provider itself failing.
type LegProvider interface {
	Candidates(ctx context.Context, from ctdf.Waypoint, to ctdf.Waypoint, date time.Time, currency string) ([]*ctdf.Leg, error)
}

type LegProviderFunc func(ctx context.Context, from ctdf.Waypoint, to ctdf.Waypoint, date time.Time, currency string) ([]*ctdf.Leg, error)

func (f LegProviderFunc) Candidates(ctx context.Context, from ctdf.Waypoint, to ctdf.Waypoint, date time.Time, currency string) ([]*ctdf.Leg, error) {
	return f(ctx, from, to, date, currency)
}

type SelectOptions struct {
	Date        time.Time
	Currency    string
	MinTransfer int
	Filter      *LegFilter

	// Converter puts candidates priced in other currencies on the same scale before ranking
	Converter CurrencyConverter
}

// SelectItinerary picks one leg per consecutive pair of the path. Pairs are fetched strictly one
// after another because the earliest usable departure of a leg depends on the leg chosen before it.
func SelectItinerary(ctx context.Context, path ctdf.Path, provider LegProvider, options SelectOptions) ([]*ctdf.Leg, error) {
	if len(path) < 2 {
		return nil, requestError(ErrorKindInvalidRequest, "path")
	}

	transfer := time.Duration(options.MinTransfer) * time.Minute
	lastSegment := len(path) - 2

	var itinerary []*ctdf.Leg
	var previousArrival *time.Time
	var itineraryStart *time.Time
	clock := 0

	for segment := 0; segment <= lastSegment; segment++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		from := path[segment]
		to := path[segment+1]

		candidates, err := provider.Candidates(ctx, from, to, options.Date, options.Currency)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, segmentError(ErrorKindProviderUnavailable, segment, from, to, err)
		}

		if options.Filter != nil {
			candidates, err = options.Filter.Apply(candidates)
			if err != nil {
				return nil, segmentError(ErrorKindInvalidRequest, segment, from, to, err)
			}
		}

		if len(candidates) == 0 {
			return nil, segmentError(ErrorKindNoConnection, segment, from, to, nil)
		}

		prices := comparablePrices(ctx, candidates, options.Currency, options.Converter)
		RankLegs(candidates, func(leg *ctdf.Leg) float64 {
			return prices[leg]
		})

		var threshold *time.Time
		if segment > 0 && previousArrival != nil {
			earliest := previousArrival.Add(transfer)
			threshold = &earliest
		}

		chosen := pickLeg(candidates, threshold)
		if chosen == nil {
			planningError := segmentError(ErrorKindNoFeasibleTransfer, segment, from, to, nil)
			planningError.MinTransfer = options.MinTransfer
			return nil, planningError
		}

		leg := *chosen
		leg.OriginIndex = segment
		leg.DestinationIndex = segment + 1
		leg.Origin = from
		leg.Destination = to

		if leg.DepartureTime != nil && segment == 0 {
			start := *leg.DepartureTime
			itineraryStart = &start
		}
		if leg.DepartureTime != nil && itineraryStart != nil {
			leg.StartOffset = int(leg.DepartureTime.Sub(*itineraryStart).Minutes())
		} else {
			leg.StartOffset = clock
		}

		// Synthetic legs move a virtual clock, dated legs reset it to their real arrival
		if arrival, ok := leg.EffectiveArrival(); ok {
			previousArrival = &arrival
		} else if previousArrival != nil {
			arrival := previousArrival.Add(transfer + leg.DurationTime())
			previousArrival = &arrival
		}

		clock = leg.StartOffset + leg.Duration
		if segment < lastSegment {
			clock += options.MinTransfer
		}

		log.Debug().
			Int("segment", segment).
			Str("from", from.DisplayName).
			Str("to", to.DisplayName).
			Str("mode", string(leg.Mode)).
			Float64("price", leg.Price.Amount).
			Bool("synthetic", leg.Synthetic).
			Msg("Selected leg")

		itinerary = append(itinerary, &leg)
	}

	return itinerary, nil
}

// RankLegs orders cheapest first, then earliest departure. Legs with a departure time come
// before undated legs of the same price. A nil price ranks on the raw amount.
func RankLegs(legs []*ctdf.Leg, price func(leg *ctdf.Leg) float64) {
	if price == nil {
		price = func(leg *ctdf.Leg) float64 {
			return leg.Price.Amount
		}
	}

	slices.SortStableFunc(legs, func(a, b *ctdf.Leg) int {
		if c := cmp.Compare(price(a), price(b)); c != 0 {
			return c
		}

		switch {
		case a.DepartureTime != nil && b.DepartureTime != nil:
			return a.DepartureTime.Compare(*b.DepartureTime)
		case a.DepartureTime != nil:
			return -1
		case b.DepartureTime != nil:
			return 1
		default:
			return 0
		}
	})
}

// comparablePrices converts every candidate price into the requested currency. A price that
// cannot be converted keeps its own amount, the total reports it separately later.
func comparablePrices(ctx context.Context, legs []*ctdf.Leg, currency string, converter CurrencyConverter) map[*ctdf.Leg]float64 {
	prices := make(map[*ctdf.Leg]float64, len(legs))

	for _, leg := range legs {
		amount := leg.Price.Amount

		if converter != nil && leg.Price.Currency != "" && !strings.EqualFold(leg.Price.Currency, currency) {
			converted, ok, err := converter.Convert(ctx, leg.Price.Amount, strings.ToUpper(leg.Price.Currency), currency)
			if err != nil {
				log.Debug().Err(err).Str("currency", leg.Price.Currency).Msg("Ranking on unconverted price")
			} else if ok {
				amount = converted
			}
		}

		prices[leg] = amount
	}

	return prices
}

func pickLeg(ranked []*ctdf.Leg, threshold *time.Time) *ctdf.Leg {
	for _, candidate := range ranked {
		if threshold == nil || candidate.Synthetic || candidate.DepartureTime == nil {
			return candidate
		}
		if !candidate.DepartureTime.Before(*threshold) {
			return candidate
		}
	}
	return nil
}

// ItineraryDuration adds the transfer buffer between legs, never before the first or after the last
func ItineraryDuration(legs []*ctdf.Leg, minTransfer int) int {
	if len(legs) == 0 {
		return 0
	}

	total := (len(legs) - 1) * minTransfer
	for _, leg := range legs {
		total += leg.Duration
	}
	return total
}
