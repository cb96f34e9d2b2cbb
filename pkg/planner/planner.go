package planner

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/smartroute/smartroute/pkg/ctdf"
)

const (
	DefaultMinTransfer  = 30
	DefaultMaxTransfers = 1
	DefaultCurrency     = "PLN"

	providerNotConfigured = "schedules provider not configured"
)

type CurrencyConverter interface {
	Convert(ctx context.Context, amount float64, from string, to string) (float64, bool, error)
}

// Planner holds everything a search needs. It is built once at startup and shared by all
// searches, none of its fields are modified while planning.
type Planner struct {
	Hubs      HubSelector
	Provider  LegProvider
	Offline   LegProvider
	Converter CurrencyConverter
	Filter    *LegFilter

	FallbackEnabled bool
	DefaultCurrency string
	Language        string
}

// PlanRoute runs the real provider first and the offline estimator when the real one is
// unavailable (if fallback is enabled). The returned plan is never nil, on failure it has
// Status Failed and the error is a *PlanningError (or the context error).
func (p *Planner) PlanRoute(ctx context.Context, request ctdf.RouteRequest) (*ctdf.JourneyPlan, error) {
	plan := &ctdf.JourneyPlan{}

	if err := p.normalizeRequest(&request); err != nil {
		return p.fail(plan, err)
	}

	path, warnings, err := BuildPath(request.Origin, request.Destination, request.Vias, request.MaxTransfers, p.Hubs)
	if err != nil {
		return p.fail(plan, err)
	}
	plan.Path = path

	for _, warning := range warnings {
		log.Warn().Int("requested", warning.Requested).Int("allowed", warning.Allowed).Msg("Too many via stops, truncating")
		plan.Warnings = append(plan.Warnings, *warning.Message(p.Language))
	}

	options := SelectOptions{
		Date:        request.Date,
		Currency:    request.Currency,
		MinTransfer: request.MinTransfer,
		Converter:   p.Converter,
	}

	var legs []*ctdf.Leg
	switch {
	case p.Provider != nil:
		realOptions := options
		realOptions.Filter = p.Filter

		legs, err = SelectItinerary(ctx, path, p.Provider, realOptions)
		plan.Status = ctdf.JourneyPlanStatusReal

		if err != nil && errors.Is(err, ErrProviderUnavailable) && p.FallbackEnabled && p.Offline != nil {
			log.Warn().Err(err).Msg("Schedules provider unavailable, using offline estimate")

			plan.Status = ctdf.JourneyPlanStatusFallback
			plan.FallbackReason = err.Error()
			legs, err = SelectItinerary(ctx, path, p.Offline, options)
		}
	case p.Offline != nil:
		plan.Status = ctdf.JourneyPlanStatusFallback
		plan.FallbackReason = providerNotConfigured
		legs, err = SelectItinerary(ctx, path, p.Offline, options)
	default:
		err = requestError(ErrorKindInvalidRequest, "provider")
	}

	if err != nil {
		return p.fail(plan, err)
	}

	if plan.Status == ctdf.JourneyPlanStatusFallback {
		estimated := &PlanningError{Kind: ErrorKindEstimated, Segment: -1}
		plan.Warnings = append(plan.Warnings, *estimated.Message(p.Language))
	}

	plan.Legs = legs
	plan.TotalDuration = ItineraryDuration(legs, request.MinTransfer)

	if err := p.totalPrice(ctx, plan, request.Currency); err != nil {
		return p.fail(plan, err)
	}

	log.Info().
		Str("origin", request.Origin.DisplayName).
		Str("destination", request.Destination.DisplayName).
		Str("status", string(plan.Status)).
		Int("legs", len(plan.Legs)).
		Int("duration", plan.TotalDuration).
		Float64("price", plan.TotalPrice.Amount).
		Msg("Planned route")

	return plan, nil
}

func (p *Planner) normalizeRequest(request *ctdf.RouteRequest) error {
	if request.Origin.ID == "" {
		return requestError(ErrorKindInvalidRequest, "origin")
	}
	if request.Destination.ID == "" {
		return requestError(ErrorKindInvalidRequest, "destination")
	}
	for _, via := range request.Vias {
		if via.ID == "" {
			return requestError(ErrorKindInvalidRequest, "via")
		}
	}
	if request.MinTransfer < 0 {
		return requestError(ErrorKindInvalidRequest, "min_transfer")
	}
	if request.MaxTransfers < 0 {
		return requestError(ErrorKindInvalidRequest, "max_transfers")
	}

	request.Currency = strings.ToUpper(strings.TrimSpace(request.Currency))
	if request.Currency == "" {
		request.Currency = p.DefaultCurrency
	}
	if request.Currency == "" {
		request.Currency = DefaultCurrency
	}

	if request.Date.IsZero() {
		now := time.Now()
		request.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}

	return nil
}

func (p *Planner) totalPrice(ctx context.Context, plan *ctdf.JourneyPlan, currency string) error {
	total := 0.0
	unconverted := map[string]float64{}

	for _, leg := range plan.Legs {
		amount, converted := leg.Price.Amount, strings.EqualFold(leg.Price.Currency, currency)

		if !converted && p.Converter != nil {
			var err error
			amount, converted, err = p.Converter.Convert(ctx, leg.Price.Amount, leg.Price.Currency, currency)
			if err != nil {
				return &PlanningError{Kind: ErrorKindRateUnavailable, Segment: -1, Currency: currency, Err: err}
			}
		}

		if !converted {
			unconverted[strings.ToUpper(leg.Price.Currency)] += leg.Price.Amount
			continue
		}
		total += amount
	}

	plan.TotalPrice = ctdf.Price{Amount: roundPrice(total), Currency: currency}

	currencies := make([]string, 0, len(unconverted))
	for code := range unconverted {
		currencies = append(currencies, code)
	}
	sort.Strings(currencies)

	for _, code := range currencies {
		plan.UnconvertedPrices = append(plan.UnconvertedPrices, ctdf.Price{Amount: roundPrice(unconverted[code]), Currency: code})

		warning := &PlanningError{Kind: ErrorKindUnconvertedCurrency, Segment: -1, Currency: code}
		plan.Warnings = append(plan.Warnings, *warning.Message(p.Language))
	}

	return nil
}

func (p *Planner) fail(plan *ctdf.JourneyPlan, err error) (*ctdf.JourneyPlan, error) {
	plan.Status = ctdf.JourneyPlanStatusFailed
	plan.Legs = nil

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		plan.Error = &ctdf.JourneyPlanMessage{Kind: "Cancelled", Segment: -1, Message: err.Error()}
		return plan, err
	}

	planningError := AsPlanningError(err)
	plan.Error = planningError.Message(p.Language)

	log.Info().Err(planningError).Str("kind", string(planningError.Kind)).Msg("Route planning failed")

	return plan, planningError
}

func roundPrice(amount float64) float64 {
	return math.Round(amount*100) / 100
}
