package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/smartroute/smartroute/pkg/config"
	"github.com/smartroute/smartroute/pkg/ctdf"
	"github.com/smartroute/smartroute/pkg/currency"
	"github.com/smartroute/smartroute/pkg/dataaggregator"
	"github.com/smartroute/smartroute/pkg/dataaggregator/global"
	"github.com/smartroute/smartroute/pkg/dataaggregator/query"
	"github.com/smartroute/smartroute/pkg/dataaggregator/source/cachedresults"
	"github.com/smartroute/smartroute/pkg/dataaggregator/source/journeyplanner"
	"github.com/smartroute/smartroute/pkg/dataaggregator/source/offline"
	"github.com/smartroute/smartroute/pkg/dataaggregator/source/placeindex"
	"github.com/smartroute/smartroute/pkg/dataaggregator/source/stations"
	"github.com/smartroute/smartroute/pkg/dataaggregator/source/worker"
	"github.com/smartroute/smartroute/pkg/dataimporter"
	"github.com/smartroute/smartroute/pkg/elastic_client"
	"github.com/smartroute/smartroute/pkg/indexer"
	"github.com/smartroute/smartroute/pkg/planner"
	"github.com/smartroute/smartroute/pkg/redis_client"
)

// PlanningContext is built once at startup and shared by the HTTP server and the CLI
type PlanningContext struct {
	Config *config.Config

	Index      *indexer.Index
	Worker     *worker.Source
	Converter  *currency.Converter
	Planner    *planner.Planner
	Sessions   *planner.Sessions
	Aggregator *dataaggregator.Aggregator
}

// PlanRequest is a route request as typed by a user, place names are resolved through the
// aggregator. Nil MinTransfer/MaxTransfers take the configured defaults.
type PlanRequest struct {
	From         string   `yaml:"from"`
	To           string   `yaml:"to"`
	Vias         []string `yaml:"vias"`
	Date         string   `yaml:"date"`
	MinTransfer  *int     `yaml:"min_transfer"`
	MaxTransfers *int     `yaml:"max_transfers"`
	Currency     string   `yaml:"currency"`

	SessionKey string `yaml:"-"`
}

var ErrInvalidDate = errors.New("date should be formatted as YYYY-MM-DD")

func New(ctx context.Context, appConfig *config.Config) (*PlanningContext, error) {
	places, err := dataimporter.LoadPlaces(appConfig.Places.File)
	if err != nil {
		return nil, err
	}
	index := indexer.Build(places)

	log.Info().Int("places", index.Len()).Msg("Loaded places")

	filter, err := planner.CompileLegFilter(appConfig.Planner.LegFilter)
	if err != nil {
		return nil, err
	}

	if err := redis_client.Connect(ctx, appConfig.Redis); err != nil {
		return nil, err
	}
	rateCache := &cachedresults.Cache{}
	rateCache.Setup(redis_client.Client, currency.RateValidity)

	converter := currency.NewConverter(currency.FrankfurterSource{
		URL:     appConfig.Currency.RateURL,
		Timeout: appConfig.Provider.Timeout,
	}, rateCache)

	routePlanner := &planner.Planner{
		Hubs: planner.NearestHubs{
			Candidates: index.Waypoints(),
			Cap:        appConfig.Planner.HubCandidateCap,
		},
		Offline:         offline.Source{},
		Converter:       converter,
		Filter:          filter,
		FallbackEnabled: appConfig.Provider.FallbackEnabled,
		DefaultCurrency: appConfig.Currency.Default,
		Language:        appConfig.Planner.Language,
	}

	planningContext := &PlanningContext{
		Config:    appConfig,
		Index:     index,
		Converter: converter,
		Planner:   routePlanner,
		Sessions:  planner.NewSessions(),
	}

	sources := global.Sources{
		Places: placeindex.Source{Index: index},
		JourneyPlanner: journeyplanner.Source{
			Planner:  routePlanner,
			Sessions: planningContext.Sessions,
		},
	}

	if appConfig.Provider.WorkerURL != "" {
		planningContext.Worker = worker.New(appConfig.Provider.WorkerURL, appConfig.Provider.Timeout, appConfig.Provider.RetryMaxElapsed)
		routePlanner.Provider = planningContext.Worker
		sources.Worker = planningContext.Worker
	} else {
		log.Info().Msg("No schedules worker configured, routes will be estimated")
	}

	if err := elastic_client.Connect(appConfig.Elasticsearch, false); err != nil {
		log.Warn().Err(err).Msg("Elasticsearch unavailable, suggestions from the local index only")
	} else if elastic_client.Client != nil {
		sources.Stations = &stations.Source{
			Client: elastic_client.Client,
			Index:  appConfig.Elasticsearch.Index,
		}
	}

	planningContext.Aggregator = global.Setup(sources)

	return planningContext, nil
}

func (p *PlanningContext) ResolvePlace(ctx context.Context, text string) (*ctdf.Place, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, planner.UnknownPlaceError(text)
	}

	return dataaggregator.Lookup[*ctdf.Place](p.Aggregator, ctx, query.Place{Text: text})
}

// Suggest returns the initial list for empty text and nothing for text shorter than two
// normalized characters
func (p *PlanningContext) Suggest(ctx context.Context, text string, limit int) ([]string, error) {
	text = strings.TrimSpace(text)
	if text != "" && indexer.ShortQuery(text) {
		return []string{}, nil
	}

	if limit <= 0 {
		limit = p.Config.Places.SuggestionLimit
	}

	return dataaggregator.Lookup[[]string](p.Aggregator, ctx, query.PlaceSuggestions{
		Text:  text,
		Limit: limit,
	})
}

func (p *PlanningContext) Health(ctx context.Context) (*ctdf.ProviderHealth, error) {
	return dataaggregator.Lookup[*ctdf.ProviderHealth](p.Aggregator, ctx, query.ProviderHealth{})
}

// Plan resolves the typed place names and plans the route. Like PlanRoute the plan is only nil
// when the search was superseded.
func (p *PlanningContext) Plan(ctx context.Context, request PlanRequest) (*ctdf.JourneyPlan, error) {
	routeRequest, err := p.routeRequest(ctx, request)
	if err != nil {
		return p.failed(err)
	}

	plan, err := dataaggregator.Lookup[*ctdf.JourneyPlan](p.Aggregator, ctx, query.JourneyPlan{
		Request:    routeRequest,
		SessionKey: request.SessionKey,
	})
	if plan == nil && err != nil && !errors.Is(err, planner.ErrSuperseded) {
		return p.failed(err)
	}

	return plan, err
}

func (p *PlanningContext) routeRequest(ctx context.Context, request PlanRequest) (ctdf.RouteRequest, error) {
	routeRequest := ctdf.RouteRequest{
		MinTransfer:  p.Config.Planner.MinTransfer,
		MaxTransfers: p.Config.Planner.MaxTransfers,
		Currency:     request.Currency,
	}
	if request.MinTransfer != nil {
		routeRequest.MinTransfer = *request.MinTransfer
	}
	if request.MaxTransfers != nil {
		routeRequest.MaxTransfers = *request.MaxTransfers
	}

	if request.Date != "" {
		date, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(request.Date), time.Local)
		if err != nil {
			return routeRequest, &planner.PlanningError{Kind: planner.ErrorKindInvalidRequest, Segment: -1, Text: "date", Err: ErrInvalidDate}
		}
		routeRequest.Date = date
	}

	if strings.TrimSpace(request.From) == "" {
		return routeRequest, &planner.PlanningError{Kind: planner.ErrorKindInvalidRequest, Segment: -1, Text: "from"}
	}
	if strings.TrimSpace(request.To) == "" {
		return routeRequest, &planner.PlanningError{Kind: planner.ErrorKindInvalidRequest, Segment: -1, Text: "to"}
	}

	origin, err := p.ResolvePlace(ctx, request.From)
	if err != nil {
		return routeRequest, err
	}
	routeRequest.Origin = origin.Waypoint()

	destination, err := p.ResolvePlace(ctx, request.To)
	if err != nil {
		return routeRequest, err
	}
	routeRequest.Destination = destination.Waypoint()

	for _, viaText := range request.Vias {
		if strings.TrimSpace(viaText) == "" {
			continue
		}

		via, err := p.ResolvePlace(ctx, viaText)
		if err != nil {
			return routeRequest, err
		}
		routeRequest.Vias = append(routeRequest.Vias, via.Waypoint())
	}

	return routeRequest, nil
}

func (p *PlanningContext) failed(err error) (*ctdf.JourneyPlan, error) {
	planningError := planner.AsPlanningError(err)

	return &ctdf.JourneyPlan{
		Status: ctdf.JourneyPlanStatusFailed,
		Error:  planningError.Message(p.Config.Planner.Language),
	}, planningError
}
