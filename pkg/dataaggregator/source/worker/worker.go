package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/smartroute/smartroute/pkg/ctdf"
	"github.com/smartroute/smartroute/pkg/dataaggregator/query"
	"github.com/smartroute/smartroute/pkg/dataaggregator/source"
	"github.com/smartroute/smartroute/pkg/indexer"
	"github.com/smartroute/smartroute/pkg/planner"
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultMaxElapsed = 8 * time.Second
)

// Source talks to the schedules worker. It is both the real LegProvider and a best effort
// source of station suggestions.
type Source struct {
	BaseURL    string
	Timeout    time.Duration
	MaxElapsed time.Duration

	Client *http.Client
}

func New(baseURL string, timeout time.Duration, maxElapsed time.Duration) *Source {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Source{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		Timeout:    timeout,
		MaxElapsed: maxElapsed,
		Client:     &http.Client{},
	}
}

func (s *Source) GetName() string {
	return "Schedules Worker"
}

func (s *Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf([]string{}),
		reflect.TypeOf(ctdf.ProviderHealth{}),
	}
}

func (s *Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q := q.(type) {
	case query.PlaceSuggestions:
		if indexer.ShortQuery(q.Text) {
			return nil, source.UnsupportedSourceError
		}

		stations, err := s.Stations(ctx, q.Text)
		if err != nil {
			log.Debug().Err(err).Str("query", q.Text).Msg("Station suggestions unavailable")
			return nil, source.UnsupportedSourceError
		}

		// An empty station list keeps the city suggestions
		if len(stations) == 0 {
			return nil, source.UnsupportedSourceError
		}

		var names []string
		for _, station := range stations {
			names = append(names, station.Name)
		}
		if q.Limit > 0 && len(names) > q.Limit {
			names = names[:q.Limit]
		}

		return names, nil
	case query.ProviderHealth:
		return s.Health(ctx), nil
	default:
		return nil, source.UnsupportedSourceError
	}
}

func (s *Source) Candidates(ctx context.Context, from ctdf.Waypoint, to ctdf.Waypoint, date time.Time, currency string) ([]*ctdf.Leg, error) {
	var response providerJourneys

	err := s.fetch(ctx, "/journeys", map[string]string{
		"from":     from.DisplayName,
		"to":       to.DisplayName,
		"date":     date.Format(time.DateOnly),
		"currency": currency,
	}, &response)
	if err != nil {
		return nil, err
	}

	var legs []*ctdf.Leg
	for index, journey := range response.Journeys {
		leg, err := journey.toLeg(from, to, currency, date.Location())
		if err != nil {
			log.Debug().Err(err).Int("index", index).Str("from", from.DisplayName).Str("to", to.DisplayName).Msg("Dropping invalid journey")
			continue
		}

		legs = append(legs, leg)
	}

	log.Debug().
		Str("from", from.DisplayName).
		Str("to", to.DisplayName).
		Int("received", len(response.Journeys)).
		Int("valid", len(legs)).
		Msg("Fetched journeys from schedules worker")

	return legs, nil
}

func (s *Source) Stations(ctx context.Context, text string) ([]Station, error) {
	var response providerStations

	if err := s.fetch(ctx, "/stations", map[string]string{"q": text}, &response); err != nil {
		return nil, err
	}

	stations := make([]Station, 0, len(response.Stations))
	for _, station := range response.Stations {
		if strings.TrimSpace(station.Name) == "" {
			continue
		}
		stations = append(stations, station)
	}

	return stations, nil
}

// Health never fails. An unreachable worker is reported as MOCK mode, a reachable one stays
// AUTO and Available carries its own answer.
func (s *Source) Health(ctx context.Context) *ctdf.ProviderHealth {
	health := &ctdf.ProviderHealth{
		Mode:      ctdf.ProviderModeMock,
		CheckedAt: time.Now(),
	}

	var response providerHealth
	if err := s.fetch(ctx, "/health", nil, &response); err != nil {
		log.Warn().Err(err).Msg("Schedules worker health check failed")
		return health
	}

	health.Mode = ctdf.ProviderModeAuto
	health.Available = response.OK
	if !response.OK {
		log.Warn().Msg("Schedules worker reports it is not ready")
	}

	return health
}

func (s *Source) fetch(ctx context.Context, path string, params map[string]string, out any) error {
	endpoint, err := url.Parse(s.BaseURL + path)
	if err != nil {
		return &ProviderError{Path: path, Err: err}
	}

	values := url.Values{}
	for key, value := range params {
		if value != "" {
			values.Set(key, value)
		}
	}
	endpoint.RawQuery = values.Encode()

	operation := func() error {
		return s.request(ctx, endpoint.String(), path, out)
	}

	var retry backoff.BackOff = &backoff.StopBackOff{}
	if s.MaxElapsed > 0 {
		exponential := backoff.NewExponentialBackOff()
		exponential.MaxElapsedTime = s.MaxElapsed
		retry = exponential
	}

	return backoff.RetryNotify(operation, backoff.WithContext(retry, ctx), func(err error, wait time.Duration) {
		log.Debug().Err(err).Str("path", path).Dur("wait", wait).Msg("Retrying schedules worker request")
	})
}

func (s *Source) request(ctx context.Context, endpoint string, path string, out any) error {
	requestContext, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(requestContext, http.MethodGet, endpoint, nil)
	if err != nil {
		return backoff.Permanent(&ProviderError{Path: path, Err: err})
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return &ProviderError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ProviderError{Path: path, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return &ProviderError{Path: path, StatusCode: resp.StatusCode}
	case resp.StatusCode >= 400:
		return backoff.Permanent(&ProviderError{Path: path, StatusCode: resp.StatusCode})
	}

	if err := json.Unmarshal(body, out); err != nil {
		return backoff.Permanent(&ProviderError{Path: path, Err: fmt.Errorf("malformed response: %w", err)})
	}

	return nil
}

// ProviderError is any failure of the worker itself, it matches planner.ErrProviderUnavailable
type ProviderError struct {
	Path       string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("schedules worker %s returned HTTP %d", e.Path, e.StatusCode)
	}
	return fmt.Sprintf("schedules worker %s failed: %s", e.Path, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Is(target error) bool {
	return target == planner.ErrProviderUnavailable
}
