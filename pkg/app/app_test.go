package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/smartroute/smartroute/pkg/config"
	"github.com/smartroute/smartroute/pkg/ctdf"
	"github.com/smartroute/smartroute/pkg/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateServer(t *testing.T) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base":"EUR","rates":{"PLN":4.0}}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestContext(t *testing.T, workerURL string) *PlanningContext {
	appConfig := config.Default()
	appConfig.Provider.WorkerURL = workerURL
	appConfig.Provider.RetryMaxElapsed = 0
	appConfig.Currency.RateURL = newRateServer(t).URL

	planningContext, err := New(context.Background(), appConfig)
	require.NoError(t, err)
	return planningContext
}

func intPointer(value int) *int {
	return &value
}

func TestPlanOffline(t *testing.T) {
	planningContext := newTestContext(t, "")

	plan, err := planningContext.Plan(context.Background(), PlanRequest{
		From:         "Warszawa",
		To:           "berlin",
		Date:         "2026-10-20",
		MaxTransfers: intPointer(0),
	})
	require.NoError(t, err)

	assert.Equal(t, ctdf.JourneyPlanStatusFallback, plan.Status)
	assert.Equal(t, "schedules provider not configured", plan.FallbackReason)
	require.Len(t, plan.Legs, 1)
	assert.True(t, plan.Legs[0].Synthetic)
	assert.Equal(t, "PLN", plan.TotalPrice.Currency)
	assert.InDelta(t, plan.Legs[0].Price.Amount*4, plan.TotalPrice.Amount, 0.01)
	assert.Equal(t, "Estimated", plan.Warnings[0].Kind)
}

func TestPlanResolvesLocalNames(t *testing.T) {
	planningContext := newTestContext(t, "")

	plan, err := planningContext.Plan(context.Background(), PlanRequest{
		From:     "warszawa (pl)",
		To:       "Paryż",
		Vias:     []string{"Berlin"},
		Currency: "EUR",
	})
	require.NoError(t, err)

	require.Len(t, plan.Path, 3)
	assert.Equal(t, "pl-warszawa", plan.Path[0].ID)
	assert.Equal(t, "de-berlin", plan.Path[1].ID)
	assert.Equal(t, "fr-paris", plan.Path[2].ID)
	assert.Equal(t, "EUR", plan.TotalPrice.Currency)
	assert.Empty(t, plan.UnconvertedPrices)
}

func TestPlanFailures(t *testing.T) {
	planningContext := newTestContext(t, "")

	t.Run("unknown place", func(t *testing.T) {
		plan, err := planningContext.Plan(context.Background(), PlanRequest{From: "Atlantis", To: "Berlin"})
		assert.ErrorIs(t, err, planner.ErrUnknownPlace)
		require.NotNil(t, plan)
		assert.Equal(t, ctdf.JourneyPlanStatusFailed, plan.Status)
		assert.Equal(t, "UnknownPlace", plan.Error.Kind)
		assert.Contains(t, plan.Error.Message, "Atlantis")
	})

	t.Run("missing destination", func(t *testing.T) {
		_, err := planningContext.Plan(context.Background(), PlanRequest{From: "Berlin"})
		assert.ErrorIs(t, err, planner.ErrInvalidRequest)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := planningContext.Plan(context.Background(), PlanRequest{From: "Berlin", To: "Paris", Date: "20.10.2026"})
		assert.ErrorIs(t, err, planner.ErrInvalidRequest)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("same place", func(t *testing.T) {
		plan, err := planningContext.Plan(context.Background(), PlanRequest{From: "Kraków", To: "krakow"})
		assert.ErrorIs(t, err, planner.ErrSamePlace)
		assert.Equal(t, ctdf.JourneyPlanStatusFailed, plan.Status)
	})
}

func TestPlanWithWorker(t *testing.T) {
	worker := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/journeys":
			w.Write([]byte(`{"journeys":[{"price":149,"currency":"PLN","durationInMinutes":330,"travelMode":"train","departureDateAndTime":"2026-10-20T08:00:00"}]}`))
		case "/health":
			w.Write([]byte(`{"ok":true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer worker.Close()

	planningContext := newTestContext(t, worker.URL)

	plan, err := planningContext.Plan(context.Background(), PlanRequest{
		From:         "Warszawa",
		To:           "Berlin",
		Date:         "2026-10-20",
		MaxTransfers: intPointer(0),
	})
	require.NoError(t, err)
	assert.Equal(t, ctdf.JourneyPlanStatusReal, plan.Status)
	assert.Equal(t, ctdf.Price{Amount: 149, Currency: "PLN"}, plan.TotalPrice)

	health, err := planningContext.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ctdf.ProviderModeAuto, health.Mode)
}

func TestSuggestAndHealth(t *testing.T) {
	planningContext := newTestContext(t, "")

	suggestions, err := planningContext.Suggest(context.Background(), "ber", 0)
	require.NoError(t, err)
	assert.Contains(t, suggestions, "Berlin (DE)")

	initial, err := planningContext.Suggest(context.Background(), "", 2)
	require.NoError(t, err)
	assert.Len(t, initial, 2)

	health, err := planningContext.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ctdf.ProviderModeMock, health.Mode)
}

func TestSuggestSkipsShortQueries(t *testing.T) {
	var stationCalls atomic.Int32
	worker := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/stations" {
			stationCalls.Add(1)
		}
		w.Write([]byte(`{"stations":[{"id":"1","name":"Warszawa Centralna"}]}`))
	}))
	defer worker.Close()

	planningContext := newTestContext(t, worker.URL)

	for _, text := range []string{"W", " ó "} {
		suggestions, err := planningContext.Suggest(context.Background(), text, 0)
		require.NoError(t, err)
		assert.Empty(t, suggestions, text)
	}
	assert.Zero(t, stationCalls.Load())

	suggestions, err := planningContext.Suggest(context.Background(), "wa", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Warszawa Centralna"}, suggestions)
	assert.Equal(t, int32(1), stationCalls.Load())
}

func TestPlanBatch(t *testing.T) {
	planningContext := newTestContext(t, "")

	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- from: Warszawa
  to: Berlin
  currency: EUR
  max_transfers: 0
- from: Atlantis
  to: Berlin
- from: Gdańsk
  to: Prague
  vias: [Poznań]
  min_transfer: 45
`), 0o600))

	requests, err := readBatchFile(path)
	require.NoError(t, err)
	require.Len(t, requests, 3)
	assert.Equal(t, 45, *requests[2].MinTransfer)

	results := planningContext.PlanBatch(context.Background(), requests, 2)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, ctdf.JourneyPlanStatusFallback, results[0].Plan.Status)
	assert.ErrorIs(t, results[1].Err, planner.ErrUnknownPlace)
	assert.Equal(t, "Atlantis", results[1].Request.From)

	var out bytes.Buffer
	require.NoError(t, writeBatch(&out, FormatText, results))
	assert.Contains(t, out.String(), "== Warszawa → Berlin")
	assert.Contains(t, out.String(), "No route:")
}

func TestRender(t *testing.T) {
	planningContext := newTestContext(t, "")

	plan, err := planningContext.Plan(context.Background(), PlanRequest{
		From:         "Warszawa",
		To:           "Berlin",
		Currency:     "EUR",
		MaxTransfers: intPointer(0),
	})
	require.NoError(t, err)

	var text bytes.Buffer
	require.NoError(t, Render(&text, FormatText, plan))
	assert.Contains(t, text.String(), "Warszawa → Berlin  [Fallback]")
	assert.Contains(t, text.String(), "Total: ")

	var encoded bytes.Buffer
	require.NoError(t, Render(&encoded, FormatJSON, plan))
	assert.Contains(t, encoded.String(), `"Status": "Fallback"`)
	assert.Contains(t, encoded.String(), `"Sequence"`)

	var dumped bytes.Buffer
	require.NoError(t, Render(&dumped, FormatPretty, plan))
	assert.Contains(t, dumped.String(), "ctdf.JourneyPlan")

	assert.Error(t, Render(&bytes.Buffer{}, "xml", plan))
}
