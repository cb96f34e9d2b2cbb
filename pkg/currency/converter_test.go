package currency

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/smartroute/smartroute/pkg/dataaggregator/source/cachedresults"
	"github.com/smartroute/smartroute/pkg/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRateSource struct {
	rate  float64
	err   error
	calls atomic.Int32
	delay time.Duration
}

func (f *fakeRateSource) FetchRate(ctx context.Context) (float64, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.rate, f.err
}

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time {
	return c.now
}

func newConverter(source RateSource) (*Converter, *clock) {
	cache := &cachedresults.Cache{}
	cache.Setup(nil, RateValidity)

	converter := NewConverter(source, cache)
	fixed := &clock{now: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)}
	converter.Now = fixed.Now

	return converter, fixed
}

func TestConvert(t *testing.T) {
	ctx := context.Background()

	t.Run("same currency", func(t *testing.T) {
		source := &fakeRateSource{rate: 4.25}
		converter, _ := newConverter(source)

		amount, converted, err := converter.Convert(ctx, 12.5, "pln", "PLN")
		require.NoError(t, err)
		assert.True(t, converted)
		assert.Equal(t, 12.5, amount)
		assert.Equal(t, int32(0), source.calls.Load())
	})

	t.Run("round trip", func(t *testing.T) {
		converter, _ := newConverter(&fakeRateSource{rate: 4.2731})

		pln, converted, err := converter.Convert(ctx, 100, EUR, PLN)
		require.NoError(t, err)
		assert.True(t, converted)
		assert.InDelta(t, 427.31, pln, 1e-9)

		eur, converted, err := converter.Convert(ctx, pln, PLN, EUR)
		require.NoError(t, err)
		assert.True(t, converted)
		assert.InDelta(t, 100, eur, 1e-9)
	})

	t.Run("other pairs pass through", func(t *testing.T) {
		source := &fakeRateSource{rate: 4.25}
		converter, _ := newConverter(source)

		amount, converted, err := converter.Convert(ctx, 30, "CZK", PLN)
		require.NoError(t, err)
		assert.False(t, converted)
		assert.Equal(t, 30.0, amount)
		assert.Equal(t, int32(0), source.calls.Load())
	})

	t.Run("fetch failure is rate unavailable", func(t *testing.T) {
		converter, _ := newConverter(&fakeRateSource{err: errors.New("connection refused")})

		_, converted, err := converter.Convert(ctx, 10, EUR, PLN)
		assert.False(t, converted)
		assert.ErrorIs(t, err, planner.ErrRateUnavailable)
	})
}

func TestRateCaching(t *testing.T) {
	ctx := context.Background()

	t.Run("reused within validity", func(t *testing.T) {
		source := &fakeRateSource{rate: 4.25}
		converter, fixed := newConverter(source)

		_, err := converter.Rate(ctx)
		require.NoError(t, err)

		fixed.now = fixed.now.Add(11 * time.Hour)
		rate, err := converter.Rate(ctx)
		require.NoError(t, err)

		assert.Equal(t, 4.25, rate)
		assert.Equal(t, int32(1), source.calls.Load())
	})

	t.Run("refetched after validity", func(t *testing.T) {
		source := &fakeRateSource{rate: 4.25}
		converter, fixed := newConverter(source)

		_, err := converter.Rate(ctx)
		require.NoError(t, err)

		source.rate = 4.31
		fixed.now = fixed.now.Add(RateValidity)

		rate, err := converter.Rate(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4.31, rate)
		assert.Equal(t, int32(2), source.calls.Load())
	})

	t.Run("shared through redis", func(t *testing.T) {
		server := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: server.Addr()})

		source := &fakeRateSource{rate: 4.25}
		for i := 0; i < 2; i++ {
			cache := &cachedresults.Cache{}
			cache.Setup(client, RateValidity)

			converter := NewConverter(source, cache)
			rate, err := converter.Rate(ctx)
			require.NoError(t, err)
			assert.Equal(t, 4.25, rate)
		}

		assert.Equal(t, int32(1), source.calls.Load())
		assert.True(t, server.Exists(CacheKey))
	})

	t.Run("concurrent callers share one fetch", func(t *testing.T) {
		source := &fakeRateSource{rate: 4.25, delay: 50 * time.Millisecond}
		converter, _ := newConverter(source)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := converter.Rate(ctx)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), source.calls.Load())
	})
}

func TestFrankfurterSource(t *testing.T) {
	t.Run("reads PLN rate", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"amount":1.0,"base":"EUR","date":"2026-10-16","rates":{"PLN":4.2731}}`))
		}))
		defer server.Close()

		rate, err := FrankfurterSource{URL: server.URL}.FetchRate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 4.2731, rate)
	})

	t.Run("errors", func(t *testing.T) {
		tests := map[string]http.HandlerFunc{
			"status":    func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) },
			"malformed": func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`not json`)) },
			"no rate":   func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"base":"EUR","rates":{"USD":1.1}}`)) },
			"base":      func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"base":"USD","rates":{"PLN":3.9}}`)) },
		}

		for name, handler := range tests {
			t.Run(name, func(t *testing.T) {
				server := httptest.NewServer(handler)
				defer server.Close()

				_, err := FrankfurterSource{URL: server.URL}.FetchRate(context.Background())
				assert.Error(t, err)
			})
		}
	})
}
