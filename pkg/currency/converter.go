package currency

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/smartroute/smartroute/pkg/dataaggregator/source/cachedresults"
	"github.com/smartroute/smartroute/pkg/planner"
	"golang.org/x/sync/singleflight"
)

const (
	EUR = "EUR"
	PLN = "PLN"

	CacheKey     = "smartroute:fx:EUR:PLN"
	RateValidity = 12 * time.Hour
)

type RateSource interface {
	FetchRate(ctx context.Context) (float64, error)
}

type cachedRate struct {
	Timestamp time.Time `json:"timestamp"`
	Rate      float64   `json:"rate"`
}

// Converter converts between EUR and PLN with a daily rate. Any other pair is passed through
// unconverted so the caller can show the currency the amount is really in.
type Converter struct {
	Source RateSource
	Cache  *cachedresults.Cache
	Now    func() time.Time

	fetches singleflight.Group
}

func NewConverter(source RateSource, cache *cachedresults.Cache) *Converter {
	return &Converter{
		Source: source,
		Cache:  cache,
		Now:    time.Now,
	}
}

func (c *Converter) Convert(ctx context.Context, amount float64, from string, to string) (float64, bool, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	if from == to {
		return amount, true, nil
	}
	if !Supported(from, to) {
		return amount, false, nil
	}

	rate, err := c.Rate(ctx)
	if err != nil {
		return 0, false, err
	}

	if from == EUR {
		return amount * rate, true, nil
	}
	return amount / rate, true, nil
}

func Supported(from string, to string) bool {
	return (from == EUR && to == PLN) || (from == PLN && to == EUR)
}

// Rate returns the EUR to PLN rate, fetching it only when the cached one is missing or older
// than RateValidity. Concurrent callers share a single fetch.
func (c *Converter) Rate(ctx context.Context) (float64, error) {
	if rate, ok := c.cachedRate(ctx); ok {
		return rate, nil
	}

	value, err, _ := c.fetches.Do(CacheKey, func() (interface{}, error) {
		if rate, ok := c.cachedRate(ctx); ok {
			return rate, nil
		}

		if c.Source == nil {
			return 0.0, errors.New("no rate source configured")
		}

		rate, err := c.Source.FetchRate(ctx)
		if err != nil {
			return 0.0, err
		}

		if err := c.Cache.Set(ctx, CacheKey, cachedRate{Timestamp: c.now(), Rate: rate}); err != nil {
			log.Warn().Err(err).Msg("Failed to cache exchange rate")
		}

		log.Info().Float64("rate", rate).Msg("Fetched EUR to PLN exchange rate")

		return rate, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", planner.ErrRateUnavailable, err)
	}

	return value.(float64), nil
}

func (c *Converter) cachedRate(ctx context.Context) (float64, bool) {
	var cached cachedRate
	if !c.Cache.Get(ctx, CacheKey, &cached) {
		return 0, false
	}

	if cached.Rate <= 0 || c.now().Sub(cached.Timestamp) >= RateValidity {
		return 0, false
	}

	return cached.Rate, true
}

func (c *Converter) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
