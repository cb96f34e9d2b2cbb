package dataaggregator

import (
	"context"
	"errors"
	"reflect"

	"github.com/rs/zerolog/log"
	"github.com/smartroute/smartroute/pkg/dataaggregator/source"
)

var ErrNoMatchingSource = errors.New("Failed to find a matching Data Source for type")

type Aggregator struct {
	Sources []DataSource
}

func (a *Aggregator) RegisterSource(source DataSource) {
	a.Sources = append(a.Sources, source)

	log.Debug().Str("name", source.GetName()).Msg("Registering new Data Source")
}

// Lookup asks every source supporting T in registration order. A source answering
// UnsupportedSourceError passes the query on to the next one.
func Lookup[T any](a *Aggregator, ctx context.Context, query any) (T, error) {
	var empty T

	lookupType := reflect.TypeOf(*new(T))
	if lookupType.Kind() == reflect.Pointer {
		lookupType = lookupType.Elem()
	}

	for _, dataSource := range a.Sources {
		matches := false

		for _, supportedType := range dataSource.Supports() {
			if lookupType == supportedType {
				matches = true
				break
			}
		}

		if !matches {
			continue
		}

		returnValue, returnError := dataSource.Lookup(ctx, query)

		if errors.Is(returnError, source.UnsupportedSourceError) {
			log.Debug().Str("source", dataSource.GetName()).Msg("Source skipped query")
			continue
		}

		if returnValue == nil {
			return empty, returnError
		}

		value, ok := returnValue.(T)
		if !ok {
			return empty, returnError
		}
		return value, returnError
	}

	return empty, ErrNoMatchingSource
}
