package placeindex

import (
	"context"
	"reflect"

	"github.com/smartroute/smartroute/pkg/ctdf"
	"github.com/smartroute/smartroute/pkg/dataaggregator/query"
	"github.com/smartroute/smartroute/pkg/dataaggregator/source"
	"github.com/smartroute/smartroute/pkg/indexer"
	"github.com/smartroute/smartroute/pkg/planner"
)

type Source struct {
	Index *indexer.Index
}

func (s Source) GetName() string {
	return "Places Index"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.Place{}),
		reflect.TypeOf([]string{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q := q.(type) {
	case query.Place:
		place, found := s.Index.FindExact(q.Text)
		if !found {
			return nil, planner.UnknownPlaceError(q.Text)
		}
		return place, nil
	case query.PlaceByID:
		place, found := s.Index.ByID(q.ID)
		if !found {
			return nil, planner.UnknownPlaceError(q.ID)
		}
		return place, nil
	case query.PlaceSuggestions:
		limit := q.Limit
		if limit <= 0 {
			limit = indexer.DefaultSuggestionLimit
		}

		if q.Text == "" {
			return s.Index.InitialList(limit), nil
		}
		return s.Index.Suggest(q.Text, limit), nil
	default:
		return nil, source.UnsupportedSourceError
	}
}
