package journeyplanner

import (
	"context"
	"reflect"

	"github.com/smartroute/smartroute/pkg/ctdf"
	"github.com/smartroute/smartroute/pkg/dataaggregator/query"
	"github.com/smartroute/smartroute/pkg/dataaggregator/source"
	"github.com/smartroute/smartroute/pkg/planner"
)

type Source struct {
	Planner  *planner.Planner
	Sessions *planner.Sessions
}

func (s Source) GetName() string {
	return "Journey Planner"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.JourneyPlan{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q := q.(type) {
	case query.JourneyPlan:
		return s.Planner.PlanInSession(ctx, s.Sessions, q.SessionKey, q.Request)
	default:
		return nil, source.UnsupportedSourceError
	}
}
