package query

import (
	"github.com/smartroute/smartroute/pkg/ctdf"
)

// JourneyPlan plans a route. Searches sharing a non-empty SessionKey replace each other.
type JourneyPlan struct {
	Request    ctdf.RouteRequest
	SessionKey string
}
