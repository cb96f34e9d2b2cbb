package planner

import (
	"github.com/smartroute/smartroute/pkg/ctdf"
)

// BuildPath joins origin, vias (or automatically chosen hubs) and destination. When more vias
// are given than transfers allowed only the first maxTransfers are used and a TooManyTransfers
// warning is returned alongside the path.
func BuildPath(origin ctdf.Waypoint, destination ctdf.Waypoint, vias []ctdf.Waypoint, maxTransfers int, hubs HubSelector) (ctdf.Path, []*PlanningError, error) {
	if origin.Same(destination) {
		return nil, nil, requestError(ErrorKindSamePlace, origin.DisplayName)
	}
	if maxTransfers < 0 {
		maxTransfers = 0
	}

	var warnings []*PlanningError
	path := ctdf.Path{origin}

	switch {
	case len(vias) > 0:
		if len(vias) > maxTransfers {
			warnings = append(warnings, &PlanningError{
				Kind:      ErrorKindTooManyTransfers,
				Segment:   -1,
				Requested: len(vias),
				Allowed:   maxTransfers,
			})
			vias = vias[:maxTransfers]
		}
		path = append(path, vias...)
	case maxTransfers > 0 && hubs != nil:
		path = append(path, hubs.SelectHubs(origin, destination, maxTransfers)...)
	}

	return append(path, destination), warnings, nil
}
