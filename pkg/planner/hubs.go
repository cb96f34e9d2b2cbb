package planner

import (
	"cmp"

	"github.com/smartroute/smartroute/pkg/ctdf"
	"golang.org/x/exp/slices"
)

const DefaultHubCandidateCap = 5000

type HubSelector interface {
	SelectHubs(origin ctdf.Waypoint, destination ctdf.Waypoint, count int) []ctdf.Waypoint
}

// NearestHubs picks hubs from the first Cap candidates of the dataset (0 means all of them).
// With a cap the choice is biased to dataset order rather than the true nearest hub.
type NearestHubs struct {
	Candidates []ctdf.Waypoint
	Cap        int
}

func (n NearestHubs) SelectHubs(origin ctdf.Waypoint, destination ctdf.Waypoint, count int) []ctdf.Waypoint {
	candidates := n.Candidates
	if n.Cap > 0 && len(candidates) > n.Cap {
		candidates = candidates[:n.Cap]
	}

	return SelectHubs(candidates, origin, destination, count)
}

type scoredHub struct {
	waypoint ctdf.Waypoint
	score    float64
}

// SelectHubs returns up to count waypoints with the smallest detour
// distance(origin, hub) + distance(hub, destination), closest first
func SelectHubs(candidates []ctdf.Waypoint, origin ctdf.Waypoint, destination ctdf.Waypoint, count int) []ctdf.Waypoint {
	if count <= 0 {
		return nil
	}

	seen := map[string]bool{
		origin.ID:      true,
		destination.ID: true,
	}
	scored := make([]scoredHub, 0, len(candidates))

	for _, candidate := range candidates {
		if seen[candidate.ID] {
			continue
		}
		seen[candidate.ID] = true

		scored = append(scored, scoredHub{
			waypoint: candidate,
			score:    origin.Distance(candidate) + candidate.Distance(destination),
		})
	}

	slices.SortStableFunc(scored, func(a, b scoredHub) int {
		return cmp.Compare(a.score, b.score)
	})

	if len(scored) > count {
		scored = scored[:count]
	}

	hubs := make([]ctdf.Waypoint, 0, len(scored))
	for _, hub := range scored {
		hubs = append(hubs, hub.waypoint)
	}
	return hubs
}
