package ctdf

// Waypoint is anything a route can start, end or change at. Cities from the places dataset and
// stations from a schedules provider both end up as Waypoints.
type Waypoint struct {
	ID          string   `groups:"basic"`
	DisplayName string   `groups:"basic"`
	Location    Location `groups:"basic"`
}

// Same compares identity, two different places can share a name
func (w Waypoint) Same(other Waypoint) bool {
	return w.ID == other.ID
}

func (w Waypoint) Distance(other Waypoint) float64 {
	return w.Location.Distance(other.Location)
}

// Path is origin, transfer points, destination
type Path []Waypoint

func (p Path) Transfers() int {
	if len(p) < 2 {
		return 0
	}
	return len(p) - 2
}

func (p Path) Origin() Waypoint {
	return p[0]
}

func (p Path) Destination() Waypoint {
	return p[len(p)-1]
}
