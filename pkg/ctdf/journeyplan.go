package ctdf

import "time"

type RouteRequest struct {
	Origin      Waypoint
	Destination Waypoint
	Vias        []Waypoint

	Date         time.Time
	MinTransfer  int
	MaxTransfers int
	Currency     string
}

type JourneyPlanStatus string

const (
	JourneyPlanStatusReal     JourneyPlanStatus = "Real"
	JourneyPlanStatusFallback JourneyPlanStatus = "Fallback"
	JourneyPlanStatusFailed   JourneyPlanStatus = "Failed"
)

type JourneyPlan struct {
	Status         JourneyPlanStatus `groups:"basic"`
	FallbackReason string            `groups:"basic"`
	Sequence       uint64            `groups:"detailed"`

	Path []Waypoint `groups:"basic"`
	Legs []*Leg     `groups:"basic"`

	TotalDuration     int     `groups:"basic"`
	TotalPrice        Price   `groups:"basic"`
	UnconvertedPrices []Price `groups:"basic"`

	Warnings []JourneyPlanMessage `groups:"basic"`
	Error    *JourneyPlanMessage  `groups:"basic"`
}

// JourneyPlanMessage is a warning or error ready to be shown to the user
type JourneyPlanMessage struct {
	Kind    string `groups:"basic"`
	Segment int    `groups:"basic"`
	Message string `groups:"basic"`
}

func (j *JourneyPlan) Estimated() bool {
	return j.Status == JourneyPlanStatusFallback
}

const (
	ProviderModeAuto = "AUTO"
	ProviderModeMock = "MOCK"
)

// ProviderHealth reports whether real schedules can be fetched (AUTO) or only estimates (MOCK)
type ProviderHealth struct {
	Mode      string    `groups:"basic"`
	Available bool      `groups:"basic"`
	CheckedAt time.Time `groups:"basic"`
}
