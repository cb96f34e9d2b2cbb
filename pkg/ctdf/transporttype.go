package ctdf

import "strings"

type TransportType string

//goland:noinspection GoUnusedConst
const (
	TransportTypeTrain   TransportType = "Train"
	TransportTypeBus     TransportType = "Bus"
	TransportTypeFlight  TransportType = "Flight"
	TransportTypeFerry   TransportType = "Ferry"
	TransportTypeUnknown TransportType = "UNKNOWN"
)

// ParseTransportType maps the travel mode names used by schedule providers
func ParseTransportType(mode string) TransportType {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "train", "rail":
		return TransportTypeTrain
	case "bus", "coach":
		return TransportTypeBus
	case "flight", "plane", "air":
		return TransportTypeFlight
	case "ferry", "boat":
		return TransportTypeFerry
	default:
		return TransportTypeUnknown
	}
}
