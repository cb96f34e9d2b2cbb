package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kr/pretty"
	"github.com/liip/sheriff"
	"github.com/smartroute/smartroute/pkg/ctdf"
)

const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// Reduce strips internal fields the same way the HTTP API does
func Reduce(value interface{}, detailed bool) (interface{}, error) {
	groups := []string{"basic"}
	if detailed {
		groups = append(groups, "detailed")
	}

	return sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, value)
}

func Render(w io.Writer, format string, plan *ctdf.JourneyPlan) error {
	switch format {
	case FormatJSON:
		reduced, err := Reduce(plan, true)
		if err != nil {
			return err
		}

		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(reduced)
	case FormatPretty:
		_, err := pretty.Fprintf(w, "%# v\n", plan)
		return err
	case FormatText, "":
		return renderText(w, plan)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderText(w io.Writer, plan *ctdf.JourneyPlan) error {
	var out strings.Builder

	if plan.Status == ctdf.JourneyPlanStatusFailed {
		fmt.Fprintf(&out, "No route: %s\n", plan.Error.Message)
		_, err := io.WriteString(w, out.String())
		return err
	}

	names := make([]string, 0, len(plan.Path))
	for _, waypoint := range plan.Path {
		names = append(names, waypoint.DisplayName)
	}
	fmt.Fprintf(&out, "%s  [%s]\n", strings.Join(names, " → "), plan.Status)

	for index, leg := range plan.Legs {
		fmt.Fprintf(&out, "%d. %-7s %s → %s  %s  %.2f %s",
			index+1, leg.Mode, leg.Origin.DisplayName, leg.Destination.DisplayName,
			formatMinutes(leg.Duration), leg.Price.Amount, leg.Price.Currency)

		if leg.DepartureTime != nil {
			fmt.Fprintf(&out, "  dep %s", leg.DepartureTime.Format("15:04"))
		}
		if arrival, ok := leg.EffectiveArrival(); ok {
			fmt.Fprintf(&out, " arr %s", arrival.Format("15:04"))
		}
		if leg.Carrier != "" {
			fmt.Fprintf(&out, "  %s", leg.Carrier)
		}
		out.WriteString("\n")
	}

	fmt.Fprintf(&out, "Total: %s, %.2f %s", formatMinutes(plan.TotalDuration), plan.TotalPrice.Amount, plan.TotalPrice.Currency)
	for _, price := range plan.UnconvertedPrices {
		fmt.Fprintf(&out, " + %.2f %s", price.Amount, price.Currency)
	}
	out.WriteString("\n")

	for _, warning := range plan.Warnings {
		fmt.Fprintf(&out, "! %s\n", warning.Message)
	}

	_, err := io.WriteString(w, out.String())
	return err
}

func formatMinutes(minutes int) string {
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}
