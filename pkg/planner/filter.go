package planner

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/smartroute/smartroute/pkg/ctdf"
	"github.com/smartroute/smartroute/pkg/util"
)

// LegFilter drops candidate legs that do not satisfy a user supplied expression, for example
// `Mode != "Flight" && Price < 200`
type LegFilter struct {
	Expression string
	program    *vm.Program
}

type legFilterEnvironment struct {
	Mode          string
	Duration      int
	Price         float64
	Currency      string
	Carrier       string
	Stops         int
	Synthetic     bool
	DepartureHour int
}

func newLegFilterEnvironment(leg *ctdf.Leg) legFilterEnvironment {
	environment := legFilterEnvironment{
		Mode:          string(leg.Mode),
		Duration:      leg.Duration,
		Price:         leg.Price.Amount,
		Currency:      leg.Price.Currency,
		Carrier:       leg.Carrier,
		Stops:         leg.Stops,
		Synthetic:     leg.Synthetic,
		DepartureHour: -1,
	}
	if leg.DepartureTime != nil {
		environment.DepartureHour = leg.DepartureTime.Hour()
	}
	return environment
}

// CompileLegFilter returns nil for an empty expression
func CompileLegFilter(expression string) (*LegFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, nil
	}

	program, err := expr.Compile(expression, expr.Env(legFilterEnvironment{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile leg filter: %w", err)
	}

	return &LegFilter{
		Expression: expression,
		program:    program,
	}, nil
}

func (f *LegFilter) Apply(legs []*ctdf.Leg) ([]*ctdf.Leg, error) {
	if f == nil || f.program == nil {
		return legs, nil
	}

	var evaluationError error
	util.InPlaceFilter(&legs, func(leg *ctdf.Leg) bool {
		if evaluationError != nil {
			return false
		}

		output, err := expr.Run(f.program, newLegFilterEnvironment(leg))
		if err != nil {
			evaluationError = fmt.Errorf("evaluate leg filter: %w", err)
			return false
		}

		keep, _ := output.(bool)
		return keep
	})

	if evaluationError != nil {
		return nil, evaluationError
	}
	return legs, nil
}
