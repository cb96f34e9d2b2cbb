package planner

import (
	"errors"
	"fmt"

	"github.com/smartroute/smartroute/pkg/ctdf"
)

type ErrorKind string

const (
	ErrorKindUnknownPlace        ErrorKind = "UnknownPlace"
	ErrorKindTooManyTransfers    ErrorKind = "TooManyTransfers"
	ErrorKindNoConnection        ErrorKind = "NoConnection"
	ErrorKindNoFeasibleTransfer  ErrorKind = "NoFeasibleTransfer"
	ErrorKindProviderUnavailable ErrorKind = "ProviderUnavailable"
	ErrorKindRateUnavailable     ErrorKind = "RateUnavailable"
	ErrorKindSamePlace           ErrorKind = "SamePlace"
	ErrorKindInvalidRequest      ErrorKind = "InvalidRequest"
	ErrorKindUnconvertedCurrency ErrorKind = "UnconvertedCurrency"
	ErrorKindEstimated           ErrorKind = "Estimated"
)

var (
	ErrUnknownPlace        = errors.New("unknown place")
	ErrTooManyTransfers    = errors.New("too many transfers")
	ErrNoConnection        = errors.New("no connection")
	ErrNoFeasibleTransfer  = errors.New("no feasible transfer")
	ErrProviderUnavailable = errors.New("schedules provider unavailable")
	ErrRateUnavailable     = errors.New("exchange rate unavailable")
	ErrSamePlace           = errors.New("origin and destination are the same place")
	ErrInvalidRequest      = errors.New("invalid route request")
	ErrSuperseded          = errors.New("search superseded by a newer one")
)

var kindSentinels = map[ErrorKind]error{
	ErrorKindUnknownPlace:        ErrUnknownPlace,
	ErrorKindTooManyTransfers:    ErrTooManyTransfers,
	ErrorKindNoConnection:        ErrNoConnection,
	ErrorKindNoFeasibleTransfer:  ErrNoFeasibleTransfer,
	ErrorKindProviderUnavailable: ErrProviderUnavailable,
	ErrorKindRateUnavailable:     ErrRateUnavailable,
	ErrorKindSamePlace:           ErrSamePlace,
	ErrorKindInvalidRequest:      ErrInvalidRequest,
}

// PlanningError is every failure and warning planning can produce. Segment is zero based and
// -1 when the problem is not tied to one pair of stops.
type PlanningError struct {
	Kind    ErrorKind
	Segment int
	From    string
	To      string

	// Text is the user input for UnknownPlace, the field name for InvalidRequest
	Text string

	Requested   int
	Allowed     int
	MinTransfer int
	Currency    string

	Err error
}

func (e *PlanningError) Error() string {
	message := string(e.Kind)
	if e.Segment >= 0 && e.From != "" {
		message = fmt.Sprintf("%s on segment %d (%s -> %s)", e.Kind, e.Segment+1, e.From, e.To)
	} else if e.Text != "" {
		message = fmt.Sprintf("%s: %s", e.Kind, e.Text)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %s", message, e.Err.Error())
	}
	return message
}

func (e *PlanningError) Unwrap() error {
	return e.Err
}

func (e *PlanningError) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

func (e *PlanningError) Message(language string) *ctdf.JourneyPlanMessage {
	return &ctdf.JourneyPlanMessage{
		Kind:    string(e.Kind),
		Segment: e.Segment,
		Message: e.Localize(language),
	}
}

func segmentError(kind ErrorKind, segment int, from ctdf.Waypoint, to ctdf.Waypoint, err error) *PlanningError {
	return &PlanningError{
		Kind:    kind,
		Segment: segment,
		From:    from.DisplayName,
		To:      to.DisplayName,
		Err:     err,
	}
}

func requestError(kind ErrorKind, text string) *PlanningError {
	return &PlanningError{
		Kind:    kind,
		Segment: -1,
		Text:    text,
	}
}

// UnknownPlaceError is returned by callers resolving user text into a Waypoint
func UnknownPlaceError(text string) *PlanningError {
	return requestError(ErrorKindUnknownPlace, text)
}

// AsPlanningError recovers the typed error, anything else is reported as an invalid request
func AsPlanningError(err error) *PlanningError {
	var planningError *PlanningError
	if errors.As(err, &planningError) {
		return planningError
	}
	return &PlanningError{Kind: ErrorKindInvalidRequest, Segment: -1, Err: err}
}
