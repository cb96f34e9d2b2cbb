package planner

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/smartroute/smartroute/pkg/ctdf"
)

type activeSearch struct {
	sequence uint64
	cancel   context.CancelFunc
}

// Sessions tags every search with an increasing sequence number. A newer search for the same
// session key cancels the one in flight, so a slow answer can never replace a newer one.
type Sessions struct {
	sequence atomic.Uint64

	mutex  sync.Mutex
	active map[string]*activeSearch
}

func NewSessions() *Sessions {
	return &Sessions{
		active: map[string]*activeSearch{},
	}
}

// Begin registers a search, done must be called once its result has been handled
func (s *Sessions) Begin(ctx context.Context, key string) (context.Context, uint64, func()) {
	sequence := s.sequence.Add(1)
	searchContext, cancel := context.WithCancel(ctx)

	s.mutex.Lock()
	if previous, exists := s.active[key]; exists {
		previous.cancel()
	}
	s.active[key] = &activeSearch{sequence: sequence, cancel: cancel}
	s.mutex.Unlock()

	done := func() {
		s.mutex.Lock()
		if current, exists := s.active[key]; exists && current.sequence == sequence {
			delete(s.active, key)
		}
		s.mutex.Unlock()
		cancel()
	}

	return searchContext, sequence, done
}

func (s *Sessions) Current(key string, sequence uint64) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	current, exists := s.active[key]
	return exists && current.sequence == sequence
}

// PlanInSession is PlanRoute for interactive callers. Results of searches replaced by a newer
// one for the same key are discarded and ErrSuperseded is returned instead.
func (p *Planner) PlanInSession(ctx context.Context, sessions *Sessions, key string, request ctdf.RouteRequest) (*ctdf.JourneyPlan, error) {
	if sessions == nil || key == "" {
		return p.PlanRoute(ctx, request)
	}

	searchContext, sequence, done := sessions.Begin(ctx, key)
	defer done()

	plan, err := p.PlanRoute(searchContext, request)
	if !sessions.Current(key, sequence) {
		return nil, ErrSuperseded
	}

	plan.Sequence = sequence
	return plan, err
}
