package physics

import (
	"errors"

	"go.uber.org/zap"
)

// ErrStepInProgress is returned by AddBody/RemoveBody when called from
// inside a collision handler. The body set must not change while Step is
// iterating it; defer the mutation until Step returns.
var ErrStepInProgress = errors.New("physics: body set mutation during step")

// HandlerFunc is invoked synchronously during Step for each overlapping
// body pair matching the handler's type mask. Returning false stops the
// current step's handler evaluation entirely.
type HandlerFunc func(a, b *Body) bool

type handler struct {
	fn   HandlerFunc
	mask BodyType
}

// Simulation is a minimal broad-phase collision engine: a flat body set
// checked pairwise each fixed step. Bodies are registered by pointer; the
// owner mutates position in place between steps.
type Simulation struct {
	bodies   []*Body
	handlers []handler
	stepping bool
	log      *zap.Logger
}

func NewSimulation(log *zap.Logger) *Simulation {
	return &Simulation{
		bodies: make([]*Body, 0, 64),
		log:    log,
	}
}

// AddHandler registers a collision callback for pairs whose combined type
// bits equal mask.
func (s *Simulation) AddHandler(fn HandlerFunc, mask BodyType) error {
	if fn == nil {
		return errors.New("physics: nil collision handler")
	}
	s.handlers = append(s.handlers, handler{fn: fn, mask: mask})
	return nil
}

// AddBody registers a body with the simulation. The pointer is retained;
// the caller keeps ownership and keeps the position current.
func (s *Simulation) AddBody(b *Body) error {
	if s.stepping {
		return ErrStepInProgress
	}
	s.bodies = append(s.bodies, b)
	return nil
}

// RemoveBody unregisters a body. Removing a body that is not registered is
// a no-op. After removal the body can never match another pair.
func (s *Simulation) RemoveBody(b *Body) error {
	if s.stepping {
		return ErrStepInProgress
	}
	for i, got := range s.bodies {
		if got == b {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			return nil
		}
	}
	return nil
}

// Step advances the simulation by dt and invokes matching handlers for
// every overlapping pair, in body registration order. Handlers run
// synchronously before Step returns and must not mutate the body set.
func (s *Simulation) Step(dt float64) {
	s.stepping = true
	defer func() { s.stepping = false }()

	for i := 0; i < len(s.bodies); i++ {
		for j := i + 1; j < len(s.bodies); j++ {
			a, b := s.bodies[i], s.bodies[j]
			if !a.overlaps(b) {
				continue
			}
			pair := a.Type | b.Type
			for _, h := range s.handlers {
				if h.mask != pair {
					continue
				}
				if !h.fn(a, b) {
					return
				}
			}
		}
	}
}

// Close releases the simulation. The body set is dropped; registered bodies
// stay valid, they are simply no longer checked.
func (s *Simulation) Close() {
	s.bodies = nil
	s.handlers = nil
}
