package layout

import (
	"errors"
	"fmt"

	"github.com/matterframe/matterframe/pkg/core/scene"
)

// ErrCascadeDepthExceeded is returned when upward propagation takes more
// steps than the changed object's nesting depth allows. Recomputes already
// applied before the ceiling was hit are kept - each was individually
// valid - and the condition indicates a violated hierarchy invariant, not
// a user error.
var ErrCascadeDepthExceeded = errors.New("cascade exceeded hierarchy depth ceiling")

// Propagator walks changes up the ancestor chain. When a leaf transform or
// geometry changes, each ancestor container with layout enabled is
// recomputed in turn; the walk stops at the root or at the first ancestor
// whose size did not change.
type Propagator struct {
	scene *scene.Scene
	orch  *Orchestrator
}

// NewPropagator creates a propagator using the given orchestrator.
func NewPropagator(s *scene.Scene, orch *Orchestrator) *Propagator {
	return &Propagator{scene: s, orch: orch}
}

// NotifyChanged reacts to a change of the given object and returns the
// number of ancestor recomputes performed. The cascade is iterative with a
// hard ceiling of the object's observed nesting depth + 1, failing with
// [ErrCascadeDepthExceeded] instead of looping forever if the parent chain
// is ever longer than it can legally be.
//
// A change at depth d therefore triggers at most d recompute calls.
func (p *Propagator) NotifyChanged(id scene.ID) (int, error) {
	depth, err := p.scene.NestingDepth(id)
	if err != nil {
		return 0, err
	}
	ceiling := depth + 1

	cur, err := p.scene.Parent(id)
	if err != nil {
		return 0, err
	}

	steps := 0
	for cur != scene.None {
		if steps >= ceiling {
			return steps, fmt.Errorf("propagating from object %d: %w", id, ErrCascadeDepthExceeded)
		}

		report, err := p.orch.Recompute(cur)
		if err != nil {
			return steps, err
		}
		steps++
		if report.Outcome != OutcomeApplied || !report.Resized {
			return steps, nil
		}

		cur, err = p.scene.Parent(cur)
		if err != nil {
			return steps, err
		}
	}
	return steps, nil
}
