package layout

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matterframe/matterframe/pkg/core/scene"
	"github.com/matterframe/matterframe/pkg/core/spatial"
)

var (
	// ErrContractViolation is returned when an algorithm's output length
	// does not match its input. The recompute is abandoned and the
	// container keeps its pre-call state; applying misaligned results is
	// exactly the index-mismatch bug class this package exists to prevent.
	ErrContractViolation = errors.New("layout algorithm output misaligned with children")
)

// Outcome classifies the result of a recompute call.
type Outcome int

const (
	// OutcomeApplied means placements were applied and bounds computed.
	OutcomeApplied Outcome = iota
	// OutcomeNoChildren means the container is empty; nothing to place.
	OutcomeNoChildren
	// OutcomeDisabled means auto-layout is absent or switched off; the
	// children keep whatever local transforms they already have.
	OutcomeDisabled
	// OutcomeUnavailable means no algorithm is injected.
	OutcomeUnavailable
)

// String returns the outcome name for logs.
func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeNoChildren:
		return "no-children"
	case OutcomeDisabled:
		return "disabled"
	case OutcomeUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Report describes one recompute: the outcome, the union bounds of the
// placed children (valid only for OutcomeApplied), and whether a hug-sized
// container changed size, with the before/after sizes.
type Report struct {
	Outcome  Outcome
	Bounds   spatial.Box
	Resized  bool
	PrevSize mgl64.Vec3
	NewSize  mgl64.Vec3
}

// Orchestrator runs the injected algorithm over containers and applies the
// output. It never mutates child geometry, only positions - and, for
// hug-sized containers, the container's own extents.
type Orchestrator struct {
	scene *scene.Scene
	algo  Algorithm
}

// NewOrchestrator creates an orchestrator over the given scene. algo may be
// nil, in which case every recompute reports OutcomeUnavailable.
func NewOrchestrator(s *scene.Scene, algo Algorithm) *Orchestrator {
	return &Orchestrator{scene: s, algo: algo}
}

// Recompute re-runs layout for one container.
//
// The bounds of a hug-sized container are accumulated from exactly the
// position/size pairs the algorithm returned - never from re-read child
// extents - so the applied placement and the derived container size can
// never disagree. A captured layout anchor is subtracted from positions
// before accumulation to avoid double-applying the anchor offset. The
// container's position is never changed here, only its size.
func (o *Orchestrator) Recompute(id scene.ID) (Report, error) {
	rec, err := o.scene.Get(id)
	if err != nil {
		return Report{}, err
	}
	if !rec.IsContainer() {
		return Report{}, scene.ErrNotContainer
	}
	if !rec.LayoutEnabled() {
		return Report{Outcome: OutcomeDisabled}, nil
	}
	if o.algo == nil {
		return Report{Outcome: OutcomeUnavailable}, nil
	}

	kids, err := o.scene.Children(id)
	if err != nil {
		return Report{}, err
	}
	if len(kids) == 0 {
		return Report{Outcome: OutcomeNoChildren}, nil
	}

	children := make([]Child, len(kids))
	for i, kid := range kids {
		kr, err := o.scene.Get(kid)
		if err != nil {
			return Report{}, err
		}
		children[i] = Child{ID: kid, Extents: kr.Extents(), Sizing: kr.Sizing()}
	}

	var containerSize mgl64.Vec3
	if rec.ContainerSizing() == scene.SizingFixed {
		containerSize = rec.Extents().Vec3()
	}

	anchor := rec.Anchor()
	res := o.algo(children, *rec.Layout(), containerSize, anchor)
	if len(res.Positions) != len(kids) || len(res.Sizes) != len(kids) {
		return Report{}, fmt.Errorf("container %d: %d children, %d positions, %d sizes: %w",
			id, len(kids), len(res.Positions), len(res.Sizes), ErrContractViolation)
	}

	bounds := spatial.EmptyBox()
	for i, kid := range kids {
		if err := o.scene.SetLocalPosition(kid, res.Positions[i]); err != nil {
			return Report{}, err
		}
		pos := res.Positions[i]
		if anchor != nil {
			pos = pos.Sub(*anchor)
		}
		bounds = bounds.Union(spatial.BoxAround(pos, res.Sizes[i]))
	}

	report := Report{
		Outcome:  OutcomeApplied,
		Bounds:   bounds,
		PrevSize: rec.Extents().Vec3(),
		NewSize:  rec.Extents().Vec3(),
	}

	if rec.ContainerSizing() == scene.SizingHug {
		newSize := bounds.Size()
		if err := o.scene.SetExtents(id, spatial.ExtentsFromVec3(newSize)); err != nil {
			return Report{}, err
		}
		report.NewSize = newSize
		report.Resized = !report.PrevSize.ApproxEqualThreshold(newSize, spatial.Tolerance)
	}

	return report, nil
}
