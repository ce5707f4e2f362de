package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/matterframe/matterframe/pkg/core/spatial"
)

// ID identifies an object within a Scene. IDs are allocated monotonically
// and never reused within a process lifetime, so a stale ID can never
// silently resolve to a different object. The zero value None means
// "no object" and is used for root-level parents.
type ID uint64

// None is the null object ID.
const None ID = 0

// Kind distinguishes leaf objects from containers. Code that treats
// containers differently switches on Kind rather than probing for
// container-only fields.
type Kind int

const (
	// KindLeaf is a placeable object with no children.
	KindLeaf Kind = iota
	// KindContainer is an object that owns children and may auto-arrange them.
	KindContainer
)

// String returns the kind name for logs and serialization.
func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindContainer:
		return "container"
	default:
		return "unknown"
	}
}

// SizingMode is a per-axis allocation policy.
//
// For leaf objects, Fill affects only how much space the layout algorithm
// allocates along an axis; it never resizes the object's geometry. For
// containers, only Fixed and Hug are meaningful: Fixed extents are
// authoritative, Hug extents are derived from the children's bounds.
type SizingMode int

const (
	SizingFixed SizingMode = iota
	SizingFill
	SizingHug
)

// String returns the sizing mode name for logs and serialization.
func (m SizingMode) String() string {
	switch m {
	case SizingFixed:
		return "fixed"
	case SizingFill:
		return "fill"
	case SizingHug:
		return "hug"
	default:
		return "unknown"
	}
}

// Sizing holds the per-axis sizing modes of an object.
type Sizing struct {
	X SizingMode
	Y SizingMode
	Z SizingMode
}

// Axis names one of the three layout axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "unknown"
	}
}

// Padding is the inner spacing of a container on all six faces.
type Padding struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
	Front  float64
	Back   float64
}

// LayoutConfig is a container's auto-arrangement policy. It is only
// meaningful while Enabled is true; disabling stops recomputation but never
// mutates child extents or the positions already applied.
type LayoutConfig struct {
	// Direction lists the layout axes in order; the first entry is the
	// major axis children are distributed along.
	Direction []Axis
	Gap       float64
	Padding   Padding
	Enabled   bool
}

// clone returns a deep copy so callers cannot alias the stored config.
func (c LayoutConfig) clone() LayoutConfig {
	out := c
	out.Direction = append([]Axis(nil), c.Direction...)
	return out
}

// Record is one object in the scene arena. All links and transforms are
// mutated exclusively through Scene methods so hierarchy invariants cannot
// be bypassed; readers use the accessor methods.
type Record struct {
	id     ID
	kind   Kind
	parent ID

	local   spatial.Transform
	extents spatial.Extents
	sizing  Sizing

	// Container-only state.
	layout          *LayoutConfig
	containerSizing SizingMode // SizingFixed or SizingHug
	anchor          *mgl64.Vec3

	// Cached composed transform, maintained by the world-matrix refresh.
	world      mgl64.Mat4
	worldValid bool
}

// ID returns the object's stable identifier.
func (r *Record) ID() ID { return r.id }

// Kind returns whether the record is a leaf or a container.
func (r *Record) Kind() Kind { return r.kind }

// IsContainer reports whether the record can own children.
func (r *Record) IsContainer() bool { return r.kind == KindContainer }

// Parent returns the owning container, or None at root level.
func (r *Record) Parent() ID { return r.parent }

// Local returns the transform relative to the parent (or the root space).
func (r *Record) Local() spatial.Transform { return r.local }

// Extents returns the object's axis-aligned size.
func (r *Record) Extents() spatial.Extents { return r.extents }

// Sizing returns the per-axis allocation policy.
func (r *Record) Sizing() Sizing { return r.sizing }

// ContainerSizing returns SizingFixed or SizingHug for containers; for
// leaves the value is meaningless.
func (r *Record) ContainerSizing() SizingMode { return r.containerSizing }

// Layout returns a copy of the container's layout config, or nil if the
// record is a leaf or auto-layout was never configured.
func (r *Record) Layout() *LayoutConfig {
	if r.layout == nil {
		return nil
	}
	c := r.layout.clone()
	return &c
}

// LayoutEnabled reports whether auto-layout is configured and enabled.
func (r *Record) LayoutEnabled() bool {
	return r.layout != nil && r.layout.Enabled
}

// Anchor returns the layout anchor, or nil if none was captured.
// The anchor is expressed in the container's local space.
func (r *Record) Anchor() *mgl64.Vec3 {
	if r.anchor == nil {
		return nil
	}
	a := *r.anchor
	return &a
}
