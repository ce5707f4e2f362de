// Package scene implements the object registry and containment hierarchy at
// the core of Matterframe: an arena of leaf and container records keyed by
// stable IDs, with parent links funneled through a single reparent path that
// preserves world-space pose and rejects cycles.
//
// The Scene is single-threaded by design. Every mutating operation runs to
// completion on the caller's goroutine and the tree is never observable in a
// partially-updated state; external readers take snapshots between calls.
package scene

import (
	"errors"
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matterframe/matterframe/pkg/core/spatial"
)

var (
	// ErrNotFound is returned when an ID does not resolve to a live record.
	ErrNotFound = errors.New("object not found")

	// ErrInvalidParent is returned by [Scene.SetParent] when the target
	// parent is a leaf object. Only containers own children.
	ErrInvalidParent = errors.New("parent is not a container")

	// ErrCircularReference is returned when an operation would make a
	// container its own ancestor, including self-parenting. The graph is
	// left unchanged.
	ErrCircularReference = errors.New("object would become its own ancestor")

	// ErrCorruptHierarchy is returned when a traversal revisits an ancestor
	// that does not resolve to the object being checked. This is a fatal
	// integrity violation: it is surfaced, never silently repaired, since
	// guessing which link to break could hide data loss.
	ErrCorruptHierarchy = errors.New("containment graph is corrupt")

	// ErrContainerNotEmpty is returned by [Scene.Remove] when a container
	// still has children and cascading detach was not requested.
	ErrContainerNotEmpty = errors.New("container still has children")

	// ErrNotContainer is returned when a container-only operation is
	// invoked on a leaf object.
	ErrNotContainer = errors.New("object is not a container")

	// ErrInvalidSizing is returned by [Scene.AddContainer] when the
	// container sizing mode is not Fixed or Hug.
	ErrInvalidSizing = errors.New("container sizing must be fixed or hug")

	// ErrDegenerateTransform is returned when a reparent target's world
	// transform is not invertible (zero scale on some axis), so no local
	// transform can preserve the object's world pose.
	ErrDegenerateTransform = errors.New("parent world transform is not invertible")
)

// Scene owns all object records and their containment links. The zero value
// is not usable - use [New]. A Scene is an explicit, passed-by-reference
// store: there are no process-wide singletons, so independent scenes can
// coexist in one process and tests stay deterministic.
type Scene struct {
	records  map[ID]*Record
	children map[ID][]ID
	nextID   ID
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		records:  make(map[ID]*Record),
		children: make(map[ID][]ID),
		nextID:   1,
	}
}

// LeafSpec describes a new leaf object. A zero-value Local is replaced with
// the identity transform.
type LeafSpec struct {
	Local   spatial.Transform
	Extents spatial.Extents
	Sizing  Sizing
}

// ContainerSpec describes a new container. SizingMode must be SizingFixed
// or SizingHug; the zero value means SizingFixed. Layout may be nil for a
// freeform container.
type ContainerSpec struct {
	Local      spatial.Transform
	Extents    spatial.Extents
	Sizing     Sizing
	SizingMode SizingMode
	Layout     *LayoutConfig
}

// AddLeaf creates a leaf object at root level and returns its ID.
// Attach it to a container with [Scene.SetParent].
func (s *Scene) AddLeaf(spec LeafSpec) ID {
	rec := &Record{
		id:      s.allocID(),
		kind:    KindLeaf,
		local:   normalizeLocal(spec.Local),
		extents: spec.Extents,
		sizing:  spec.Sizing,
	}
	s.records[rec.id] = rec
	return rec.id
}

// AddContainer creates a container at root level and returns its ID.
// Returns [ErrInvalidSizing] for SizingFill: containers only support Fixed
// and Hug sizing.
func (s *Scene) AddContainer(spec ContainerSpec) (ID, error) {
	if spec.SizingMode != SizingFixed && spec.SizingMode != SizingHug {
		return None, ErrInvalidSizing
	}
	rec := &Record{
		id:              s.allocID(),
		kind:            KindContainer,
		local:           normalizeLocal(spec.Local),
		extents:         spec.Extents,
		sizing:          spec.Sizing,
		containerSizing: spec.SizingMode,
	}
	if spec.Layout != nil {
		cfg := spec.Layout.clone()
		rec.layout = &cfg
	}
	s.records[rec.id] = rec
	return rec.id, nil
}

func (s *Scene) allocID() ID {
	id := s.nextID
	s.nextID++
	return id
}

func normalizeLocal(t spatial.Transform) spatial.Transform {
	if t == (spatial.Transform{}) {
		return spatial.Identity()
	}
	return t
}

// Get returns the record for id.
func (s *Scene) Get(id ID) (*Record, error) {
	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec, nil
}

// Contains reports whether id resolves to a live record.
func (s *Scene) Contains(id ID) bool {
	_, ok := s.records[id]
	return ok
}

// Count returns the number of live records.
func (s *Scene) Count() int { return len(s.records) }

// IDs returns all live IDs in ascending (creation) order.
func (s *Scene) IDs() []ID {
	out := make([]ID, 0, len(s.records))
	for id := range s.records {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Roots returns the IDs of all root-level objects in creation order.
func (s *Scene) Roots() []ID {
	var out []ID
	for id, rec := range s.records {
		if rec.parent == None {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// Children returns the container's children in stable insertion order.
// This order is the tie-break used when a layout algorithm places children
// sequentially along an axis. The returned slice is a copy.
func (s *Scene) Children(id ID) ([]ID, error) {
	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	if rec.kind != KindContainer {
		return nil, ErrNotContainer
	}
	return slices.Clone(s.children[id]), nil
}

// Parent returns the object's owning container, or None at root level.
func (s *Scene) Parent(id ID) (ID, error) {
	rec, ok := s.records[id]
	if !ok {
		return None, ErrNotFound
	}
	return rec.parent, nil
}

// Remove deletes an object. A container with live children fails with
// [ErrContainerNotEmpty] unless cascade is set, in which case the children
// are promoted to the removed container's own parent with their world
// positions preserved. No dangling parent references remain after removal;
// the freed ID is never reused.
func (s *Scene) Remove(id ID, cascade bool) error {
	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}

	kids := s.children[id]
	if len(kids) > 0 {
		if !cascade {
			return ErrContainerNotEmpty
		}
		for _, child := range slices.Clone(kids) {
			if err := s.SetParent(child, rec.parent); err != nil {
				return err
			}
		}
	}

	if rec.parent != None {
		s.detachChild(rec.parent, id)
	}
	delete(s.children, id)
	delete(s.records, id)
	return nil
}

func (s *Scene) detachChild(parent, child ID) {
	s.children[parent] = slices.DeleteFunc(s.children[parent], func(c ID) bool {
		return c == child
	})
}

// SetExtents updates an object's axis-aligned size. For hug-sized
// containers the stored extents are derived state and will be overwritten
// by the next layout recompute.
func (s *Scene) SetExtents(id ID, e spatial.Extents) error {
	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	rec.extents = e
	return nil
}

// SetSizing updates an object's per-axis allocation policy.
func (s *Scene) SetSizing(id ID, sizing Sizing) error {
	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	rec.sizing = sizing
	return nil
}

// SetAutoLayout installs or replaces a container's layout config.
//
// When auto-layout is enabled for the first time on a container that
// already has freely-positioned children, the layout anchor is captured as
// the size-weighted center of those children so that the switch does not
// visibly jump mixed-size content. The anchor is set once; it survives
// disable/re-enable and is cleared only by recreating the container.
func (s *Scene) SetAutoLayout(id ID, cfg LayoutConfig) error {
	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	if rec.kind != KindContainer {
		return ErrNotContainer
	}

	if cfg.Enabled && rec.anchor == nil && !rec.LayoutEnabled() && len(s.children[id]) > 0 {
		anchor, err := s.localWeightedCenter(id)
		if err != nil {
			return err
		}
		rec.anchor = &anchor
	}

	c := cfg.clone()
	rec.layout = &c
	return nil
}

// localWeightedCenter returns the size-weighted center of a container's
// children expressed in the container's local space.
func (s *Scene) localWeightedCenter(id ID) (mgl64.Vec3, error) {
	center, err := s.SizeWeightedCenter(s.children[id])
	if err != nil {
		return mgl64.Vec3{}, err
	}
	world, err := s.worldMatrix(id)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	if world.Det() == 0 {
		return mgl64.Vec3{}, ErrDegenerateTransform
	}
	local := mgl64.TransformCoordinate(center, world.Inv())
	return local, nil
}
