package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matterframe/matterframe/pkg/core/spatial"
)

// RestoreSpec describes one record being loaded from a snapshot. Unlike the
// Add/SetParent path, restore keeps the stored local transforms untouched:
// they are already expressed relative to the stored parent.
type RestoreSpec struct {
	ID         ID
	Kind       Kind
	Parent     ID
	Local      spatial.Transform
	Extents    spatial.Extents
	Sizing     Sizing
	SizingMode SizingMode
	Layout     *LayoutConfig
	Anchor     *mgl64.Vec3

	// Children fixes the insertion order of a container's children. Layout
	// output depends on this order, so it round-trips explicitly rather
	// than being inferred from record IDs.
	Children []ID
}

// Load builds a scene from restore specs and validates the result as a
// whole: duplicate IDs, dangling or non-container parents, parent/child
// asymmetry and cycles all fail the load. On failure no scene is returned;
// a partially-restored scene is never observable.
func Load(specs []RestoreSpec) (*Scene, error) {
	s := New()

	for _, spec := range specs {
		if spec.ID == None {
			return nil, fmt.Errorf("restore: zero object ID: %w", ErrNotFound)
		}
		if _, exists := s.records[spec.ID]; exists {
			return nil, fmt.Errorf("restore: duplicate object ID %d: %w", spec.ID, ErrCorruptHierarchy)
		}

		rec := &Record{
			id:      spec.ID,
			kind:    spec.Kind,
			parent:  spec.Parent,
			local:   normalizeLocal(spec.Local),
			extents: spec.Extents,
			sizing:  spec.Sizing,
		}
		if spec.Kind == KindContainer {
			if spec.SizingMode != SizingFixed && spec.SizingMode != SizingHug {
				return nil, fmt.Errorf("restore: container %d: %w", spec.ID, ErrInvalidSizing)
			}
			rec.containerSizing = spec.SizingMode
			if spec.Layout != nil {
				cfg := spec.Layout.clone()
				rec.layout = &cfg
			}
			if spec.Anchor != nil {
				a := *spec.Anchor
				rec.anchor = &a
			}
		}

		s.records[spec.ID] = rec
		if spec.ID >= s.nextID {
			s.nextID = spec.ID + 1
		}
	}

	for _, spec := range specs {
		if spec.Kind != KindContainer {
			continue
		}
		for _, child := range spec.Children {
			s.children[spec.ID] = append(s.children[spec.ID], child)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	return s, nil
}
