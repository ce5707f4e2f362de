package scene

import (
	"errors"
	"fmt"
	"slices"
)

// Validate sweeps the whole scene for integrity violations: dangling or
// non-container parent references, asymmetric parent/child links,
// duplicated child entries, and cycles in the containment graph. All
// findings are joined into one error; nil means the scene is consistent.
//
// Validate never repairs anything. A finding here means an invariant was
// bypassed and the scene should be treated as corrupt.
func (s *Scene) Validate() error {
	var errs []error

	for _, id := range s.IDs() {
		rec := s.records[id]
		if rec.parent != None {
			parent, ok := s.records[rec.parent]
			switch {
			case !ok:
				errs = append(errs, fmt.Errorf("object %d: dangling parent %d: %w", id, rec.parent, ErrCorruptHierarchy))
			case parent.kind != KindContainer:
				errs = append(errs, fmt.Errorf("object %d: parent %d is a leaf: %w", id, rec.parent, ErrCorruptHierarchy))
			case !slices.Contains(s.children[rec.parent], id):
				errs = append(errs, fmt.Errorf("object %d: missing from parent %d child list: %w", id, rec.parent, ErrCorruptHierarchy))
			}
		}

		if _, err := s.Ancestors(id); errors.Is(err, ErrCorruptHierarchy) {
			errs = append(errs, fmt.Errorf("object %d: ancestor chain loops: %w", id, ErrCorruptHierarchy))
		}
	}

	for parent, kids := range s.children {
		if _, ok := s.records[parent]; !ok && len(kids) > 0 {
			errs = append(errs, fmt.Errorf("child list for removed container %d: %w", parent, ErrCorruptHierarchy))
			continue
		}
		seen := map[ID]bool{}
		for _, child := range kids {
			if seen[child] {
				errs = append(errs, fmt.Errorf("container %d: duplicate child %d: %w", parent, child, ErrCorruptHierarchy))
			}
			seen[child] = true
			rec, ok := s.records[child]
			if !ok {
				errs = append(errs, fmt.Errorf("container %d: dangling child %d: %w", parent, child, ErrCorruptHierarchy))
				continue
			}
			if rec.parent != parent {
				errs = append(errs, fmt.Errorf("container %d: child %d claims parent %d: %w", parent, child, rec.parent, ErrCorruptHierarchy))
			}
		}
	}

	return errors.Join(errs...)
}
