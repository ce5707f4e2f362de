package scene

import "slices"

// SetParent moves an object under a new parent container, or to root level
// when newParent is None. The object's world-space pose is preserved across
// the move: its local transform is rewritten against the new parent before
// the link flips, so a failure leaves the graph untouched.
//
// Failure modes:
//   - [ErrNotFound]: id or newParent does not exist
//   - [ErrInvalidParent]: newParent is a leaf object
//   - [ErrCircularReference]: newParent is id itself or one of id's
//     descendants
//   - [ErrCorruptHierarchy]: the ancestor walk revisited a node, meaning a
//     cycle already exists in stored state
//   - [ErrDegenerateTransform]: the new parent's world transform cannot be
//     inverted
func (s *Scene) SetParent(id, newParent ID) error {
	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	if newParent != None {
		parent, ok := s.records[newParent]
		if !ok {
			return ErrNotFound
		}
		if parent.kind != KindContainer {
			return ErrInvalidParent
		}
	}
	if newParent == id {
		return ErrCircularReference
	}

	// Walk the new parent's ancestor chain. Meeting id means id would
	// become its own ancestor; meeting any node twice means the stored
	// graph already loops, which is corruption, not a user error.
	visited := map[ID]bool{}
	for cur := newParent; cur != None; {
		if cur == id {
			return ErrCircularReference
		}
		if visited[cur] {
			return ErrCorruptHierarchy
		}
		visited[cur] = true
		next, ok := s.records[cur]
		if !ok {
			return ErrCorruptHierarchy
		}
		cur = next.parent
	}

	if rec.parent == newParent {
		return nil
	}

	if err := s.reparentTransform(id, newParent); err != nil {
		return err
	}

	if rec.parent != None {
		s.detachChild(rec.parent, id)
	}
	rec.parent = newParent
	if newParent != None {
		s.children[newParent] = append(s.children[newParent], id)
	}

	// The subtree's cached world matrices were composed against the old
	// parent chain.
	s.invalidateWorld(id)
	return nil
}

// Ancestors returns the chain of containers from the object's parent up to
// the root, nearest first. The walk is cycle-guarded.
func (s *Scene) Ancestors(id ID) ([]ID, error) {
	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}

	var chain []ID
	visited := map[ID]bool{id: true}
	for cur := rec.parent; cur != None; {
		if visited[cur] {
			return nil, ErrCorruptHierarchy
		}
		visited[cur] = true
		chain = append(chain, cur)
		next, ok := s.records[cur]
		if !ok {
			return nil, ErrCorruptHierarchy
		}
		cur = next.parent
	}
	return chain, nil
}

// NestingDepth returns the number of container ancestors above the object.
// Root-level objects have depth 0.
func (s *Scene) NestingDepth(id ID) (int, error) {
	chain, err := s.Ancestors(id)
	if err != nil {
		return 0, err
	}
	return len(chain), nil
}

// IsAncestor reports whether ancestor appears in the object's parent chain.
func (s *Scene) IsAncestor(ancestor, id ID) (bool, error) {
	chain, err := s.Ancestors(id)
	if err != nil {
		return false, err
	}
	return slices.Contains(chain, ancestor), nil
}

// DescendantContainers returns every container in the subtree rooted at id,
// depth-first in child order, excluding id itself. The traversal carries a
// visited set; revisiting a node reports [ErrCorruptHierarchy] instead of
// looping.
func (s *Scene) DescendantContainers(id ID) ([]ID, error) {
	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	if rec.kind != KindContainer {
		return nil, ErrNotContainer
	}

	var out []ID
	visited := map[ID]bool{id: true}
	stack := slices.Clone(s.children[id])
	slices.Reverse(stack)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur] {
			return nil, ErrCorruptHierarchy
		}
		visited[cur] = true
		cr, ok := s.records[cur]
		if !ok {
			return nil, ErrCorruptHierarchy
		}
		if cr.kind != KindContainer {
			continue
		}
		out = append(out, cur)
		kids := slices.Clone(s.children[cur])
		slices.Reverse(kids)
		stack = append(stack, kids...)
	}
	return out, nil
}
