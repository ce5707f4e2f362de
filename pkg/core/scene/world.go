package scene

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matterframe/matterframe/pkg/core/spatial"
)

// SetLocal replaces an object's local transform and invalidates the cached
// world matrices of its subtree.
func (s *Scene) SetLocal(id ID, t spatial.Transform) error {
	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	rec.local = t
	s.invalidateWorld(id)
	return nil
}

// SetLocalPosition moves an object within its parent space, keeping
// rotation and scale.
func (s *Scene) SetLocalPosition(id ID, pos mgl64.Vec3) error {
	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	rec.local.Position = pos
	s.invalidateWorld(id)
	return nil
}

// WorldTransform returns the object's pose relative to the scene root,
// composed from local transforms up the ancestor chain. Stale cached
// matrices are refreshed before the composition is read.
func (s *Scene) WorldTransform(id ID) (spatial.Transform, error) {
	m, err := s.worldMatrix(id)
	if err != nil {
		return spatial.Transform{}, err
	}
	return spatial.FromMat4(m), nil
}

// WorldPosition returns the object's world-space position.
func (s *Scene) WorldPosition(id ID) (mgl64.Vec3, error) {
	m, err := s.worldMatrix(id)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return mgl64.Vec3{m.At(0, 3), m.At(1, 3), m.At(2, 3)}, nil
}

// SizeWeightedCenter returns the centroid of the objects' world positions
// weighted by their volumes, falling back to the unweighted mean when the
// total volume is zero. Used to place the layout anchor when a freeform
// container is converted to auto-layout.
func (s *Scene) SizeWeightedCenter(ids []ID) (mgl64.Vec3, error) {
	positions := make([]mgl64.Vec3, 0, len(ids))
	weights := make([]float64, 0, len(ids))
	for _, id := range ids {
		rec, ok := s.records[id]
		if !ok {
			return mgl64.Vec3{}, ErrNotFound
		}
		pos, err := s.WorldPosition(id)
		if err != nil {
			return mgl64.Vec3{}, err
		}
		positions = append(positions, pos)
		weights = append(weights, rec.extents.Volume())
	}
	return spatial.WeightedCenter(positions, weights), nil
}

// worldMatrix returns the object's composed world matrix, refreshing the
// ancestor chain if any cached entry is stale.
func (s *Scene) worldMatrix(id ID) (mgl64.Mat4, error) {
	rec, ok := s.records[id]
	if !ok {
		return mgl64.Mat4{}, ErrNotFound
	}
	if !rec.worldValid {
		if err := s.refreshWorld(id); err != nil {
			return mgl64.Mat4{}, err
		}
	}
	return rec.world, nil
}

// refreshWorld recomputes the world matrices of the object and its entire
// ancestor chain from local transforms, ignoring any cached values. This is
// the forced refresh the reparent algorithm depends on: no reparent step
// may read a composed transform cached before the most recent local edit.
func (s *Scene) refreshWorld(id ID) error {
	chain, err := s.Ancestors(id)
	if err != nil {
		return err
	}
	// Root first, object last.
	order := slices.Clone(chain)
	slices.Reverse(order)
	order = append(order, id)

	world := mgl64.Ident4()
	for _, cur := range order {
		rec := s.records[cur]
		world = world.Mul4(rec.local.Mat4())
		rec.world = world
		rec.worldValid = true
	}
	return nil
}

// invalidateWorld marks the cached world matrices of id's subtree stale.
// The walk is cycle-guarded; a corrupt graph here is ignored rather than
// reported since invalidation is conservative by nature.
func (s *Scene) invalidateWorld(id ID) {
	visited := map[ID]bool{}
	stack := []ID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		if rec, ok := s.records[cur]; ok {
			rec.worldValid = false
		}
		stack = append(stack, s.children[cur]...)
	}
}

// reparentTransform rewrites the object's local transform so its world pose
// is unchanged under the prospective parent. The parent link itself is not
// touched here; callers flip it only after this succeeds.
func (s *Scene) reparentTransform(id, newParent ID) error {
	if err := s.refreshWorld(id); err != nil {
		return err
	}
	world := s.records[id].world

	local := spatial.FromMat4(world)
	if newParent != None {
		if err := s.refreshWorld(newParent); err != nil {
			return err
		}
		parentWorld := s.records[newParent].world
		if parentWorld.Det() == 0 {
			return ErrDegenerateTransform
		}
		local = spatial.FromMat4(parentWorld.Inv().Mul4(world))
	}

	s.records[id].local = local
	return nil
}
