// Package spatial provides the 3D math primitives used by the scene core:
// local/world transforms, axis-aligned extents and boxes, and the weighted
// centroid used when a freeform container is converted to auto-layout.
//
// Transforms are position/rotation/scale triples over float64. Composition
// and inversion go through 4x4 matrices; decomposition back to a Transform
// assumes the matrix is shear-free, which holds for any matrix produced by
// composing Transforms.
package spatial

import "github.com/go-gl/mathgl/mgl64"

// Tolerance is the default floating-point tolerance for pose comparisons.
// Reparenting guarantees world-pose stability within this bound.
const Tolerance = 1e-6

// Transform is a position/rotation/scale triple relative to some parent
// space. The zero value is not a valid transform (zero scale collapses
// geometry) - use Identity.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// Identity returns the identity transform: zero position, identity
// rotation, unit scale.
func Identity() Transform {
	return Transform{
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// At returns an identity-oriented transform at the given position.
func At(x, y, z float64) Transform {
	t := Identity()
	t.Position = mgl64.Vec3{x, y, z}
	return t
}

// Mat4 returns the transform as a 4x4 matrix (translate * rotate * scale).
func (t Transform) Mat4() mgl64.Mat4 {
	trans := mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rot := t.Rotation.Normalize().Mat4()
	scale := mgl64.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return trans.Mul4(rot).Mul4(scale)
}

// FromMat4 decomposes a shear-free matrix into a Transform.
// Scale is recovered from the basis column lengths, rotation from the
// scale-normalized upper 3x3. A zero-length column yields zero scale on
// that axis and the rotation falls back to identity for that basis vector.
func FromMat4(m mgl64.Mat4) Transform {
	pos := mgl64.Vec3{m.At(0, 3), m.At(1, 3), m.At(2, 3)}

	cols := [3]mgl64.Vec3{
		{m.At(0, 0), m.At(1, 0), m.At(2, 0)},
		{m.At(0, 1), m.At(1, 1), m.At(2, 1)},
		{m.At(0, 2), m.At(1, 2), m.At(2, 2)},
	}

	var scale mgl64.Vec3
	var basis [3]mgl64.Vec3
	identity := [3]mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for i, c := range cols {
		l := c.Len()
		scale[i] = l
		if l > 0 {
			basis[i] = c.Mul(1 / l)
		} else {
			basis[i] = identity[i]
		}
	}

	rot := mgl64.Mat4{
		basis[0].X(), basis[0].Y(), basis[0].Z(), 0,
		basis[1].X(), basis[1].Y(), basis[1].Z(), 0,
		basis[2].X(), basis[2].Y(), basis[2].Z(), 0,
		0, 0, 0, 1,
	}

	return Transform{
		Position: pos,
		Rotation: mgl64.Mat4ToQuat(rot).Normalize(),
		Scale:    scale,
	}
}

// Compose returns the transform equivalent to applying child inside parent:
// parent ∘ child.
func Compose(parent, child Transform) Transform {
	return FromMat4(parent.Mat4().Mul4(child.Mat4()))
}

// ApproxEqual reports whether two transforms describe the same pose within
// tol. Rotations are compared up to sign, since q and -q encode the same
// orientation.
func ApproxEqual(a, b Transform, tol float64) bool {
	if !a.Position.ApproxEqualThreshold(b.Position, tol) {
		return false
	}
	if !a.Scale.ApproxEqualThreshold(b.Scale, tol) {
		return false
	}
	qa, qb := a.Rotation.Normalize(), b.Rotation.Normalize()
	if quatApproxEqual(qa, qb, tol) {
		return true
	}
	neg := mgl64.Quat{W: -qb.W, V: qb.V.Mul(-1)}
	return quatApproxEqual(qa, neg, tol)
}

func quatApproxEqual(a, b mgl64.Quat, tol float64) bool {
	return mgl64.FloatEqualThreshold(a.W, b.W, tol) &&
		a.V.ApproxEqualThreshold(b.V, tol)
}
