package spatial

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Extents is an object's axis-aligned size: width (x), height (y), depth (z).
type Extents struct {
	Width  float64
	Height float64
	Depth  float64
}

// Vec3 returns the extents as a size vector.
func (e Extents) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{e.Width, e.Height, e.Depth}
}

// Volume returns width*height*depth.
func (e Extents) Volume() float64 {
	return e.Width * e.Height * e.Depth
}

// ExtentsFromVec3 converts a size vector back to Extents.
func ExtentsFromVec3(v mgl64.Vec3) Extents {
	return Extents{Width: v.X(), Height: v.Y(), Depth: v.Z()}
}

// Box is an axis-aligned bounding box. The zero value is not a valid box -
// use EmptyBox so that the first Union sets both corners.
type Box struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// EmptyBox returns a box that unions as the identity element: any box
// unioned with it yields that box unchanged.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether the box contains no points.
func (b Box) IsEmpty() bool {
	return b.Min.X() > b.Max.X() || b.Min.Y() > b.Max.Y() || b.Min.Z() > b.Max.Z()
}

// Size returns the per-axis dimensions, or the zero vector for an empty box.
func (b Box) Size() mgl64.Vec3 {
	if b.IsEmpty() {
		return mgl64.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the box midpoint, or the zero vector for an empty box.
func (b Box) Center() mgl64.Vec3 {
	if b.IsEmpty() {
		return mgl64.Vec3{}
	}
	return b.Min.Add(b.Max).Mul(0.5)
}

// Union returns the smallest box containing both operands.
func (b Box) Union(other Box) Box {
	if b.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return b
	}
	return Box{
		Min: mgl64.Vec3{
			math.Min(b.Min.X(), other.Min.X()),
			math.Min(b.Min.Y(), other.Min.Y()),
			math.Min(b.Min.Z(), other.Min.Z()),
		},
		Max: mgl64.Vec3{
			math.Max(b.Max.X(), other.Max.X()),
			math.Max(b.Max.Y(), other.Max.Y()),
			math.Max(b.Max.Z(), other.Max.Z()),
		},
	}
}

// BoxAround returns the box spanning (center - size/2, center + size/2).
func BoxAround(center, size mgl64.Vec3) Box {
	half := size.Mul(0.5)
	return Box{Min: center.Sub(half), Max: center.Add(half)}
}
