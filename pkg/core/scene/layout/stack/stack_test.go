package stack

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matterframe/matterframe/pkg/core/scene"
	"github.com/matterframe/matterframe/pkg/core/scene/layout"
	"github.com/matterframe/matterframe/pkg/core/spatial"
)

func child(w, h, d float64) layout.Child {
	return layout.Child{Extents: spatial.Extents{Width: w, Height: h, Depth: d}}
}

func fillChild(w, h, d float64) layout.Child {
	c := child(w, h, d)
	c.Sizing.X = scene.SizingFill
	return c
}

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if !mgl64.FloatEqualThreshold(got, want, spatial.Tolerance) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestPlaceEmpty(t *testing.T) {
	res := Place(nil, scene.LayoutConfig{}, mgl64.Vec3{}, nil)
	if len(res.Positions) != 0 || len(res.Sizes) != 0 {
		t.Errorf("empty input should yield empty result, got %+v", res)
	}
}

func TestPlaceRowCenteredWithGap(t *testing.T) {
	children := []layout.Child{child(1, 1, 1), child(2, 1, 1)}
	cfg := scene.LayoutConfig{Direction: []scene.Axis{scene.AxisX}, Gap: 0.5}

	res := Place(children, cfg, mgl64.Vec3{}, nil)

	approx(t, "first x", res.Positions[0].X(), -1.25)
	approx(t, "second x", res.Positions[1].X(), 0.75)
	approx(t, "first y", res.Positions[0].Y(), 0)

	// Total span is 1 + 0.5 + 2 = 3.5, centered about the origin.
	left := res.Positions[0].X() - res.Sizes[0].X()/2
	right := res.Positions[1].X() + res.Sizes[1].X()/2
	approx(t, "span", right-left, 3.5)
	approx(t, "center", left+right, 0)
}

func TestPlaceVertical(t *testing.T) {
	children := []layout.Child{child(1, 2, 1), child(1, 2, 1)}
	cfg := scene.LayoutConfig{Direction: []scene.Axis{scene.AxisY}, Gap: 1}

	res := Place(children, cfg, mgl64.Vec3{}, nil)

	approx(t, "first y", res.Positions[0].Y(), -1.5)
	approx(t, "second y", res.Positions[1].Y(), 1.5)
	approx(t, "first x", res.Positions[0].X(), 0)
}

func TestPlaceAnchorOffset(t *testing.T) {
	children := []layout.Child{child(2, 1, 1)}
	cfg := scene.LayoutConfig{Direction: []scene.Axis{scene.AxisX}}
	anchor := mgl64.Vec3{3, -1, 0}

	res := Place(children, cfg, mgl64.Vec3{}, &anchor)

	if !res.Positions[0].ApproxEqualThreshold(anchor, spatial.Tolerance) {
		t.Errorf("single child should sit on the anchor: got %v, want %v", res.Positions[0], anchor)
	}
}

func TestPlacePaddingShiftsContent(t *testing.T) {
	children := []layout.Child{child(2, 1, 1)}
	cfg := scene.LayoutConfig{
		Direction: []scene.Axis{scene.AxisX},
		Padding:   scene.Padding{Left: 1},
	}

	res := Place(children, cfg, mgl64.Vec3{}, nil)
	approx(t, "padded x", res.Positions[0].X(), 0.5)
}

func TestPlaceFillWidensAllocation(t *testing.T) {
	children := []layout.Child{child(1, 1, 1), fillChild(1, 1, 1)}
	cfg := scene.LayoutConfig{Direction: []scene.Axis{scene.AxisX}}
	containerSize := mgl64.Vec3{6, 1, 1}

	res := Place(children, cfg, containerSize, nil)

	// The fill child absorbs the leftover 4 units: its slot is 5 wide.
	approx(t, "fill size", res.Sizes[1].X(), 5)
	// Fixed sibling keeps its geometry.
	approx(t, "fixed size", res.Sizes[0].X(), 1)
	// Slots: [1][5] centered in 6 -> centers at -2.5 and 0.5.
	approx(t, "fixed x", res.Positions[0].X(), -2.5)
	approx(t, "fill x", res.Positions[1].X(), 0.5)
}

func TestPlaceFillWithoutFixedSpan(t *testing.T) {
	children := []layout.Child{fillChild(1, 1, 1), child(1, 1, 1)}
	cfg := scene.LayoutConfig{Direction: []scene.Axis{scene.AxisX}}

	// Hug container: zero containerSize, nothing to distribute.
	res := Place(children, cfg, mgl64.Vec3{}, nil)
	approx(t, "fill size", res.Sizes[0].X(), 1)
}

func TestPlaceWrapsAgainstFixedSpan(t *testing.T) {
	children := []layout.Child{child(2, 1, 1), child(2, 1, 1), child(2, 1, 1)}
	cfg := scene.LayoutConfig{Direction: []scene.Axis{scene.AxisX, scene.AxisY}}
	containerSize := mgl64.Vec3{5, 0, 0}

	res := Place(children, cfg, containerSize, nil)

	// Two fit per line of span 5; the third wraps to a second line.
	approx(t, "first y", res.Positions[0].Y(), -0.5)
	approx(t, "second y", res.Positions[1].Y(), -0.5)
	approx(t, "third y", res.Positions[2].Y(), 0.5)
	approx(t, "third x", res.Positions[2].X(), 0)
}

func TestPlaceNoWrapWithoutCrossAxis(t *testing.T) {
	children := []layout.Child{child(2, 1, 1), child(2, 1, 1), child(2, 1, 1)}
	cfg := scene.LayoutConfig{Direction: []scene.Axis{scene.AxisX}}
	containerSize := mgl64.Vec3{5, 0, 0}

	res := Place(children, cfg, containerSize, nil)

	// Single-axis layouts never wrap, even past the container span.
	for i := range children {
		approx(t, "y", res.Positions[i].Y(), 0)
	}
	approx(t, "last x", res.Positions[2].X(), 2)
}

func TestPlaceOversizeChildGetsOwnLine(t *testing.T) {
	children := []layout.Child{child(9, 1, 1), child(1, 1, 1)}
	cfg := scene.LayoutConfig{Direction: []scene.Axis{scene.AxisX, scene.AxisY}}
	containerSize := mgl64.Vec3{4, 0, 0}

	res := Place(children, cfg, containerSize, nil)

	if res.Positions[0].Y() == res.Positions[1].Y() {
		t.Error("oversize child should not share a line")
	}
}
