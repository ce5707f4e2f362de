// Package stack provides the reference placement algorithm for container
// auto-layout: children are stacked sequentially along the major direction
// axis, separated by the configured gap and centered about the container
// origin.
//
// Multi-axis directions wrap: when the container has a fixed span on the
// major axis, children are greedily packed into lines against that span and
// the lines are stacked along the second direction axis, row-major in child
// order. Without a fixed major span the sequence never wraps, so hug-sized
// containers always produce a single line.
//
// Fill sizing is allocation-only. A Fill child receives a share of the
// leftover fixed-axis space in its line, widening the slot it is centered
// in; its geometry is never resized.
package stack

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/matterframe/matterframe/pkg/core/scene"
	"github.com/matterframe/matterframe/pkg/core/scene/layout"
)

// Place implements [layout.Algorithm].
func Place(children []layout.Child, cfg scene.LayoutConfig, containerSize mgl64.Vec3, anchor *mgl64.Vec3) layout.Result {
	n := len(children)
	res := layout.Result{
		Positions: make([]mgl64.Vec3, n),
		Sizes:     make([]mgl64.Vec3, n),
	}
	if n == 0 {
		return res
	}

	axes := cfg.Direction
	if len(axes) == 0 {
		axes = []scene.Axis{scene.AxisX}
	}
	major := axes[0]
	hasCross := len(axes) > 1
	var cross scene.Axis
	if hasCross {
		cross = axes[1]
	}

	for i, c := range children {
		res.Sizes[i] = c.Extents.Vec3()
	}

	low, high := paddingSpan(cfg.Padding, major)
	innerMain := containerSize[major] - low - high

	lines := splitLines(res.Sizes, major, cfg.Gap, innerMain, hasCross)

	alloc := make([]float64, n)
	for i := range children {
		alloc[i] = res.Sizes[i][major]
	}
	if innerMain > 0 {
		for _, line := range lines {
			distributeFill(line, children, alloc, major, cfg.Gap, innerMain)
		}
		for i := range children {
			res.Sizes[i][major] = alloc[i]
		}
	}

	// Cross extent of each line is its tallest child.
	lineCross := make([]float64, len(lines))
	totalCross := cfg.Gap * float64(len(lines)-1)
	for l, line := range lines {
		for _, i := range line {
			if c := res.Sizes[i][cross]; hasCross && c > lineCross[l] {
				lineCross[l] = c
			}
		}
		totalCross += lineCross[l]
	}

	offset := paddingOffset(cfg.Padding)
	if anchor != nil {
		offset = offset.Add(*anchor)
	}

	crossCursor := -totalCross / 2
	for l, line := range lines {
		lineTotal := cfg.Gap * float64(len(line)-1)
		for _, i := range line {
			lineTotal += alloc[i]
		}

		mainCursor := -lineTotal / 2
		for _, i := range line {
			var pos mgl64.Vec3
			pos[major] = mainCursor + alloc[i]/2
			if hasCross {
				pos[cross] = crossCursor + lineCross[l]/2
			}
			res.Positions[i] = pos.Add(offset)
			mainCursor += alloc[i] + cfg.Gap
		}
		crossCursor += lineCross[l] + cfg.Gap
	}

	return res
}

// splitLines packs children into lines against the inner main-axis span.
// Wrapping requires both a cross axis and a positive span; otherwise all
// children share one line. A child wider than the span gets its own line
// rather than being dropped.
func splitLines(sizes []mgl64.Vec3, major scene.Axis, gap, innerMain float64, wrap bool) [][]int {
	if !wrap || innerMain <= 0 {
		line := make([]int, len(sizes))
		for i := range sizes {
			line[i] = i
		}
		return [][]int{line}
	}

	var lines [][]int
	var line []int
	used := 0.0
	for i := range sizes {
		w := sizes[i][major]
		need := w
		if len(line) > 0 {
			need += gap
		}
		if len(line) > 0 && used+need > innerMain {
			lines = append(lines, line)
			line = nil
			used = 0
			need = w
		}
		line = append(line, i)
		used += need
	}
	return append(lines, line)
}

// distributeFill grows the allocations of Fill-sized children in one line
// to consume leftover fixed-axis space. Geometry is untouched; only the
// slot each child is centered in widens.
func distributeFill(line []int, children []layout.Child, alloc []float64, major scene.Axis, gap, innerMain float64) {
	total := gap * float64(len(line)-1)
	var fill []int
	for _, i := range line {
		total += alloc[i]
		if axisSizing(children[i].Sizing, major) == scene.SizingFill {
			fill = append(fill, i)
		}
	}

	leftover := innerMain - total
	if leftover <= 0 || len(fill) == 0 {
		return
	}
	share := leftover / float64(len(fill))
	for _, i := range fill {
		alloc[i] += share
	}
}

func axisSizing(s scene.Sizing, axis scene.Axis) scene.SizingMode {
	switch axis {
	case scene.AxisY:
		return s.Y
	case scene.AxisZ:
		return s.Z
	default:
		return s.X
	}
}

// paddingSpan returns the low/high face padding for an axis:
// left/right for x, bottom/top for y, back/front for z.
func paddingSpan(p scene.Padding, axis scene.Axis) (low, high float64) {
	switch axis {
	case scene.AxisY:
		return p.Bottom, p.Top
	case scene.AxisZ:
		return p.Back, p.Front
	default:
		return p.Left, p.Right
	}
}

// paddingOffset shifts the content center away from the more padded faces.
func paddingOffset(p scene.Padding) mgl64.Vec3 {
	return mgl64.Vec3{
		(p.Left - p.Right) / 2,
		(p.Bottom - p.Top) / 2,
		(p.Back - p.Front) / 2,
	}
}
