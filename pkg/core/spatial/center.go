package spatial

import "github.com/go-gl/mathgl/mgl64"

// WeightedCenter returns the centroid of positions weighted by the parallel
// weights slice. When the total weight is zero (all objects degenerate or
// zero-volume) it falls back to the unweighted mean, and for an empty input
// it returns the zero vector.
//
// The scene layer uses this with world positions and object volumes to place
// the layout anchor when auto-layout is enabled on a container that already
// has freely-positioned children: weighting by volume keeps the visual mass
// of mixed-size children stable across the transition.
func WeightedCenter(positions []mgl64.Vec3, weights []float64) mgl64.Vec3 {
	if len(positions) == 0 {
		return mgl64.Vec3{}
	}

	var total float64
	for _, w := range weights {
		total += w
	}

	var sum mgl64.Vec3
	if total > 0 {
		for i, p := range positions {
			sum = sum.Add(p.Mul(weights[i]))
		}
		return sum.Mul(1 / total)
	}

	for _, p := range positions {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(positions)))
}
