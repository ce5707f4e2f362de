// Package layout orchestrates auto-layout over scene containers: it invokes
// an injected placement algorithm, applies its output to the container's
// children, derives hug-mode container bounds from exactly that output, and
// cascades size changes up the ancestor chain.
//
// The placement algorithm itself is an external collaborator. The
// orchestrator never reorders, drops, or pads algorithm output; a length
// mismatch is a contract violation that leaves the container untouched.
package layout

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/matterframe/matterframe/pkg/core/scene"
	"github.com/matterframe/matterframe/pkg/core/spatial"
)

// Child is the orchestrator's view of one container child handed to the
// algorithm: its identity, physical size, and per-axis allocation policy.
type Child struct {
	ID      scene.ID
	Extents spatial.Extents
	Sizing  scene.Sizing
}

// Result is an algorithm's placement output. Positions are container-local
// child centers; Sizes are the per-child allocation boxes used for bounds
// accumulation. Both must be index-aligned with the input children.
type Result struct {
	Positions []mgl64.Vec3
	Sizes     []mgl64.Vec3
}

// Algorithm turns a container's ordered children into placements. It must
// be pure: no side effects, output length equal to input length, entry i
// corresponding to child i. containerSize is the authoritative size for
// fixed-sized containers and the zero vector under hug sizing, where the
// size is derived from the result afterwards. A non-nil anchor is an offset
// the algorithm adds to every position so that content stays centered on
// the captured anchor point.
type Algorithm func(children []Child, cfg scene.LayoutConfig, containerSize mgl64.Vec3, anchor *mgl64.Vec3) Result
