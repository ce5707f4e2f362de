// Package engine wires the scene registry, layout orchestrator, and change
// propagator into one orchestrating context for interactive editing.
//
// Every mutating operation runs the full sequence - validate, reparent with
// pose preservation, layout recompute, upward cascade - to completion
// before returning, so callers (UI layers, the CLI) always observe a
// consistent tree. An Engine owns its Scene exclusively; create one Engine
// per document and never share mutation across goroutines.
package engine

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/matterframe/matterframe/pkg/core/scene"
	"github.com/matterframe/matterframe/pkg/core/scene/layout"
	"github.com/matterframe/matterframe/pkg/core/scene/layout/stack"
	"github.com/matterframe/matterframe/pkg/core/spatial"
	"github.com/matterframe/matterframe/pkg/observability"
)

// Options configures a new Engine.
type Options struct {
	// Algorithm is the placement collaborator invoked on layout
	// recomputes. Nil selects the reference stack algorithm.
	Algorithm layout.Algorithm

	// Logger receives structured debug/info logs. Nil selects log.Default().
	Logger *log.Logger
}

// Engine is the single entry point for scene edits. It is dependency-
// injected state, not a singleton: multiple engines with independent
// scenes can coexist in one process.
type Engine struct {
	scene  *scene.Scene
	orch   *layout.Orchestrator
	prop   *layout.Propagator
	logger *log.Logger
}

// New creates an engine over an empty scene.
func New(opts Options) *Engine {
	return Wrap(scene.New(), opts)
}

// Wrap creates an engine over an existing scene, typically one restored
// from a snapshot. The engine takes exclusive ownership of the scene.
func Wrap(s *scene.Scene, opts Options) *Engine {
	algo := opts.Algorithm
	if algo == nil {
		algo = stack.Place
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	orch := layout.NewOrchestrator(s, algo)
	return &Engine{
		scene:  s,
		orch:   orch,
		prop:   layout.NewPropagator(s, orch),
		logger: logger,
	}
}

// Scene exposes the underlying scene for read-only consumers such as
// snapshot export and rendering. Mutations must go through the engine.
func (e *Engine) Scene() *scene.Scene { return e.scene }

// AddLeaf creates a leaf object at root level.
func (e *Engine) AddLeaf(spec scene.LeafSpec) scene.ID {
	id := e.scene.AddLeaf(spec)
	e.logger.Debug("created leaf", "object", id)
	return id
}

// AddContainer creates a container at root level.
func (e *Engine) AddContainer(spec scene.ContainerSpec) (scene.ID, error) {
	id, err := e.scene.AddContainer(spec)
	if err != nil {
		return scene.None, err
	}
	e.logger.Debug("created container", "object", id, "sizing", spec.SizingMode)
	return id, nil
}

// Remove deletes an object. Containers with children require cascade, which
// promotes the children to the removed container's parent with world
// positions preserved, then re-lays-out the affected ancestors.
func (e *Engine) Remove(ctx context.Context, id scene.ID, cascade bool) error {
	parent, err := e.scene.Parent(id)
	if err != nil {
		return err
	}
	if err := e.scene.Remove(id, cascade); err != nil {
		return err
	}
	e.logger.Debug("removed object", "object", id, "cascade", cascade)
	if parent != scene.None {
		return e.relayout(ctx, parent)
	}
	return nil
}

// SetParent moves an object under a new parent (or to root with
// scene.None), preserving its world pose, then recomputes layout for the
// new and old parents and cascades any container size changes upward.
func (e *Engine) SetParent(ctx context.Context, id, newParent scene.ID) error {
	oldParent, err := e.scene.Parent(id)
	if err != nil {
		return err
	}

	err = e.scene.SetParent(id, newParent)
	observability.Engine().OnReparent(ctx, uint64(id), uint64(oldParent), uint64(newParent), err)
	if err != nil {
		return err
	}
	e.logger.Debug("reparented object", "object", id, "from", oldParent, "to", newParent)

	if newParent != scene.None {
		if err := e.relayout(ctx, newParent); err != nil {
			return err
		}
	}
	if oldParent != scene.None && oldParent != newParent {
		if err := e.relayout(ctx, oldParent); err != nil {
			return err
		}
	}
	return nil
}

// Move changes an object's local position and propagates the change to its
// ancestor containers.
func (e *Engine) Move(ctx context.Context, id scene.ID, pos mgl64.Vec3) error {
	if err := e.scene.SetLocalPosition(id, pos); err != nil {
		return err
	}
	return e.NotifyChanged(ctx, id)
}

// SetTransform replaces an object's local transform and propagates the
// change to its ancestor containers.
func (e *Engine) SetTransform(ctx context.Context, id scene.ID, t spatial.Transform) error {
	if err := e.scene.SetLocal(id, t); err != nil {
		return err
	}
	return e.NotifyChanged(ctx, id)
}

// Resize changes an object's extents and propagates the change to its
// ancestor containers.
func (e *Engine) Resize(ctx context.Context, id scene.ID, ext spatial.Extents) error {
	if err := e.scene.SetExtents(id, ext); err != nil {
		return err
	}
	return e.NotifyChanged(ctx, id)
}

// SetAutoLayout installs a layout config on a container and immediately
// recomputes it, cascading any resulting size change.
func (e *Engine) SetAutoLayout(ctx context.Context, id scene.ID, cfg scene.LayoutConfig) error {
	if err := e.scene.SetAutoLayout(id, cfg); err != nil {
		return err
	}
	e.logger.Debug("configured auto-layout", "container", id, "enabled", cfg.Enabled)
	return e.relayout(ctx, id)
}

// NotifyChanged reports that an object's transform or geometry changed and
// runs the upward cascade. Rapid external triggers (dragging) should be
// coalesced by the caller; every call performs a full recompute.
func (e *Engine) NotifyChanged(ctx context.Context, id scene.ID) error {
	steps, err := e.prop.NotifyChanged(id)
	observability.Engine().OnCascade(ctx, uint64(id), steps, err)
	if err != nil {
		e.logger.Error("cascade failed", "object", id, "steps", steps, "err", err)
		return err
	}
	e.logger.Debug("propagated change", "object", id, "recomputes", steps)
	return nil
}

// Recompute re-runs layout for a single container without cascading.
func (e *Engine) Recompute(ctx context.Context, id scene.ID) (layout.Report, error) {
	children, _ := e.scene.Children(id)
	observability.Engine().OnLayoutStart(ctx, uint64(id), len(children))

	start := time.Now()
	report, err := e.orch.Recompute(id)
	observability.Engine().OnLayoutComplete(ctx, uint64(id), report.Outcome.String(), report.Resized, time.Since(start), err)
	return report, err
}

// relayout recomputes one container and, if its size changed, cascades
// from it upward.
func (e *Engine) relayout(ctx context.Context, id scene.ID) error {
	report, err := e.Recompute(ctx, id)
	if err != nil {
		return err
	}
	if report.Outcome == layout.OutcomeApplied && report.Resized {
		return e.NotifyChanged(ctx, id)
	}
	return nil
}

// WorldTransform returns an object's pose relative to the scene root.
// Consumers must call this between operations, never concurrently with one.
func (e *Engine) WorldTransform(id scene.ID) (spatial.Transform, error) {
	return e.scene.WorldTransform(id)
}

// Children returns a container's children in stable insertion order.
func (e *Engine) Children(id scene.ID) ([]scene.ID, error) {
	return e.scene.Children(id)
}

// NestingDepth returns the number of container ancestors above an object.
func (e *Engine) NestingDepth(id scene.ID) (int, error) {
	return e.scene.NestingDepth(id)
}
