// Package snapshot defines the canonical JSON serialization of a scene.
//
// The format is human-readable and designed for round-trip fidelity:
// export → edit → re-import preserves object IDs, child insertion order,
// layout configuration, and the captured layout anchor. Objects are sorted
// by ID for deterministic output.
package snapshot

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matterframe/matterframe/pkg/core/scene"
	"github.com/matterframe/matterframe/pkg/core/spatial"
)

// Kind names used on the wire.
const (
	KindLeaf      = "leaf"
	KindContainer = "container"
)

// Sizing mode names used on the wire.
const (
	SizingFixed = "fixed"
	SizingFill  = "fill"
	SizingHug   = "hug"
)

// Snapshot is the serialization format for a whole scene.
type Snapshot struct {
	Objects []Object `json:"objects"`
}

// Object is one serialized scene record. Position/rotation/scale are the
// local transform relative to Parent; rotation is a quaternion in
// (w, x, y, z) order.
type Object struct {
	ID       uint64     `json:"id"`
	Kind     string     `json:"kind"`
	Parent   uint64     `json:"parent,omitempty"`
	Position [3]float64 `json:"position"`
	Rotation [4]float64 `json:"rotation"`
	Scale    [3]float64 `json:"scale"`
	Extents  [3]float64 `json:"extents"`
	Sizing   [3]string  `json:"sizing"`
	Children []uint64   `json:"children,omitempty"`

	// Container-only fields.
	SizingMode string      `json:"sizing_mode,omitempty"`
	Layout     *Layout     `json:"layout,omitempty"`
	Anchor     *[3]float64 `json:"anchor,omitempty"`
}

// Layout is a serialized container layout config.
type Layout struct {
	Direction []string `json:"direction"`
	Gap       float64  `json:"gap,omitempty"`
	Padding   Padding  `json:"padding,omitzero"`
	Enabled   bool     `json:"enabled"`
}

// Padding mirrors scene.Padding on the wire.
type Padding struct {
	Top    float64 `json:"top,omitempty"`
	Bottom float64 `json:"bottom,omitempty"`
	Left   float64 `json:"left,omitempty"`
	Right  float64 `json:"right,omitempty"`
	Front  float64 `json:"front,omitempty"`
	Back   float64 `json:"back,omitempty"`
}

// FromScene converts a scene to its serialization format.
// Objects are sorted by ID for deterministic output.
func FromScene(s *scene.Scene) Snapshot {
	ids := s.IDs()
	out := Snapshot{Objects: make([]Object, 0, len(ids))}
	for _, id := range ids {
		rec, err := s.Get(id)
		if err != nil {
			continue
		}
		obj := Object{
			ID:       uint64(id),
			Kind:     rec.Kind().String(),
			Parent:   uint64(rec.Parent()),
			Position: vec3Array(rec.Local().Position),
			Rotation: quatArray(rec.Local().Rotation),
			Scale:    vec3Array(rec.Local().Scale),
			Extents:  vec3Array(rec.Extents().Vec3()),
			Sizing: [3]string{
				rec.Sizing().X.String(),
				rec.Sizing().Y.String(),
				rec.Sizing().Z.String(),
			},
		}
		if rec.IsContainer() {
			obj.SizingMode = rec.ContainerSizing().String()
			if kids, err := s.Children(id); err == nil && len(kids) > 0 {
				obj.Children = make([]uint64, len(kids))
				for i, kid := range kids {
					obj.Children[i] = uint64(kid)
				}
			}
			if cfg := rec.Layout(); cfg != nil {
				obj.Layout = layoutToWire(cfg)
			}
			if a := rec.Anchor(); a != nil {
				arr := vec3Array(*a)
				obj.Anchor = &arr
			}
		}
		out.Objects = append(out.Objects, obj)
	}
	return out
}

// ToScene converts a snapshot to a live scene. The whole structure is
// validated - unknown parents, leaf parents, duplicate IDs, and cycles all
// fail the conversion; a partially-loaded scene is never returned.
func ToScene(snap Snapshot) (*scene.Scene, error) {
	specs := make([]scene.RestoreSpec, 0, len(snap.Objects))
	for _, obj := range snap.Objects {
		spec, err := specFromWire(obj)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", obj.ID, err)
		}
		specs = append(specs, spec)
	}
	return scene.Load(specs)
}

func specFromWire(obj Object) (scene.RestoreSpec, error) {
	kind, err := parseKind(obj.Kind)
	if err != nil {
		return scene.RestoreSpec{}, err
	}

	var sizing scene.Sizing
	for i, name := range obj.Sizing {
		mode, err := parseSizing(name)
		if err != nil {
			return scene.RestoreSpec{}, err
		}
		switch i {
		case 0:
			sizing.X = mode
		case 1:
			sizing.Y = mode
		case 2:
			sizing.Z = mode
		}
	}

	spec := scene.RestoreSpec{
		ID:     scene.ID(obj.ID),
		Kind:   kind,
		Parent: scene.ID(obj.Parent),
		Local: spatial.Transform{
			Position: vec3FromArray(obj.Position),
			Rotation: quatFromArray(obj.Rotation),
			Scale:    vec3FromArray(obj.Scale),
		},
		Extents: spatial.ExtentsFromVec3(vec3FromArray(obj.Extents)),
		Sizing:  sizing,
	}

	if kind == scene.KindContainer {
		mode, err := parseSizing(obj.SizingMode)
		if err != nil {
			return scene.RestoreSpec{}, err
		}
		spec.SizingMode = mode
		spec.Children = make([]scene.ID, len(obj.Children))
		for i, kid := range obj.Children {
			spec.Children[i] = scene.ID(kid)
		}
		if obj.Layout != nil {
			cfg, err := layoutFromWire(obj.Layout)
			if err != nil {
				return scene.RestoreSpec{}, err
			}
			spec.Layout = &cfg
		}
		if obj.Anchor != nil {
			a := vec3FromArray(*obj.Anchor)
			spec.Anchor = &a
		}
	}

	return spec, nil
}

func layoutToWire(cfg *scene.LayoutConfig) *Layout {
	dirs := make([]string, len(cfg.Direction))
	for i, axis := range cfg.Direction {
		dirs[i] = axis.String()
	}
	return &Layout{
		Direction: dirs,
		Gap:       cfg.Gap,
		Padding: Padding{
			Top:    cfg.Padding.Top,
			Bottom: cfg.Padding.Bottom,
			Left:   cfg.Padding.Left,
			Right:  cfg.Padding.Right,
			Front:  cfg.Padding.Front,
			Back:   cfg.Padding.Back,
		},
		Enabled: cfg.Enabled,
	}
}

func layoutFromWire(l *Layout) (scene.LayoutConfig, error) {
	cfg := scene.LayoutConfig{
		Gap: l.Gap,
		Padding: scene.Padding{
			Top:    l.Padding.Top,
			Bottom: l.Padding.Bottom,
			Left:   l.Padding.Left,
			Right:  l.Padding.Right,
			Front:  l.Padding.Front,
			Back:   l.Padding.Back,
		},
		Enabled: l.Enabled,
	}
	cfg.Direction = make([]scene.Axis, len(l.Direction))
	for i, name := range l.Direction {
		axis, err := parseAxis(name)
		if err != nil {
			return scene.LayoutConfig{}, err
		}
		cfg.Direction[i] = axis
	}
	return cfg, nil
}

func parseKind(name string) (scene.Kind, error) {
	switch name {
	case KindLeaf:
		return scene.KindLeaf, nil
	case KindContainer:
		return scene.KindContainer, nil
	default:
		return 0, fmt.Errorf("unknown kind %q", name)
	}
}

func parseSizing(name string) (scene.SizingMode, error) {
	switch name {
	case SizingFixed, "":
		return scene.SizingFixed, nil
	case SizingFill:
		return scene.SizingFill, nil
	case SizingHug:
		return scene.SizingHug, nil
	default:
		return 0, fmt.Errorf("unknown sizing mode %q", name)
	}
}

func parseAxis(name string) (scene.Axis, error) {
	switch name {
	case "x":
		return scene.AxisX, nil
	case "y":
		return scene.AxisY, nil
	case "z":
		return scene.AxisZ, nil
	default:
		return 0, fmt.Errorf("unknown axis %q", name)
	}
}

func vec3Array(v mgl64.Vec3) [3]float64 {
	return [3]float64{v.X(), v.Y(), v.Z()}
}

func vec3FromArray(a [3]float64) mgl64.Vec3 {
	return mgl64.Vec3{a[0], a[1], a[2]}
}

func quatArray(q mgl64.Quat) [4]float64 {
	return [4]float64{q.W, q.V.X(), q.V.Y(), q.V.Z()}
}

func quatFromArray(a [4]float64) mgl64.Quat {
	return mgl64.Quat{W: a[0], V: mgl64.Vec3{a[1], a[2], a[3]}}
}
