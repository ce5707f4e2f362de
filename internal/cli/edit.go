package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/matterframe/matterframe/pkg/core/scene"
	"github.com/matterframe/matterframe/pkg/core/spatial"
	"github.com/matterframe/matterframe/pkg/engine"
	apperrors "github.com/matterframe/matterframe/pkg/errors"
	"github.com/matterframe/matterframe/pkg/snapshot"
)

// editOp is one operation in an edit script. The "op" field selects the
// operation; the remaining fields are operation-specific.
type editOp struct {
	Op       string      `json:"op"`
	ID       uint64      `json:"id,omitempty"`
	Parent   uint64      `json:"parent,omitempty"`
	Position *[3]float64 `json:"position,omitempty"`
	Extents  *[3]float64 `json:"extents,omitempty"`
	Sizing   string      `json:"sizing,omitempty"`
	Cascade  bool        `json:"cascade,omitempty"`

	// Layout fields.
	Enabled   *bool    `json:"enabled,omitempty"`
	Direction []string `json:"direction,omitempty"`
	Gap       *float64 `json:"gap,omitempty"`
	Padding   *padding `json:"padding,omitempty"`
}

type padding struct {
	Top    float64 `json:"top,omitempty"`
	Bottom float64 `json:"bottom,omitempty"`
	Left   float64 `json:"left,omitempty"`
	Right  float64 `json:"right,omitempty"`
	Front  float64 `json:"front,omitempty"`
	Back   float64 `json:"back,omitempty"`
}

// editScript is the top-level structure of an edit file.
type editScript struct {
	Ops []editOp `json:"ops"`
}

// editCommand creates the edit command for applying batch operations.
func (c *CLI) editCommand() *cobra.Command {
	var scriptPath, output string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Apply a batch of operations to a scene",
		Long: `Edit applies a JSON script of operations to a scene file. Each operation
runs the full layout sequence: reparenting preserves world poses, container
layouts are recomputed, and size changes cascade upward. The scene is saved
only if every operation succeeds.

Supported operations: reparent, move, resize, layout, add-leaf,
add-container, remove.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if scriptPath == "" {
				return fmt.Errorf("--script is required")
			}
			return c.runEdit(cmd.Context(), args[0], scriptPath, output, dryRun)
		},
	}

	cmd.Flags().StringVarP(&scriptPath, "script", "s", "", "JSON file with operations to apply")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: edit in place)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "apply and report without saving")

	return cmd
}

func (c *CLI) runEdit(ctx context.Context, input, scriptPath, output string, dryRun bool) error {
	logger := loggerFromContext(ctx)

	data, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	var script editScript
	if err := json.Unmarshal(data, &script); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "parse edit script")
	}

	eng, err := c.openEngine(input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded scene: %d objects", eng.Scene().Count())

	p := newProgress(logger)
	for i, op := range script.Ops {
		if err := c.applyOp(ctx, eng, op); err != nil {
			printError("op %d (%s): %s [%s]", i, op.Op, err, apperrors.Classify(err))
			return err
		}
		logger.Debugf("Applied op %d: %s", i, op.Op)
	}
	p.done(fmt.Sprintf("Applied %d operations", len(script.Ops)))

	if dryRun {
		printInfo("Dry run, scene not saved")
		return nil
	}

	outPath := output
	if outPath == "" {
		outPath = input
	}
	if err := snapshot.WriteSceneFile(eng.Scene(), outPath); err != nil {
		return err
	}
	c.recordSession(ctx, outPath, eng.Scene().Count())

	printSuccess("Saved %s", outPath)
	printStats(eng.Scene().Count(), countContainers(eng.Scene()), false)
	return nil
}

// applyOp dispatches one script operation to the engine.
func (c *CLI) applyOp(ctx context.Context, eng *engine.Engine, op editOp) error {
	id := scene.ID(op.ID)
	switch op.Op {
	case "reparent":
		return eng.SetParent(ctx, id, scene.ID(op.Parent))

	case "move":
		if op.Position == nil {
			return apperrors.New(apperrors.ErrCodeInvalidInput, "move requires position")
		}
		return eng.Move(ctx, id, mgl64.Vec3{op.Position[0], op.Position[1], op.Position[2]})

	case "resize":
		if op.Extents == nil {
			return apperrors.New(apperrors.ErrCodeInvalidInput, "resize requires extents")
		}
		return eng.Resize(ctx, id, spatial.Extents{
			Width:  op.Extents[0],
			Height: op.Extents[1],
			Depth:  op.Extents[2],
		})

	case "layout":
		cfg, err := c.layoutFromOp(eng, id, op)
		if err != nil {
			return err
		}
		return eng.SetAutoLayout(ctx, id, cfg)

	case "add-leaf":
		spec := scene.LeafSpec{}
		if op.Extents != nil {
			spec.Extents = spatial.Extents{Width: op.Extents[0], Height: op.Extents[1], Depth: op.Extents[2]}
		}
		if op.Position != nil {
			spec.Local = spatial.At(op.Position[0], op.Position[1], op.Position[2])
		}
		newID := eng.AddLeaf(spec)
		if op.Parent != 0 {
			return eng.SetParent(ctx, newID, scene.ID(op.Parent))
		}
		return nil

	case "add-container":
		mode, err := parseSizingMode(op.Sizing)
		if err != nil {
			return err
		}
		spec := scene.ContainerSpec{SizingMode: mode}
		if op.Position != nil {
			spec.Local = spatial.At(op.Position[0], op.Position[1], op.Position[2])
		}
		if op.Extents != nil {
			spec.Extents = spatial.Extents{Width: op.Extents[0], Height: op.Extents[1], Depth: op.Extents[2]}
		}
		newID, err := eng.AddContainer(spec)
		if err != nil {
			return err
		}
		if op.Parent != 0 {
			return eng.SetParent(ctx, newID, scene.ID(op.Parent))
		}
		return nil

	case "remove":
		return eng.Remove(ctx, id, op.Cascade)

	default:
		return apperrors.New(apperrors.ErrCodeInvalidInput, "unknown op %q", op.Op)
	}
}

// layoutFromOp builds a layout config from a script op, starting from the
// container's existing config so partial updates work.
func (c *CLI) layoutFromOp(eng *engine.Engine, id scene.ID, op editOp) (scene.LayoutConfig, error) {
	cfg := scene.LayoutConfig{Gap: c.Config.Layout.Gap}
	if rec, err := eng.Scene().Get(id); err == nil {
		if existing := rec.Layout(); existing != nil {
			cfg = *existing
		}
	}

	if op.Enabled != nil {
		cfg.Enabled = *op.Enabled
	}
	if op.Gap != nil {
		cfg.Gap = *op.Gap
	}
	if op.Padding != nil {
		cfg.Padding = scene.Padding{
			Top: op.Padding.Top, Bottom: op.Padding.Bottom,
			Left: op.Padding.Left, Right: op.Padding.Right,
			Front: op.Padding.Front, Back: op.Padding.Back,
		}
	}
	if len(op.Direction) > 0 {
		axes := make([]scene.Axis, len(op.Direction))
		for i, name := range op.Direction {
			axis, err := parseAxisName(name)
			if err != nil {
				return scene.LayoutConfig{}, err
			}
			axes[i] = axis
		}
		cfg.Direction = axes
	}
	return cfg, nil
}

func parseSizingMode(name string) (scene.SizingMode, error) {
	switch name {
	case "", snapshot.SizingFixed:
		return scene.SizingFixed, nil
	case snapshot.SizingHug:
		return scene.SizingHug, nil
	case snapshot.SizingFill:
		return scene.SizingFill, nil
	default:
		return 0, apperrors.New(apperrors.ErrCodeInvalidInput, "unknown sizing mode %q", name)
	}
}

func parseAxisName(name string) (scene.Axis, error) {
	switch name {
	case "x":
		return scene.AxisX, nil
	case "y":
		return scene.AxisY, nil
	case "z":
		return scene.AxisZ, nil
	default:
		return 0, apperrors.New(apperrors.ErrCodeInvalidInput, "unknown axis %q", name)
	}
}

func countContainers(s *scene.Scene) int {
	n := 0
	for _, id := range s.IDs() {
		if rec, err := s.Get(id); err == nil && rec.IsContainer() {
			n++
		}
	}
	return n
}
