package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matterframe/matterframe/pkg/core/scene"
	"github.com/matterframe/matterframe/pkg/core/spatial"
)

// inspectCommand creates the inspect command for examining scene files.
func (c *CLI) inspectCommand() *cobra.Command {
	var objectID uint64
	var world bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show objects, world poses, and layout state of a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := c.openEngine(args[0])
			if err != nil {
				return err
			}
			c.recordSession(cmd.Context(), args[0], eng.Scene().Count())

			if objectID != 0 {
				return inspectObject(eng.Scene(), scene.ID(objectID), world)
			}
			return inspectScene(eng.Scene(), world)
		},
	}

	cmd.Flags().Uint64Var(&objectID, "id", 0, "inspect a single object")
	cmd.Flags().BoolVarP(&world, "world", "w", false, "show world-space poses instead of local")

	return cmd
}

// inspectScene prints a summary table of every object.
func inspectScene(s *scene.Scene, world bool) error {
	containers := 0
	for _, id := range s.IDs() {
		rec, err := s.Get(id)
		if err != nil {
			continue
		}
		if rec.IsContainer() {
			containers++
		}
	}

	printKeyValue("objects", fmt.Sprintf("%d", s.Count()))
	printKeyValue("containers", fmt.Sprintf("%d", containers))
	printKeyValue("roots", fmt.Sprintf("%d", len(s.Roots())))
	printNewline()

	for _, id := range s.IDs() {
		if err := inspectObject(s, id, world); err != nil {
			return err
		}
		printNewline()
	}
	return nil
}

// inspectObject prints one object's kind, pose, extents, and layout state.
func inspectObject(s *scene.Scene, id scene.ID, world bool) error {
	rec, err := s.Get(id)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(fmt.Sprintf("#%d", id)) + " " + StyleValue.Render(rec.Kind().String()))

	t := rec.Local()
	space := "local"
	if world {
		if t, err = s.WorldTransform(id); err != nil {
			return err
		}
		space = "world"
	}
	printDetail("%s position: %s", space, fmtVec(t.Position[0], t.Position[1], t.Position[2]))
	e := rec.Extents()
	printDetail("extents: %s", fmtVec(e.Width, e.Height, e.Depth))
	printDetail("sizing: %s/%s/%s", rec.Sizing().X, rec.Sizing().Y, rec.Sizing().Z)

	if parent := rec.Parent(); parent != scene.None {
		printDetail("parent: #%d", parent)
	}

	if rec.IsContainer() {
		printDetail("container sizing: %s", rec.ContainerSizing())
		if kids, err := s.Children(id); err == nil && len(kids) > 0 {
			printDetail("children: %s", fmtIDs(kids))
		}
		if cfg := rec.Layout(); cfg != nil {
			state := "disabled"
			if cfg.Enabled {
				state = "enabled"
			}
			printDetail("layout: %s, direction %s, gap %.2f", state, fmtAxes(cfg.Direction), cfg.Gap)
		}
		if depth, err := s.NestingDepth(id); err == nil && depth > 0 {
			printDetail("nesting depth: %d", depth)
		}
	}
	return nil
}

func fmtVec(x, y, z float64) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", x, y, z)
}

func fmtIDs(ids []scene.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("#%d", id)
	}
	return strings.Join(parts, ", ")
}

func fmtAxes(axes []scene.Axis) string {
	if len(axes) == 0 {
		return scene.AxisX.String()
	}
	parts := make([]string, len(axes))
	for i, a := range axes {
		parts[i] = a.String()
	}
	return strings.Join(parts, "")
}

func fmtExtents(e spatial.Extents) string {
	return fmtVec(e.Width, e.Height, e.Depth)
}
