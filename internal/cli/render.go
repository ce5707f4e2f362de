package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matterframe/matterframe/pkg/cache"
	"github.com/matterframe/matterframe/pkg/core/scene"
	apperrors "github.com/matterframe/matterframe/pkg/errors"
	"github.com/matterframe/matterframe/pkg/observability"
	"github.com/matterframe/matterframe/pkg/render/hier"
	"github.com/matterframe/matterframe/pkg/snapshot"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path
	format   string // output format: "dot", "svg", "png"
	detailed bool   // show extents and layout state in node labels
	noCache  bool   // bypass the artifact cache
}

// renderCommand creates the render command for generating hierarchy diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		format:   c.Config.Render.Format,
		detailed: c.Config.Render.Detailed,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render the containment hierarchy as a diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apperrors.ValidateRenderFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: derived from input)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", opts.detailed, "show extents and layout state in labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	s, err := snapshot.ReadSceneFile(input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded scene: %d objects", s.Count())
	c.recordSession(ctx, input, s.Count())

	format := strings.ToLower(opts.format)
	data, cached, err := c.renderArtifact(ctx, s, format, opts)
	if err != nil {
		return err
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
	}
	if err := apperrors.ValidatePath(outputPath); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return err
	}

	printSuccess("Generated %s", outputPath)
	printStats(s.Count(), countContainers(s), cached)
	return nil
}

// renderArtifact produces the diagram bytes, consulting the artifact cache
// keyed by the snapshot content and render options.
func (c *CLI) renderArtifact(ctx context.Context, s *scene.Scene, format string, opts *renderOpts) ([]byte, bool, error) {
	logger := loggerFromContext(ctx)

	store, err := newCache(opts.noCache || c.Config.Cache.Disabled)
	if err != nil {
		return nil, false, err
	}
	defer store.Close()

	raw, err := snapshot.MarshalScene(s)
	if err != nil {
		return nil, false, err
	}
	key := cache.NewDefaultKeyer().ArtifactKey(cache.Hash(raw), cache.ArtifactKeyOpts{
		Format:   format,
		Detailed: opts.detailed,
	})

	if data, ok, err := store.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, "artifact")
		logger.Debug("Artifact cache hit")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	dot := hier.ToDOT(s, hier.Options{Detailed: opts.detailed})
	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		logger.Info("Rendering hierarchy SVG")
		data, err = hier.RenderSVG(dot)
	case "png":
		logger.Info("Rendering hierarchy PNG")
		data, err = hier.RenderPNG(dot)
	default:
		return nil, false, fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return nil, false, err
	}
	logger.Debugf("Generated %s: %d bytes", format, len(data))

	ttl := time.Duration(c.Config.Cache.TTLHours) * time.Hour
	if err := store.Set(ctx, key, data, ttl); err != nil {
		logger.Warnf("Failed to cache artifact: %v", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}
