// Package hier renders the containment graph of a scene as a node-link
// diagram using Graphviz. Containers are drawn as solid boxes, leaves as
// rounded grey boxes; edges run parent → child in insertion order, so the
// diagram doubles as a readable dump of layout ordering.
package hier

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matterframe/matterframe/pkg/core/scene"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes extents, sizing modes, and layout state in node
	// labels. When false, only the object ID and kind are shown.
	Detailed bool
}

// ToDOT converts a scene's containment graph to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(s *scene.Scene, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph scene {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=20, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, id := range s.IDs() {
		rec, err := s.Get(id)
		if err != nil {
			continue
		}
		label := fmtLabel(s, rec, opts.Detailed)
		attrs := fmtAttrs(rec, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeName(id), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, id := range s.IDs() {
		kids, err := s.Children(id)
		if err != nil {
			continue
		}
		for _, kid := range kids {
			fmt.Fprintf(&buf, "  %q -> %q;\n", nodeName(id), nodeName(kid))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeName(id scene.ID) string {
	return fmt.Sprintf("obj%d", id)
}

func fmtLabel(s *scene.Scene, rec *scene.Record, detailed bool) string {
	head := fmt.Sprintf("#%d %s", rec.ID(), rec.Kind())
	if !detailed {
		return head
	}

	e := rec.Extents()
	parts := []string{fmt.Sprintf("extents: %.2f x %.2f x %.2f", e.Width, e.Height, e.Depth)}
	if rec.IsContainer() {
		parts = append(parts, fmt.Sprintf("sizing: %s", rec.ContainerSizing()))
		if rec.LayoutEnabled() {
			cfg := rec.Layout()
			dirs := make([]string, len(cfg.Direction))
			for i, a := range cfg.Direction {
				dirs[i] = a.String()
			}
			parts = append(parts, fmt.Sprintf("layout: %s gap=%.2f", strings.Join(dirs, ""), cfg.Gap))
		}
		if depth, err := s.NestingDepth(rec.ID()); err == nil {
			parts = append(parts, fmt.Sprintf("depth: %d", depth))
		}
	}
	return head + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(rec *scene.Record, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if !rec.IsContainer() {
		attrs = append(attrs, "fillcolor=lightgrey")
	} else if rec.LayoutEnabled() {
		attrs = append(attrs, "style=\"filled\"", "fillcolor=lightblue")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
