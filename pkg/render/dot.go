// Package render turns resolved dependency graphs into Graphviz DOT and
// rasterized images for inspection.
package render

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/minipm/minipm/pkg/resolve"
)

// Options configures graph rendering.
type Options struct {
	// Project labels the root node; empty shows "(project)".
	Project string
}

// ToDOT converts a resolved graph to Graphviz DOT. Each graph position gets
// its own node, so a package appearing in several subtrees (or at several
// versions) is drawn once per occurrence, matching how it is installed.
//
// Already-satisfied nodes are rendered with dashed outlines and grey fill.
func ToDOT(root *resolve.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph deps {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	project := opts.Project
	if project == "" {
		project = "(project)"
	}
	fmt.Fprintf(&buf, "  n0 [label=%q, style=\"rounded,filled,bold\"];\n", project)

	next := 1
	var walk func(parent string, n *resolve.Node)
	walk = func(parent string, n *resolve.Node) {
		id := fmt.Sprintf("n%d", next)
		next++

		attrs := []string{fmt.Sprintf("label=%q", n.Name+"@"+n.Version)}
		if n.Satisfied {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", id, strings.Join(attrs, ", "))
		fmt.Fprintf(&buf, "  %s -> %s;\n", parent, id)

		for _, c := range n.Children {
			walk(id, c)
		}
	}
	for _, c := range root.Children {
		walk("n0", c)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
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

// FormatFor maps an output filename to a renderer, or DOT passthrough for
// ".dot". Unknown extensions are an error.
func FormatFor(filename string) (func(context.Context, string) ([]byte, error), error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")); ext {
	case "dot", "gv":
		return func(_ context.Context, dot string) ([]byte, error) {
			return []byte(dot), nil
		}, nil
	case "svg":
		return RenderSVG, nil
	case "png":
		return RenderPNG, nil
	default:
		return nil, fmt.Errorf("unsupported output format %s (use .dot, .svg, or .png)", strconv.Quote(ext))
	}
}
