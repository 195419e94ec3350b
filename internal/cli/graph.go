package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/minipm/minipm/pkg/manifest"
	"github.com/minipm/minipm/pkg/render"
	"github.com/minipm/minipm/pkg/resolve"
	"github.com/minipm/minipm/pkg/state"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output string
}

// newGraphCmd creates the graph command. It resolves the manifest without
// installing anything and writes the graph as DOT, SVG, or PNG depending on
// the output file extension.
func newGraphCmd() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the dependency graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "deps.svg", "output file (.dot, .svg, or .png)")

	return cmd
}

func runGraph(cmd *cobra.Command, opts *graphOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	renderer, err := render.FormatFor(opts.output)
	if err != nil {
		return err
	}

	proj, err := loadProject(ctx)
	if err != nil {
		return err
	}
	m, err := manifest.Load(proj.cfg.ManifestPath(proj.dir))
	if err != nil {
		return err
	}
	st, err := state.Load(proj.cfg.StatePath(proj.dir))
	if err != nil {
		return err
	}

	spin := newSpinner(ctx, "Resolving dependencies")
	spin.Start()
	resolver := &resolve.Resolver{Registry: proj.reg, Installed: st, Logf: logger.Debugf}
	root, err := resolver.Resolve(ctx, m)
	spin.Stop()
	if err != nil {
		return err
	}
	logger.Infof("Resolved %d packages", root.Count())

	dot := render.ToDOT(root, render.Options{Project: m.Name})
	data, err := renderer(ctx, dot)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return err
	}

	printSuccess("Rendered dependency graph")
	printFile(opts.output)
	return nil
}
