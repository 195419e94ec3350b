package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	pmerrors "github.com/minipm/minipm/pkg/errors"
	"github.com/minipm/minipm/pkg/install"
	"github.com/minipm/minipm/pkg/manifest"
	"github.com/minipm/minipm/pkg/resolve"
	"github.com/minipm/minipm/pkg/state"
)

// newInstallCmd creates the install command. It resolves the manifest's
// dependency graph against the registry and installs every package that is
// not already present.
func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Resolve and install the dependency graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd)
		},
	}
}

func runInstall(cmd *cobra.Command) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	proj, err := loadProject(ctx)
	if err != nil {
		return err
	}

	m, err := manifest.Load(proj.cfg.ManifestPath(proj.dir))
	if err != nil {
		return err
	}
	if len(m.Dependencies) == 0 {
		printInfo("No dependencies in manifest; nothing to install")
		return nil
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
		if errors.Is(err, context.Canceled) {
			return err
		}
		var cycle *resolve.CycleError
		if errors.As(err, &cycle) {
			printError("Dependency cycle: %s", cycleChain(cycle))
			return errors.New("install aborted")
		}
		printError("%s", pmerrors.UserMessage(err))
		return errors.New("install aborted")
	}
	logger.Infof("Resolved %d packages", root.Count())

	spin = newSpinner(ctx, "Installing packages")
	spin.Start()
	inst := &install.Installer{
		Registry: proj.reg,
		Store:    st,
		Dir:      proj.cfg.ModulesPath(proj.dir),
		Logf:     logger.Debugf,
	}
	report, err := inst.Install(ctx, root)
	spin.Stop()
	if err != nil {
		// Per-package failures are in the report; this is a state
		// persistence failure.
		return fmt.Errorf("saving install state: %w", err)
	}

	for _, r := range report.Failed {
		printError("%s@%s: %s", r.Name, r.Version, pmerrors.UserMessage(r.Err))
	}
	printSuccess("Installed %d packages (%d already present)", len(report.Installed), len(report.Skipped))
	prog.done(fmt.Sprintf("Install run %s finished", report.RunID))

	if !report.OK() {
		return fmt.Errorf("%d packages failed to install", len(report.Failed))
	}
	return nil
}

func cycleChain(c *resolve.CycleError) string {
	chain := ""
	for i, name := range c.Path {
		if i > 0 {
			chain += " " + iconArrow + " "
		}
		chain += styleHighlight.Render(name)
	}
	return chain
}
