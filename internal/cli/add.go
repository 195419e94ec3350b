package cli

import (
	"github.com/spf13/cobra"

	"github.com/minipm/minipm/pkg/manifest"
)

// newAddCmd creates the add command. It records a dependency in the
// manifest; nothing is downloaded until install runs.
func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <package>[@version]",
		Short: "Add a dependency to the manifest",
		Long: `Add records a dependency in package.json. The version may be an exact
version or "latest" (the default). Range selectors like ^1.2.0 are not
supported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, args[0])
		},
	}
}

func runAdd(cmd *cobra.Command, raw string) error {
	logger := loggerFromContext(cmd.Context())

	name, selector, err := parsePackageSpec(raw)
	if err != nil {
		return err
	}

	proj, err := loadProject(cmd.Context())
	if err != nil {
		return err
	}

	path := proj.cfg.ManifestPath(proj.dir)
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}

	if prev, ok := m.Dependencies.Get(name); ok && prev != selector {
		logger.Debugf("replacing %s selector %q with %q", name, prev, selector)
	}
	m.Add(name, selector)

	if err := m.Save(path); err != nil {
		return err
	}

	printSuccess("Added %s@%s", name, selector)
	printDetail("run %s to install", "minipm install")
	return nil
}
