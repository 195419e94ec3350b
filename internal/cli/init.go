package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/minipm/minipm/pkg/config"
	pmerrors "github.com/minipm/minipm/pkg/errors"
	"github.com/minipm/minipm/pkg/manifest"
)

// initOpts holds the command-line flags for the init command.
type initOpts struct {
	name        string
	version     string
	description string
	author      string
	license     string
	force       bool
	yes         bool
}

// newInitCmd creates the init command. Without flags on a terminal it runs an
// interactive form; otherwise it falls back to defaults derived from the
// working directory.
func newInitCmd() *cobra.Command {
	var opts initOpts

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a package.json manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, &opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "overwrite an existing manifest")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "skip the interactive prompt and use defaults")
	cmd.Flags().StringVar(&opts.name, "name", "", "package name (default: directory name)")
	cmd.Flags().StringVar(&opts.version, "pkg-version", "", "package version (default: 1.0.0)")
	cmd.Flags().StringVar(&opts.description, "description", "", "package description")
	cmd.Flags().StringVar(&opts.author, "author", "", "package author")
	cmd.Flags().StringVar(&opts.license, "license", "", "package license")

	return cmd
}

func runInit(cmd *cobra.Command, opts *initOpts) error {
	logger := loggerFromContext(cmd.Context())

	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	m := &manifest.Manifest{
		Name:        opts.name,
		Version:     opts.version,
		Description: opts.description,
		Author:      opts.author,
		License:     opts.license,
	}
	if m.Name == "" {
		m.Name = filepath.Base(dir)
	}
	if m.Version == "" {
		m.Version = "1.0.0"
	}

	if interactiveInit(opts) {
		form := newInitForm(m)
		result, err := tea.NewProgram(form).Run()
		if err != nil {
			return fmt.Errorf("running init form: %w", err)
		}
		final, ok := result.(initForm)
		if !ok || final.cancelled {
			printInfo("Init cancelled")
			return nil
		}
		final.apply(m)
	}

	path := cfg.ManifestPath(dir)
	logger.Debugf("writing manifest to %s", path)

	if err := manifest.Init(path, m, opts.force); err != nil {
		if pmerrors.Is(err, pmerrors.ErrCodeAlreadyExists) {
			printError("%s already exists (use --force to overwrite)", filepath.Base(path))
			return errors.New("manifest already exists")
		}
		return err
	}

	printSuccess("Created %s", filepath.Base(path))
	printDetail("name: %s", m.Name)
	printDetail("version: %s", m.Version)
	return nil
}

// interactiveInit reports whether the interactive form should run: no
// identity flags, no --yes, and stdout is a terminal.
func interactiveInit(opts *initOpts) bool {
	if opts.yes {
		return false
	}
	if opts.name != "" || opts.version != "" || opts.description != "" || opts.author != "" || opts.license != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}
