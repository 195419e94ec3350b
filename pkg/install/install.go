// Package install walks a resolved dependency graph and materializes
// packages into local storage, keeping the install state store in sync.
//
// Failures are contained per subtree: a package that fails to fetch or
// extract takes its dependents with it but leaves sibling subtrees running.
// The state store is persisted exactly once, at the end of the run, so
// successfully installed siblings are not re-downloaded on retry.
package install

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/minipm/minipm/pkg/errors"
	"github.com/minipm/minipm/pkg/registry"
	"github.com/minipm/minipm/pkg/resolve"
	"github.com/minipm/minipm/pkg/state"
)

// DirName is the default local package storage directory.
const DirName = "node_modules"

// Result identifies one package outcome within a run.
type Result struct {
	Name    string
	Version string
	Err     error // set for failures only
}

// Report is the per-run record of what happened to each package.
type Report struct {
	RunID     string // unique identifier for this install run
	Installed []Result
	Skipped   []Result // already satisfied or present in the state store
	Failed    []Result
}

// OK reports whether the run completed without failures.
func (r *Report) OK() bool { return len(r.Failed) == 0 }

// Installer materializes resolved graphs. It owns all writes to the state
// store and the package storage directory for the duration of a run.
type Installer struct {
	Registry registry.Client
	Store    *state.Store
	Dir      string               // package storage directory (node_modules)
	Extract  Extractor            // defaults to TarGz
	Logf     func(string, ...any) // optional progress callback
}

// Install walks the graph pre-order (parents before children, sibling
// order preserved) and installs every node that is not already satisfied.
// The state store is saved once before returning, on both full and partial
// success; the returned error reflects persistence problems, not
// per-package failures, which land in the report.
func (i *Installer) Install(ctx context.Context, root *resolve.Node) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}
	extract := i.Extract
	if extract == nil {
		extract = TarGz{}
	}

	root.Walk(func(n *resolve.Node) bool {
		// Defensive re-check against the store: it may have changed
		// between resolve and install.
		if n.Satisfied || i.Store.Has(n.Name, n.Version) {
			i.logf("%s@%s already installed", n.Name, n.Version)
			report.Skipped = append(report.Skipped, Result{Name: n.Name, Version: n.Version})
			return true
		}

		if err := i.installOne(ctx, n, extract); err != nil {
			i.logf("install failed: %s@%s: %v", n.Name, n.Version, err)
			report.Failed = append(report.Failed, Result{Name: n.Name, Version: n.Version, Err: err})
			return false // dependents cannot be assumed correct; prune the subtree
		}

		i.logf("installed %s@%s", n.Name, n.Version)
		report.Installed = append(report.Installed, Result{Name: n.Name, Version: n.Version})
		return true
	})

	if err := i.Store.Save(); err != nil {
		return report, err
	}
	return report, nil
}

// installOne fetches, extracts, and records a single package.
func (i *Installer) installOne(ctx context.Context, n *resolve.Node, extract Extractor) error {
	if n.Tarball == "" {
		return errors.New(errors.ErrCodeRegistry, "%s@%s: registry reported no archive location", n.Name, n.Version)
	}

	data, err := i.Registry.Archive(ctx, n.Tarball)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRegistry, err, "fetching archive for %s@%s", n.Name, n.Version)
	}

	dir := filepath.Join(i.Dir, n.Name)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clearing %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	if err := extract.Extract(data, dir); err != nil {
		return fmt.Errorf("extracting %s@%s: %w", n.Name, n.Version, err)
	}

	i.Store.Set(n.Name, n.Version)
	return nil
}

func (i *Installer) logf(format string, args ...any) {
	if i.Logf != nil {
		i.Logf(format, args...)
	}
}
