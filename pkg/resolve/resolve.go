// Package resolve builds the dependency graph for an install run.
//
// Resolution is a depth-first walk from the manifest's declared
// dependencies. Cycle detection uses the explicit ancestor path — the
// ordered list of package names on the active root-to-node path — rather
// than a global visited set, so diamond dependencies stay legal while any
// repeated name on a single path is rejected.
package resolve

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/minipm/minipm/pkg/errors"
	"github.com/minipm/minipm/pkg/manifest"
	"github.com/minipm/minipm/pkg/registry"
	"github.com/minipm/minipm/pkg/semver"
)

// Node is one resolved package in the graph. The root node is synthetic
// (empty name) with one child per top-level manifest dependency.
//
// Sibling subtrees may legitimately resolve the same package name at
// different versions; no de-duplication across subtrees is attempted.
type Node struct {
	Name      string
	Version   string
	Tarball   string  // archive download location for this version
	Satisfied bool    // already present in the install state store
	Children  []*Node // nil for satisfied nodes: their subtree is not expanded
}

// IsRoot reports whether n is the synthetic project root.
func (n *Node) IsRoot() bool { return n.Name == "" }

// Walk visits every non-root node in pre-order, parents before children,
// preserving sibling order. If fn returns false the node's subtree is
// pruned.
func (n *Node) Walk(fn func(*Node) bool) {
	if !n.IsRoot() && !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Count returns the number of package nodes in the graph (root excluded).
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node) bool {
		count++
		return true
	})
	return count
}

// CycleError reports a circular dependency chain. Resolution aborts
// immediately; a cycle invalidates the whole install.
type CycleError struct {
	Path []string // ancestor path followed by the repeated name
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency: %s", strings.Join(e.Path, " -> "))
}

// Code returns the error code for this error type.
func (e *CycleError) Code() errors.Code { return errors.ErrCodeCycle }

// InstalledSet answers whether an exact (name, version) pair is already
// installed. *state.Store implements it.
type InstalledSet interface {
	Has(name, version string) bool
}

// Resolver builds dependency graphs using a registry client and the
// persisted installed-set.
type Resolver struct {
	Registry  registry.Client
	Installed InstalledSet         // optional; nil means nothing is satisfied
	Logf      func(string, ...any) // optional progress callback
}

// Resolve builds the full graph for the manifest's declared dependencies,
// in declared order. It returns the synthetic root node, or the first
// failure: *CycleError, VERSION_NOT_FOUND, UNSUPPORTED_SELECTOR, or
// REGISTRY_ERROR. No partial graph is returned on failure.
func (r *Resolver) Resolve(ctx context.Context, m *manifest.Manifest) (*Node, error) {
	root := &Node{}
	for _, dep := range m.Dependencies {
		child, err := r.resolve(ctx, dep.Name, dep.Selector, nil)
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, child)
	}
	return root, nil
}

// resolve resolves one package against the ancestor path and recurses into
// its declared dependencies.
func (r *Resolver) resolve(ctx context.Context, name, selector string, path []string) (*Node, error) {
	if slices.Contains(path, name) {
		return nil, &CycleError{Path: append(slices.Clone(path), name)}
	}

	meta, err := r.Registry.Metadata(ctx, name)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRegistry, err, "fetching metadata for %s@%s", name, selector)
	}

	version, err := semver.Select(name, selector, meta.Versions)
	if err != nil {
		return nil, err
	}

	tarball, _ := meta.Tarball(version)
	node := &Node{Name: name, Version: version, Tarball: tarball}

	// A previously completed install is assumed to have resolved and
	// installed this package's own subtree; don't walk it again.
	if r.Installed != nil && r.Installed.Has(name, version) {
		node.Satisfied = true
		r.logf("%s@%s already satisfied", name, version)
		return node, nil
	}

	childPath := append(slices.Clone(path), name)
	for _, dep := range meta.Dependencies(version) {
		child, err := r.resolve(ctx, dep.Name, dep.Selector, childPath)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

func (r *Resolver) logf(format string, args ...any) {
	if r.Logf != nil {
		r.Logf(format, args...)
	}
}
