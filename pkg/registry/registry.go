// Package registry defines the client interface the resolver and installer
// consume, plus the npm registry implementation.
package registry

import (
	"context"
	"errors"

	"github.com/minipm/minipm/pkg/manifest"
)

var (
	// ErrNotFound is returned when a package or archive doesn't exist in the registry.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// Metadata holds everything the registry knows about one package: its
// available versions and, per version, the declared dependencies and the
// archive download location. Fetched per resolution, never persisted.
type Metadata struct {
	Name     string                           `json:"name"`
	Versions []string                         `json:"versions"`
	Deps     map[string]manifest.Dependencies `json:"deps"`
	Tarballs map[string]string                `json:"tarballs"`
}

// Dependencies returns the ordered dependency list declared by the given
// version. Unknown versions yield an empty list.
func (m *Metadata) Dependencies(version string) manifest.Dependencies {
	return m.Deps[version]
}

// Tarball returns the archive download location for the given version.
func (m *Metadata) Tarball(version string) (string, bool) {
	url, ok := m.Tarballs[version]
	return url, ok
}

// Client is the registry access boundary.
// Implementations are responsible for transport concerns (retries, caching,
// timeouts); callers treat failures as terminal for the affected subtree.
type Client interface {
	// Metadata fetches package metadata by name.
	Metadata(ctx context.Context, name string) (*Metadata, error)

	// Archive downloads the raw archive bytes from the given location.
	Archive(ctx context.Context, url string) ([]byte, error)
}
