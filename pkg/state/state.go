// Package state persists the installed-set (node_modules.json): a flat
// mapping of package name to installed version, used to skip redundant
// downloads across install runs.
//
// The store is a plain data structure serialized wholesale. Single-writer
// discipline is enforced by the installer/CLI layer, not by locking here.
package state

import (
	"encoding/json"
	"maps"
	"os"

	"github.com/minipm/minipm/pkg/errors"
)

// FileName is the default install state file name.
const FileName = "node_modules.json"

// Store is the persisted record of installed (name, version) pairs.
// Unique by name; the last install of a name wins.
type Store struct {
	path string
	pkgs map[string]string
}

// Load reads the store at path. A missing file yields an empty store.
func Load(path string) (*Store, error) {
	s := &Store{path: path, pkgs: make(map[string]string)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "reading %s", path)
	}
	if err := json.Unmarshal(data, &s.pkgs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parsing %s", path)
	}
	return s, nil
}

// Has reports whether the exact (name, version) pair is recorded.
func (s *Store) Has(name, version string) bool {
	v, ok := s.pkgs[name]
	return ok && v == version
}

// Version returns the installed version for name.
func (s *Store) Version(name string) (string, bool) {
	v, ok := s.pkgs[name]
	return v, ok
}

// Set records name as installed at version, overwriting any prior entry.
// The change is in-memory until Save is called.
func (s *Store) Set(name, version string) {
	s.pkgs[name] = version
}

// Len returns the number of recorded packages.
func (s *Store) Len() int { return len(s.pkgs) }

// Packages returns a snapshot of the installed mapping.
func (s *Store) Packages() map[string]string {
	return maps.Clone(s.pkgs)
}

// Save writes the store to disk atomically (temp file + rename).
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.pkgs, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshaling install state")
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "writing %s", tmp)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeInternal, err, "renaming %s", tmp)
	}
	return nil
}
