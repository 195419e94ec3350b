// Package manifest models the project manifest (package.json): project
// metadata plus the declared top-level dependency mapping.
//
// The dependency mapping preserves declared order through JSON round-trips,
// since resolution walks dependencies in the order the user declared them.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/minipm/minipm/pkg/errors"
)

// FileName is the default manifest file name.
const FileName = "package.json"

// Manifest is the project's declared-dependency record.
type Manifest struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Description  string       `json:"description"`
	Author       string       `json:"author"`
	License      string       `json:"license"`
	Dependencies Dependencies `json:"dependencies,omitempty"`
}

// Dependency is one declared dependency: a package name and its version
// selector (a concrete version or "latest").
type Dependency struct {
	Name     string
	Selector string
}

// Dependencies is an ordered dependency mapping. It marshals as a JSON
// object while preserving declaration order, which encoding/json maps
// would lose.
type Dependencies []Dependency

// Get returns the selector declared for name.
func (d Dependencies) Get(name string) (string, bool) {
	for _, dep := range d {
		if dep.Name == name {
			return dep.Selector, true
		}
	}
	return "", false
}

// Set inserts or overwrites the entry for name, keeping its position when
// the package is already declared.
func (d *Dependencies) Set(name, selector string) {
	for i, dep := range *d {
		if dep.Name == name {
			(*d)[i].Selector = selector
			return
		}
	}
	*d = append(*d, Dependency{Name: name, Selector: selector})
}

// MarshalJSON encodes the mapping as a JSON object in declaration order.
func (d Dependencies) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, dep := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(dep.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(dep.Selector)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving key order via token-level
// decoding.
func (d *Dependencies) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil { // JSON null
		*d = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("dependencies must be a JSON object, got %v", tok)
	}

	deps := Dependencies{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("invalid dependency key %v", keyTok)
		}
		var selector string
		if err := dec.Decode(&selector); err != nil {
			return fmt.Errorf("dependency %q: selector must be a string: %w", name, err)
		}
		deps = append(deps, Dependency{Name: name, Selector: selector})
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return err
	}
	*d = deps
	return nil
}

// Load reads the manifest at path.
// A missing file yields NOT_FOUND so the CLI can tell the user to run init;
// malformed JSON yields INVALID_MANIFEST.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeNotFound, "%s not found, run init first", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "reading %s", path)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parsing %s", path)
	}
	return &m, nil
}

// Save writes the manifest to path atomically (temp file + rename).
func (m *Manifest) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshaling manifest")
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "writing %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeInternal, err, "renaming %s", tmp)
	}
	return nil
}

// Init creates a new manifest at path. If one already exists and overwrite
// is false, it fails with ALREADY_EXISTS; the CLI layer decides whether to
// prompt and retry with overwrite set.
func Init(path string, m *Manifest, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return errors.New(errors.ErrCodeAlreadyExists, "%s already exists", path)
	}
	return m.Save(path)
}

// Add inserts or overwrites one dependency entry. It performs no registry
// validation; existence of the package and version is checked at resolve
// time.
func (m *Manifest) Add(name, selector string) {
	m.Dependencies.Set(name, selector)
}
