package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minipm/minipm/pkg/errors"
)

func TestDependenciesRoundTripPreservesOrder(t *testing.T) {
	in := `{"zeta":"1.0.0","alpha":"latest","mid":"2.3.4"}`

	var deps Dependencies
	if err := json.Unmarshal([]byte(in), &deps); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	wantOrder := []string{"zeta", "alpha", "mid"}
	if len(deps) != len(wantOrder) {
		t.Fatalf("len(deps) = %d, want %d", len(deps), len(wantOrder))
	}
	for i, name := range wantOrder {
		if deps[i].Name != name {
			t.Errorf("deps[%d].Name = %q, want %q", i, deps[i].Name, name)
		}
	}

	out, err := json.Marshal(deps)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(out) != in {
		t.Errorf("Marshal() = %s, want %s", out, in)
	}
}

func TestDependenciesRejectNonStringSelector(t *testing.T) {
	var deps Dependencies
	if err := json.Unmarshal([]byte(`{"pkg":42}`), &deps); err == nil {
		t.Error("Unmarshal() should reject non-string selectors")
	}
}

func TestDependenciesSetOverwritesInPlace(t *testing.T) {
	deps := Dependencies{{Name: "a", Selector: "1.0.0"}, {Name: "b", Selector: "latest"}}
	deps.Set("a", "2.0.0")

	if sel, _ := deps.Get("a"); sel != "2.0.0" {
		t.Errorf("Get(a) = %q, want %q", sel, "2.0.0")
	}
	if deps[0].Name != "a" {
		t.Error("Set() should keep the entry's declared position")
	}

	deps.Set("c", "3.0.0")
	if len(deps) != 3 || deps[2].Name != "c" {
		t.Error("Set() should append new entries at the end")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	m := &Manifest{
		Name:        "demo",
		Version:     "0.1.0",
		Description: "a demo project",
		Author:      "someone",
		License:     "MIT",
	}
	m.Add("express", "4.18.2")
	m.Add("lodash", "latest")

	if err := m.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Name != "demo" || got.License != "MIT" {
		t.Errorf("Load() = %+v", got)
	}
	if len(got.Dependencies) != 2 || got.Dependencies[0].Name != "express" {
		t.Errorf("Dependencies = %+v, want express then lodash", got.Dependencies)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Load() error = %v, want NOT_FOUND", err)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("Load() error = %v, want INVALID_MANIFEST", err)
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	m := &Manifest{Name: "demo", Version: "1.0.0"}

	if err := Init(path, m, false); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	err := Init(path, &Manifest{Name: "other"}, false)
	if !errors.Is(err, errors.ErrCodeAlreadyExists) {
		t.Errorf("Init() error = %v, want ALREADY_EXISTS", err)
	}

	// Explicit overwrite succeeds.
	if err := Init(path, &Manifest{Name: "other", Version: "2.0.0"}, true); err != nil {
		t.Fatalf("Init(overwrite) error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "other" {
		t.Errorf("Name = %q, want %q after overwrite", got.Name, "other")
	}
}

func TestSaveOmitsEmptyDependencies(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	m := &Manifest{Name: "demo", Version: "1.0.0"}
	if err := m.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "dependencies") {
		t.Errorf("Save() should omit an empty dependency mapping, got: %s", data)
	}
}
