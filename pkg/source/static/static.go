// Package static implements a repository backed by a JSON fixture file,
// used for offline graph builds and reverse-dependency scans.
package static

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"

	"depscope/pkg/source"
)

// Repository is an immutable, fully loaded package repository. It
// implements [source.Repository]; lookups are by name only, since a
// fixture carries exactly one version per package.
type Repository struct {
	packages map[string]fixtureEntry
	names    []string // sorted, fixes enumeration order
}

type fixture struct {
	Packages map[string]fixtureEntry `json:"packages"`
}

type fixtureEntry struct {
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies"`
}

// Load reads a repository fixture from path. The document must hold a
// top-level "packages" mapping of name to {version, dependencies}. The
// whole file is loaded before any traversal begins.
func Load(path string) (*Repository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read repository: %w", err)
	}
	return Parse(data)
}

// Parse builds a repository from raw fixture JSON.
func Parse(data []byte) (*Repository, error) {
	var f fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse repository: %w", err)
	}
	if f.Packages == nil {
		f.Packages = map[string]fixtureEntry{}
	}
	return &Repository{
		packages: f.Packages,
		names:    slices.Sorted(maps.Keys(f.Packages)),
	}, nil
}

// FetchManifest returns the declared dependencies of the named package.
// The version argument is ignored: fixtures pin one version per name.
// Unknown names return [source.ErrNotFound].
func (r *Repository) FetchManifest(_ context.Context, name, _ string) (source.Manifest, error) {
	entry, ok := r.packages[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", source.ErrNotFound, name)
	}
	manifest := make(source.Manifest, len(entry.Dependencies))
	for dep, version := range entry.Dependencies {
		manifest[dep] = version
	}
	return manifest, nil
}

// Version returns the pinned version for name, or "latest" when the
// package is unknown or the fixture leaves the version empty.
func (r *Repository) Version(name string) string {
	if entry, ok := r.packages[name]; ok && entry.Version != "" {
		return entry.Version
	}
	return "latest"
}

// Enumerate lists every package once, sorted by name.
func (r *Repository) Enumerate() []source.Entry {
	entries := make([]source.Entry, 0, len(r.names))
	for _, name := range r.names {
		entries = append(entries, source.Entry{Name: name, Version: r.packages[name].Version})
	}
	return entries
}

// Len reports the number of packages in the repository.
func (r *Repository) Len() int { return len(r.names) }

var _ source.Repository = (*Repository)(nil)
