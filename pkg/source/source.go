// Package source defines the manifest-lookup boundary consumed by the
// graph engine, with live registry and static fixture implementations
// in subpackages.
package source

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a package or version does not exist in
// the queried source.
var ErrNotFound = errors.New("package not found")

// Manifest maps a dependency name to its declared version or range
// string, as declared by one package version. Manifests are ephemeral;
// callers consume them and move on. Go maps are unordered, so consumers
// that need determinism iterate the keys in sorted order.
type Manifest map[string]string

// Source retrieves the direct declared dependencies of a package
// version. Implementations map transport-level failures (HTTP errors,
// missing fixture entries, parse errors) to returned errors; the graph
// engine absorbs those into warnings rather than aborting.
type Source interface {
	FetchManifest(ctx context.Context, name, version string) (Manifest, error)
}

// Entry identifies one package held by an enumerable repository.
type Entry struct {
	Name    string
	Version string
}

// Repository is a Source whose full package population can be listed.
// Only repositories support reverse-dependency scans; an open-ended
// live registry cannot be enumerated.
type Repository interface {
	Source

	// Enumerate lists every package once, in a stable order.
	Enumerate() []Entry
}
