// Package pkg provides the core libraries for depscope dependency
// graphing.
//
// # Overview
//
// The typical data flow through depscope:
//
//	Package Registry / Fixture File
//	         ↓
//	    [source] package (fetch manifests)
//	         ↓
//	    [depgraph] package (breadth-first graph construction)
//	         ↓
//	    [diagram] package (diagram text, ASCII tree, DOT/PNG)
//
// # Main Packages
//
// [depgraph] - Graph construction: forward transitive traversal with
// depth limits, substring filtering, and cycle-safe node identity, plus
// the reverse direct-dependents scan.
//
// [source] - Manifest sources. [source/registry] talks to an npm-style
// registry over HTTP with caching and retries; [source/static] loads a
// JSON fixture for offline use.
//
// [diagram] - Output formats: the line-oriented node/edge description,
// an indented ASCII tree, and Graphviz DOT with embedded PNG rendering.
//
// [cache] - Byte caches backing the registry client: file, Redis, and
// null backends.
//
// [httputil] - Retry with exponential backoff for transient HTTP
// failures.
//
// [errors] - Coded errors shared by the CLI and the HTTP API.
//
// # Quick Start
//
// Build and print a graph:
//
//	client := registry.New("", cache.NewNullCache(), 0)
//	root, err := depgraph.Build(ctx, "express", "latest", client, depgraph.Options{
//	    Limit: depgraph.LimitOf(3),
//	})
//	if err != nil {
//	    return err
//	}
//	diagram.Tree(os.Stdout, root)
//	text := diagram.Serialize(root)
//
// [depgraph]: https://pkg.go.dev/depscope/pkg/depgraph
// [source]: https://pkg.go.dev/depscope/pkg/source
// [source/registry]: https://pkg.go.dev/depscope/pkg/source/registry
// [source/static]: https://pkg.go.dev/depscope/pkg/source/static
// [diagram]: https://pkg.go.dev/depscope/pkg/diagram
// [cache]: https://pkg.go.dev/depscope/pkg/cache
// [httputil]: https://pkg.go.dev/depscope/pkg/httputil
// [errors]: https://pkg.go.dev/depscope/pkg/errors
package pkg
