package depgraph

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"depscope/pkg/source"
)

// Build constructs the dependency graph rooted at (name, version) by
// breadth-first traversal over src.
//
// Each distinct (name, version) pair becomes exactly one Node; an edge
// that resolves to an already-known pair attaches to the existing node,
// which is how cycles and shared dependencies are represented. The
// traversal is level-synchronous: manifests for one BFS level are
// fetched (possibly concurrently, see Options.Workers) and their edges
// applied before the next level starts, so a package reachable at
// several depths always keeps the lowest one.
//
// A node whose depth has reached opts.Limit stays a leaf even when its
// manifest is non-empty. Dependency names containing opts.Filter are
// excluded entirely; each distinct excluded name is logged once.
//
// Manifest lookup failures never abort the build: the affected node
// keeps the edges gathered so far, a warning goes to opts.Logger, and
// traversal continues. Only context cancellation returns an error.
func Build(ctx context.Context, name, version string, src source.Source, opts Options) (*Node, error) {
	opts = opts.WithDefaults()

	cache := newNodeCache()
	root, _ := cache.getOrCreate(name, version, 0)

	excluded := make(map[string]bool)
	level := []*Node{root}

	for len(level) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// All nodes in one level share a depth.
		if opts.Limit.Reached(level[0].Depth) {
			break
		}

		results := fetchLevel(ctx, src, level, opts.Workers)

		var next []*Node
		for i, n := range level {
			if results[i].err != nil {
				opts.Logger("manifest lookup failed for %s: %v", n.Key(), results[i].err)
				continue
			}
			manifest := results[i].manifest
			for _, depName := range slices.Sorted(maps.Keys(manifest)) {
				if opts.Filter != "" && strings.Contains(depName, opts.Filter) {
					if !excluded[depName] {
						excluded[depName] = true
						opts.Logger("excluding %s (filter %q)", depName, opts.Filter)
					}
					continue
				}
				dep, created := cache.getOrCreate(depName, manifest[depName], n.Depth+1)
				n.Dependencies = append(n.Dependencies, dep)
				if created && !opts.Limit.Reached(dep.Depth) {
					next = append(next, dep)
				}
			}
		}
		level = next
	}

	return root, nil
}

type fetchResult struct {
	manifest source.Manifest
	err      error
}

// fetchLevel retrieves the manifests for every node of one BFS level on
// a bounded worker pool. Results are positional so the caller can apply
// them in deterministic order regardless of fetch completion order.
func fetchLevel(ctx context.Context, src source.Source, level []*Node, workers int) []fetchResult {
	results := make([]fetchResult, len(level))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range min(workers, len(level)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				manifest, err := src.FetchManifest(ctx, level[i].Name, level[i].Version)
				results[i] = fetchResult{manifest: manifest, err: err}
			}
		}()
	}

	for i := range level {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
