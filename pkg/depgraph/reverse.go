package depgraph

import (
	"context"

	"depscope/pkg/source"
)

// Reverse scans every package of an enumerable repository and returns
// the "name@version" keys of those that directly declare target as a
// dependency, in repository enumeration order.
//
// The scan is direct-dependents-only: it inspects each package's own
// manifest and does not chase transitive dependents. Each candidate is
// treated as depth 0 against opts.Limit, so a limit of less than one
// skips every candidate and yields an empty result.
//
// Packages whose manifest cannot be fetched are logged through
// opts.Logger and treated as declaring nothing. opts.Filter and
// opts.Workers are not consulted.
func Reverse(ctx context.Context, target string, repo source.Repository, opts Options) ([]string, error) {
	opts = opts.WithDefaults()

	dependents := []string{}
	if opts.Limit.Reached(0) {
		return dependents, nil
	}

	visited := make(map[string]bool)
	for _, entry := range repo.Enumerate() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		key := Key(entry.Name, entry.Version)
		if visited[key] {
			continue
		}
		visited[key] = true

		manifest, err := repo.FetchManifest(ctx, entry.Name, entry.Version)
		if err != nil {
			opts.Logger("manifest lookup failed for %s: %v", key, err)
			continue
		}
		if _, ok := manifest[target]; ok {
			dependents = append(dependents, key)
		}
	}

	return dependents, nil
}
