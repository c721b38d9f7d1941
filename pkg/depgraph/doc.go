// Package depgraph builds deduplicated, cycle-safe dependency graphs.
//
// Build walks a package's transitive dependencies breadth-first through
// a [depscope/pkg/source.Source], memoizing every (name, version) pair
// so repeated encounters become shared edges instead of duplicate
// subtrees. Reverse scans an enumerable repository for the packages
// that directly depend on a target.
//
// The engine is indifferent to where manifests come from: a live
// registry and a static fixture file are interchangeable behind the
// source interfaces.
package depgraph
