// Package diagram turns dependency graphs into textual renderings: the
// line-oriented node/edge diagram description, Graphviz DOT, and an
// indented ASCII tree. All traversals are iterative and cycle-safe.
package diagram

import (
	"fmt"
	"regexp"
	"strings"

	"depscope/pkg/depgraph"
)

var idRE = regexp.MustCompile(`[^A-Za-z0-9_]`)

// SanitizeID rewrites s so it is safe as a diagram identifier: every
// character outside [A-Za-z0-9_] becomes an underscore.
func SanitizeID(s string) string { return idRE.ReplaceAllString(s, "_") }

// Serialize renders the graph under root as a diagram description with
// two statement kinds: `id: "label"` node declarations and
// `parent -> child` edges.
//
// Identifiers are sanitized package names, so two nodes sharing a name
// (at different versions) collapse into one declaration carrying the
// label of whichever was visited first. Each distinct declaration and
// each distinct ordered edge pair appears exactly once no matter how
// many paths reach it.
func Serialize(root *depgraph.Node) string {
	return SerializeAll([]*depgraph.Node{root})
}

// SerializeAll is Serialize over a forest sharing one identity space,
// used by the reverse view where several dependents point at a common
// target.
func SerializeAll(roots []*depgraph.Node) string {
	decls, edges := collect(roots)

	var b strings.Builder
	for _, d := range decls {
		fmt.Fprintf(&b, "%s: %q\n", d.id, d.label)
	}
	if len(edges) > 0 {
		b.WriteString("\n")
	}
	for _, e := range edges {
		fmt.Fprintf(&b, "%s -> %s\n", e.from, e.to)
	}
	return b.String()
}

type nodeDecl struct{ id, label string }

type edgePair struct{ from, to string }

// collect walks the graph iteratively and returns the deduplicated
// declarations and edges in traversal order. A node whose children
// have been enumerated is marked expanded and never re-descended;
// reaching it again still records the incoming edge.
func collect(roots []*depgraph.Node) ([]nodeDecl, []edgePair) {
	var (
		decls    []nodeDecl
		edges    []edgePair
		declared = make(map[string]bool)
		seen     = make(map[edgePair]bool)
		expanded = make(map[*depgraph.Node]bool)
	)

	declare := func(n *depgraph.Node) string {
		id := SanitizeID(n.Name)
		if !declared[id] {
			declared[id] = true
			decls = append(decls, nodeDecl{id: id, label: n.Name + "\n" + n.Version})
		}
		return id
	}

	var stack []*depgraph.Node
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		id := declare(n)
		if expanded[n] {
			continue
		}
		expanded[n] = true

		for _, dep := range n.Dependencies {
			e := edgePair{from: id, to: declare(dep)}
			if !seen[e] {
				seen[e] = true
				edges = append(edges, e)
			}
		}
		// Reverse push so the first child is expanded first.
		for i := len(n.Dependencies) - 1; i >= 0; i-- {
			if !expanded[n.Dependencies[i]] {
				stack = append(stack, n.Dependencies[i])
			}
		}
	}

	return decls, edges
}
