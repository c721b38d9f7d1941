package diagram

import (
	"fmt"
	"io"

	"depscope/pkg/depgraph"
)

// Tree writes the graph under root to w as an indented ASCII tree with
// box-drawing connectors.
//
// Identities are tracked by name@version: re-encountering a printed
// identity emits its connector line once more, to show that the edge
// exists, but does not descend into its children again. That keeps the
// output finite on cyclic graphs. The walk uses an explicit stack, so
// graph depth is not bounded by the call stack.
func Tree(w io.Writer, root *depgraph.Node) {
	fmt.Fprintln(w, root.Key())

	visited := map[string]bool{root.Key(): true}

	type frame struct {
		node   *depgraph.Node
		prefix string
		last   bool
	}

	var stack []frame
	for i := len(root.Dependencies) - 1; i >= 0; i-- {
		stack = append(stack, frame{
			node: root.Dependencies[i],
			last: i == len(root.Dependencies)-1,
		})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		connector, childPrefix := "├── ", f.prefix+"│   "
		if f.last {
			connector, childPrefix = "└── ", f.prefix+"    "
		}
		fmt.Fprintf(w, "%s%s%s\n", f.prefix, connector, f.node.Key())

		if visited[f.node.Key()] {
			continue
		}
		visited[f.node.Key()] = true

		deps := f.node.Dependencies
		for i := len(deps) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: deps[i], prefix: childPrefix, last: i == len(deps)-1})
		}
	}
}
