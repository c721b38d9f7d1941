package depgraph

// Node represents one resolved package instance in a dependency graph.
//
// A (Name, Version) pair identifies exactly one Node per traversal: every
// edge that resolves to the same pair points at the same instance, which
// is what lets cycles and diamond-shared dependencies stay a finite graph
// instead of unrolling into an unbounded tree. Nodes may therefore have
// multiple incoming edges; the whole graph shares one lifetime and is
// released together with the root.
type Node struct {
	Name         string  // Package name (never empty)
	Version      string  // Declared version or range string
	Depth        int     // Distance in edges from the root
	Dependencies []*Node // Outgoing edges, in resolution order
}

// Key returns the node's identity key, Name@Version.
func (n *Node) Key() string { return Key(n.Name, n.Version) }

// Key builds the identity key for a (name, version) pair. The "@"
// separator keeps the mapping injective for registry-style names and
// version strings, which cannot themselves contain a bare "@" in the
// position used here.
func Key(name, version string) string { return name + "@" + version }
