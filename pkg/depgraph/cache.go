package depgraph

import "sync"

// nodeCache memoizes nodes by identity key for the duration of one
// traversal. Entries are never evicted: a repeated (name, version)
// encounter must resolve to the same instance so that cycles and shared
// dependencies stay shared edges rather than duplicate subtrees.
type nodeCache struct {
	mu    sync.Mutex
	nodes map[string]*Node
}

func newNodeCache() *nodeCache {
	return &nodeCache{nodes: make(map[string]*Node)}
}

// getOrCreate returns the node for (name, version), creating it at the
// given depth if this is the first encounter. The created flag reports
// whether this call created the node. The check-and-insert is atomic so
// that concurrent discovery of the same pair can never produce two
// instances.
func (c *nodeCache) getOrCreate(name, version string, depth int) (n *Node, created bool) {
	key := Key(name, version)

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.nodes[key]; ok {
		return existing, false
	}
	n = &Node{Name: name, Version: version, Depth: depth}
	c.nodes[key] = n
	return n, true
}

// get returns the cached node for key, if present.
func (c *nodeCache) get(key string) (*Node, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.nodes[key]
	return n, ok
}

// len reports the number of distinct nodes discovered so far.
func (c *nodeCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.nodes)
}
