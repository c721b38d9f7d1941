package depgraph

// DefaultWorkers is the default size of the per-level fetch pool.
const DefaultWorkers = 8

// Limit bounds traversal depth. The zero value means no limit; use
// LimitOf to set one. An explicit optional type avoids overloading a
// plain int with a magic "unbounded" value.
type Limit struct {
	depth int
	set   bool
}

// LimitOf returns a Limit capped at depth edges from the root.
func LimitOf(depth int) Limit { return Limit{depth: depth, set: true} }

// Unlimited returns the no-limit Limit. Equivalent to the zero value.
func Unlimited() Limit { return Limit{} }

// Reached reports whether a node at the given depth must not be
// expanded further.
func (l Limit) Reached(depth int) bool { return l.set && depth >= l.depth }

// Set reports whether the limit is bounded.
func (l Limit) Set() bool { return l.set }

// Options configures graph construction.
type Options struct {
	Limit   Limit                // Depth bound (default: unbounded)
	Filter  string               // Substring excluding matching dependency names
	Workers int                  // Fetch pool size per BFS level (default: 8)
	Logger  func(string, ...any) // Warning callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by
// defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}
