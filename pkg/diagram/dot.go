package diagram

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"depscope/pkg/depgraph"
)

// ToDOT renders the graph as Graphviz DOT, using the same name-keyed
// identity and deduplication as Serialize. Labels show the package
// name with its version on a second line.
func ToDOT(roots ...*depgraph.Node) string {
	decls, edges := collect(roots)

	var buf bytes.Buffer
	buf.WriteString("digraph dependencies {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("\n")

	for _, d := range decls {
		fmt.Fprintf(&buf, "  %s [label=%q];\n", d.id, d.label)
	}
	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %s -> %s;\n", e.from, e.to)
	}
	buf.WriteString("}\n")

	return buf.String()
}

// RenderPNG renders a DOT graph to PNG bytes with the embedded
// Graphviz engine.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
