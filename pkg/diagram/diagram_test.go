package diagram

import (
	"strings"
	"testing"

	"depscope/pkg/depgraph"
)

func TestSanitizeID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"left-pad", "left_pad"},
		{"@scope/pkg", "_scope_pkg"},
		{"plain_name", "plain_name"},
		{"dots.and.digits9", "dots_and_digits9"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeID(tt.in); got != tt.want {
			t.Errorf("SanitizeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSerializeSimpleGraph(t *testing.T) {
	leaf := &depgraph.Node{Name: "leaf", Version: "2.0.0", Depth: 1}
	root := &depgraph.Node{Name: "app", Version: "1.0.0", Dependencies: []*depgraph.Node{leaf}}

	got := Serialize(root)
	want := "app: \"app\\n1.0.0\"\n" +
		"leaf: \"leaf\\n2.0.0\"\n" +
		"\n" +
		"app -> leaf\n"
	if got != want {
		t.Errorf("Serialize() =\n%s\nwant\n%s", got, want)
	}
}

func TestSerializeCycle(t *testing.T) {
	a := &depgraph.Node{Name: "a", Version: "1.0.0"}
	b := &depgraph.Node{Name: "b", Version: "1.0.0", Depth: 1}
	a.Dependencies = []*depgraph.Node{b}
	b.Dependencies = []*depgraph.Node{a}

	got := Serialize(a)

	var nodeLines, edgeLines []string
	for _, line := range strings.Split(strings.TrimRight(got, "\n"), "\n") {
		switch {
		case strings.Contains(line, "->"):
			edgeLines = append(edgeLines, line)
		case line != "":
			nodeLines = append(nodeLines, line)
		}
	}
	if len(nodeLines) != 2 {
		t.Errorf("node declarations = %v, want 2 lines", nodeLines)
	}
	if len(edgeLines) != 2 {
		t.Errorf("edges = %v, want 2 lines", edgeLines)
	}
	wantEdges := map[string]bool{"a -> b": true, "b -> a": true}
	for _, e := range edgeLines {
		if !wantEdges[e] {
			t.Errorf("unexpected edge %q", e)
		}
	}
}

func TestSerializeNameCollapse(t *testing.T) {
	// Two versions of one name share a sanitized identifier; the first
	// visited label wins and the declaration appears once.
	v1 := &depgraph.Node{Name: "dup", Version: "1.0.0", Depth: 1}
	v2 := &depgraph.Node{Name: "dup", Version: "2.0.0", Depth: 2}
	mid := &depgraph.Node{Name: "mid", Version: "1.0.0", Depth: 1, Dependencies: []*depgraph.Node{v2}}
	root := &depgraph.Node{Name: "app", Version: "1.0.0", Dependencies: []*depgraph.Node{v1, mid}}

	got := Serialize(root)

	if n := strings.Count(got, "dup: "); n != 1 {
		t.Errorf("dup declared %d times, want 1", n)
	}
	if !strings.Contains(got, `dup: "dup\n1.0.0"`) {
		t.Errorf("declaration should carry the first-visited label, got:\n%s", got)
	}
	// Both edges survive even though mid -> dup and app -> dup target
	// different versions of the collapsed identifier.
	for _, edge := range []string{"app -> dup", "mid -> dup"} {
		if !strings.Contains(got, edge) {
			t.Errorf("missing edge %q in:\n%s", edge, got)
		}
	}
}

func TestSerializeDuplicateEdges(t *testing.T) {
	shared := &depgraph.Node{Name: "shared", Version: "1.0.0", Depth: 1}
	root := &depgraph.Node{
		Name: "app", Version: "1.0.0",
		Dependencies: []*depgraph.Node{shared, shared},
	}

	got := Serialize(root)
	if n := strings.Count(got, "app -> shared"); n != 1 {
		t.Errorf("edge emitted %d times, want 1", n)
	}
}

func TestSerializeDeterministic(t *testing.T) {
	b := &depgraph.Node{Name: "b", Version: "1.0.0", Depth: 1}
	c := &depgraph.Node{Name: "c", Version: "1.0.0", Depth: 1}
	root := &depgraph.Node{Name: "a", Version: "1.0.0", Dependencies: []*depgraph.Node{b, c}}

	first := Serialize(root)
	for range 5 {
		if got := Serialize(root); got != first {
			t.Fatalf("Serialize() not deterministic:\n%s\nvs\n%s", got, first)
		}
	}
}

func TestSerializeSingleNode(t *testing.T) {
	root := &depgraph.Node{Name: "lonely", Version: "0.0.1"}

	got := Serialize(root)
	want := "lonely: \"lonely\\n0.0.1\"\n"
	if got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerializeAllForest(t *testing.T) {
	target := &depgraph.Node{Name: "target", Version: "1.0.0", Depth: 1}
	d1 := &depgraph.Node{Name: "one", Version: "1.0.0", Dependencies: []*depgraph.Node{target}}
	d2 := &depgraph.Node{Name: "two", Version: "1.0.0", Dependencies: []*depgraph.Node{target}}

	got := SerializeAll([]*depgraph.Node{d1, d2})

	if n := strings.Count(got, "target: "); n != 1 {
		t.Errorf("target declared %d times, want 1", n)
	}
	for _, edge := range []string{"one -> target", "two -> target"} {
		if !strings.Contains(got, edge) {
			t.Errorf("missing edge %q in:\n%s", edge, got)
		}
	}
}
