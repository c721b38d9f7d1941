package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"depscope/pkg/depgraph"
)

func TestToDOT(t *testing.T) {
	leaf := &depgraph.Node{Name: "left-pad", Version: "1.3.0", Depth: 1}
	root := &depgraph.Node{Name: "app", Version: "1.0.0", Dependencies: []*depgraph.Node{leaf}}

	got := ToDOT(root)

	if !strings.HasPrefix(got, "digraph dependencies {") {
		t.Errorf("DOT output missing digraph header:\n%s", got)
	}
	if !strings.Contains(got, `left_pad [label="left-pad\n1.3.0"];`) {
		t.Errorf("DOT output missing sanitized declaration:\n%s", got)
	}
	if !strings.Contains(got, "app -> left_pad;") {
		t.Errorf("DOT output missing edge:\n%s", got)
	}
	if !strings.HasSuffix(strings.TrimRight(got, "\n"), "}") {
		t.Errorf("DOT output not closed:\n%s", got)
	}
}

func TestToDOTCycle(t *testing.T) {
	a := &depgraph.Node{Name: "a", Version: "1.0.0"}
	b := &depgraph.Node{Name: "b", Version: "1.0.0", Depth: 1}
	a.Dependencies = []*depgraph.Node{b}
	b.Dependencies = []*depgraph.Node{a}

	got := ToDOT(a)
	if n := strings.Count(got, "a -> b;"); n != 1 {
		t.Errorf("edge a -> b emitted %d times, want 1", n)
	}
	if n := strings.Count(got, "b -> a;"); n != 1 {
		t.Errorf("edge b -> a emitted %d times, want 1", n)
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := Write(path, "a: \"a\\n1.0.0\"\n"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "a: \"a\\n1.0.0\"\n" {
		t.Errorf("file content = %q", data)
	}
}

func TestWriteBadPath(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "missing", "out.txt"), "x")
	if err == nil {
		t.Fatal("Write() error = nil, want error for missing directory")
	}
}
