package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	charmlog "github.com/charmbracelet/log"

	"depscope/pkg/source/static"
)

const serveFixture = `{
  "packages": {
    "app":   {"version": "1.0.0", "dependencies": {"lib": "2.0.0"}},
    "lib":   {"version": "2.0.0", "dependencies": {"util": "3.0.0"}},
    "util":  {"version": "3.0.0", "dependencies": {}},
    "other": {"version": "0.1.0", "dependencies": {"lib": "2.0.0"}}
  }
}`

func testServer(t *testing.T) http.Handler {
	t.Helper()
	repo, err := static.Parse([]byte(serveFixture))
	if err != nil {
		t.Fatal(err)
	}
	srv := &server{logger: charmlog.New(io.Discard), src: repo, repo: repo}
	return srv.routes()
}

func TestServeGraph(t *testing.T) {
	handler := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/packages/app/graph", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}

	var resp graphResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID == "" {
		t.Error("response id is empty")
	}
	if resp.Root != "app@latest" {
		t.Errorf("root = %q, want app@latest", resp.Root)
	}
	if len(resp.Nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(resp.Nodes))
	}
	if len(resp.Edges) != 2 {
		t.Errorf("edges = %d, want 2", len(resp.Edges))
	}
	if resp.Diagram == "" {
		t.Error("diagram is empty")
	}
}

func TestServeGraphDepthLimit(t *testing.T) {
	handler := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/packages/app/graph?depth=1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	var resp graphResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Nodes) != 2 {
		t.Errorf("nodes = %d, want 2 (root plus one level)", len(resp.Nodes))
	}
}

func TestServeGraphInvalidDepth(t *testing.T) {
	handler := testServer(t)

	for _, depth := range []string{"0", "-2", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/packages/app/graph?depth="+depth, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("depth=%s status = %d, want 400", depth, rec.Code)
		}
	}
}

func TestServeDependents(t *testing.T) {
	handler := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/packages/lib/dependents", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	var resp dependentsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Target != "lib" {
		t.Errorf("target = %q, want lib", resp.Target)
	}
	want := []string{"app@1.0.0", "other@0.1.0"}
	if len(resp.Dependents) != len(want) {
		t.Fatalf("dependents = %v, want %v", resp.Dependents, want)
	}
	for i := range want {
		if resp.Dependents[i] != want[i] {
			t.Errorf("dependents[%d] = %q, want %q", i, resp.Dependents[i], want[i])
		}
	}
}

func TestServeDependentsWithoutRepo(t *testing.T) {
	repo, err := static.Parse([]byte(serveFixture))
	if err != nil {
		t.Fatal(err)
	}
	srv := &server{logger: charmlog.New(io.Discard), src: repo} // no repo: registry mode
	handler := srv.routes()

	req := httptest.NewRequest(http.MethodGet, "/api/packages/lib/dependents", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestParseDepth(t *testing.T) {
	limit, err := parseDepth("")
	if err != nil {
		t.Fatalf("parseDepth(\"\") error = %v", err)
	}
	if limit.Set() {
		t.Error("empty depth should be unbounded")
	}

	limit, err = parseDepth("3")
	if err != nil {
		t.Fatalf("parseDepth(3) error = %v", err)
	}
	if !limit.Set() || !limit.Reached(3) || limit.Reached(2) {
		t.Error("parseDepth(3) produced the wrong limit")
	}

	if _, err := parseDepth("0"); err == nil {
		t.Error("parseDepth(0) error = nil, want error")
	}
	if _, err := parseDepth("x"); err == nil {
		t.Error("parseDepth(x) error = nil, want error")
	}
}
