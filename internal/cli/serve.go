package cli

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"depscope/internal/config"
	"depscope/pkg/depgraph"
	"depscope/pkg/diagram"
	apperrors "depscope/pkg/errors"
	"depscope/pkg/source"
	"depscope/pkg/source/registry"
	"depscope/pkg/source/static"
)

// newServeCmd exposes the graph engine over HTTP.
func newServeCmd(configPath *string) *cobra.Command {
	var (
		addr     string
		repoPath string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the graph API over HTTP",
		Long: `Serve starts an HTTP API for building dependency graphs.

  GET /api/packages/{name}/graph?version=&depth=&filter=
  GET /api/packages/{name}/dependents?depth=

The dependents endpoint scans a static repository and is only
available when --repo is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			srv := &server{logger: logger}
			if repoPath != "" {
				repo, err := static.Load(repoPath)
				if err != nil {
					return apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "loading repository file")
				}
				srv.src = repo
				srv.repo = repo
			} else {
				backend, err := newCacheBackend(ctx, cfg, noCache)
				if err != nil {
					return err
				}
				defer backend.Close()
				srv.src = registry.New(cfg.Registry.URL, backend, cfg.Cache.TTL.Std())
			}

			httpSrv := &http.Server{
				Addr:              addr,
				Handler:           srv.routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			go func() {
				<-ctx.Done()
				httpSrv.Close()
			}()

			printInfo("Listening on %s", styleTitle.Render(addr))
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return apperrors.Wrap(apperrors.ErrCodeInternal, err, "http server")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&repoPath, "repo", "", "static repository JSON file (instead of the live registry)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the manifest cache")
	return cmd
}

type server struct {
	logger interface{ Infof(string, ...interface{}) }
	src    source.Source
	repo   source.Repository // nil when serving from the live registry
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Route("/api/packages/{name}", func(r chi.Router) {
		r.Get("/graph", s.handleGraph)
		r.Get("/dependents", s.handleDependents)
	})
	return r
}

// graphResponse is the JSON shape of a built graph. Each response
// carries a unique build id for client-side correlation.
type graphResponse struct {
	ID      string     `json:"id"`
	Root    string     `json:"root"`
	Nodes   []nodeJSON `json:"nodes"`
	Edges   []edgeJSON `json:"edges"`
	Diagram string     `json:"diagram"`
}

type nodeJSON struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Depth   int    `json:"depth"`
}

type edgeJSON struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (s *server) handleGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := apperrors.ValidatePackageName(name); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	version := r.URL.Query().Get("version")
	if version == "" {
		version = "latest"
	}
	limit, err := parseDepth(r.URL.Query().Get("depth"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	root, err := depgraph.Build(r.Context(), name, version, s.src, depgraph.Options{
		Limit:  limit,
		Filter: r.URL.Query().Get("filter"),
		Logger: s.logger.Infof,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := graphResponse{
		ID:      uuid.NewString(),
		Root:    root.Key(),
		Diagram: diagram.Serialize(root),
	}
	resp.Nodes, resp.Edges = flatten(root)
	writeJSON(w, http.StatusOK, resp)
}

// dependentsResponse lists the direct dependents of a package.
type dependentsResponse struct {
	ID         string   `json:"id"`
	Target     string   `json:"target"`
	Dependents []string `json:"dependents"`
}

func (s *server) handleDependents(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		writeError(w, http.StatusBadRequest,
			apperrors.New(apperrors.ErrCodeInvalidInput, "dependents requires a static repository"))
		return
	}
	name := chi.URLParam(r, "name")
	if err := apperrors.ValidatePackageName(name); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	limit, err := parseDepth(r.URL.Query().Get("depth"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	dependents, err := depgraph.Reverse(r.Context(), name, s.repo, depgraph.Options{
		Limit:  limit,
		Logger: s.logger.Infof,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, dependentsResponse{
		ID:         uuid.NewString(),
		Target:     name,
		Dependents: dependents,
	})
}

// parseDepth parses the optional depth query parameter. Empty means
// unbounded; values below one are rejected.
func parseDepth(raw string) (depgraph.Limit, error) {
	if raw == "" {
		return depgraph.Unlimited(), nil
	}
	depth, err := strconv.Atoi(raw)
	if err != nil {
		return depgraph.Limit{}, apperrors.New(apperrors.ErrCodeInvalidDepth, "depth must be an integer, got %q", raw)
	}
	if err := apperrors.ValidateMaxDepth(depth); err != nil {
		return depgraph.Limit{}, err
	}
	return depgraph.LimitOf(depth), nil
}

// flatten walks the graph and returns its nodes and edges in
// first-visit order.
func flatten(root *depgraph.Node) ([]nodeJSON, []edgeJSON) {
	nodes := []nodeJSON{}
	edges := []edgeJSON{}
	seen := map[*depgraph.Node]bool{}
	queue := []*depgraph.Node{root}
	seen[root] = true
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		nodes = append(nodes, nodeJSON{ID: n.Key(), Name: n.Name, Version: n.Version, Depth: n.Depth})
		for _, dep := range n.Dependencies {
			edges = append(edges, edgeJSON{From: n.Key(), To: dep.Key()})
			if !seen[dep] {
				seen[dep] = true
				queue = append(queue, dep)
			}
		}
	}
	return nodes, edges
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{
		"error": apperrors.UserMessage(err),
		"code":  string(apperrors.GetCode(err)),
	})
}
