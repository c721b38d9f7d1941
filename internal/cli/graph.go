package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"depscope/internal/config"
	"depscope/pkg/depgraph"
	"depscope/pkg/diagram"
	apperrors "depscope/pkg/errors"
	"depscope/pkg/source/registry"
	"depscope/pkg/source/static"
)

// runGraph is the root command: build the graph, print, serialize,
// render.
func runGraph(cmd *cobra.Command, pkg string, opts graphOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if err := apperrors.ValidatePackageName(pkg); err != nil {
		return err
	}
	if err := apperrors.ValidateOutputPath(opts.output); err != nil {
		return err
	}
	limit := depgraph.Unlimited()
	if cmd.Flags().Changed("max-depth") {
		if err := apperrors.ValidateMaxDepth(opts.maxDepth); err != nil {
			return err
		}
		limit = depgraph.LimitOf(opts.maxDepth)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	if opts.reverse {
		return runReverse(ctx, pkg, limit, opts)
	}

	buildOpts := depgraph.Options{
		Limit:  limit,
		Filter: opts.filter,
		Logger: logger.Infof,
	}

	var root *depgraph.Node
	if opts.repoPath != "" {
		repo, err := static.Load(opts.repoPath)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "loading repository file")
		}
		logger.Debug("using static repository", "path", opts.repoPath, "packages", repo.Len())
		version := opts.pkgVersion
		if !cmd.Flags().Changed("pkg-version") {
			version = repo.Version(pkg)
		}
		root, err = depgraph.Build(ctx, pkg, version, repo, buildOpts)
		if err != nil {
			return err
		}
	} else {
		backend, err := newCacheBackend(ctx, cfg, opts.noCache)
		if err != nil {
			return err
		}
		defer backend.Close()

		client := registry.New(cfg.Registry.URL, backend, cfg.Cache.TTL.Std())
		spin := newSpinner(ctx, fmt.Sprintf("Resolving %s...", pkg))
		spin.start()
		prog := newProgress(logger)
		root, err = depgraph.Build(ctx, pkg, opts.pkgVersion, client, buildOpts)
		spin.stop()
		if err != nil {
			return err
		}
		prog.done("graph built")
	}

	printSuccess("Built dependency graph for %s", styleTitle.Render(root.Key()))
	printDetail("%s nodes", styleNumber.Render(fmt.Sprintf("%d", countNodes(root))))

	if opts.tree {
		diagram.Tree(os.Stdout, root)
	}

	text := diagram.Serialize(root)
	if err := diagram.Write(opts.output, text); err != nil {
		return err
	}
	printSuccess("Wrote diagram to %s", styleTitle.Render(opts.output))

	renderGraph(ctx, cfg, opts, root)
	return nil
}

// renderGraph produces an image of the diagram when asked to. A failed
// render is reported but never removes the diagram file or changes the
// exit status.
func renderGraph(ctx context.Context, cfg config.Config, opts graphOpts, root *depgraph.Node) {
	if opts.render {
		png, err := diagram.RenderPNG(ctx, diagram.ToDOT(root))
		if err != nil {
			printWarning("rendering failed: %v", err)
		} else {
			imgPath := opts.output + ".png"
			if err := os.WriteFile(imgPath, png, 0o644); err != nil {
				printWarning("writing image failed: %v", err)
			} else {
				printSuccess("Rendered %s", styleTitle.Render(imgPath))
			}
		}
	}
	if cfg.Render.Command != "" {
		if err := diagram.RenderExternal(ctx, cfg.Render.Command, opts.output); err != nil {
			printWarning("external renderer failed: %v", err)
		} else {
			printSuccess("Rendered with %s", styleTitle.Render(cfg.Render.Command))
		}
	}
}

// countNodes walks the graph and counts distinct nodes.
func countNodes(root *depgraph.Node) int {
	seen := map[*depgraph.Node]bool{}
	stack := []*depgraph.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		stack = append(stack, n.Dependencies...)
	}
	return len(seen)
}

// runReverse lists the packages of a static repository that directly
// depend on the target, and optionally serializes the result as a
// diagram.
func runReverse(ctx context.Context, pkg string, limit depgraph.Limit, opts graphOpts) error {
	logger := loggerFromContext(ctx)
	if opts.repoPath == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "--reverse requires --repo")
	}
	repo, err := static.Load(opts.repoPath)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "loading repository file")
	}

	dependents, err := depgraph.Reverse(ctx, pkg, repo, depgraph.Options{
		Limit:  limit,
		Logger: logger.Infof,
	})
	if err != nil {
		return err
	}

	if len(dependents) == 0 {
		printInfo("No packages depend on %s", styleTitle.Render(pkg))
		return nil
	}
	printSuccess("%s packages depend on %s",
		styleNumber.Render(fmt.Sprintf("%d", len(dependents))), styleTitle.Render(pkg))
	for _, dep := range dependents {
		fmt.Println(dep)
	}

	text := diagram.SerializeAll(dependentsForest(pkg, repo.Version(pkg), dependents))
	if err := diagram.Write(opts.output, text); err != nil {
		return err
	}
	printSuccess("Wrote diagram to %s", styleTitle.Render(opts.output))
	return nil
}

// dependentsForest builds a one-level graph with every dependent
// pointing at a shared target node.
func dependentsForest(target, version string, dependents []string) []*depgraph.Node {
	targetNode := &depgraph.Node{Name: target, Version: version, Depth: 1}
	roots := make([]*depgraph.Node, 0, len(dependents))
	for _, key := range dependents {
		name, ver := splitKey(key)
		roots = append(roots, &depgraph.Node{
			Name:         name,
			Version:      ver,
			Dependencies: []*depgraph.Node{targetNode},
		})
	}
	return roots
}

func splitKey(key string) (name, version string) {
	if i := strings.LastIndex(key, "@"); i > 0 {
		return key[:i], key[i+1:]
	}
	return key, ""
}
