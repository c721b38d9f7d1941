// Package cli implements the depscope command-line interface.
//
// The root command builds a dependency graph for one package — forward
// transitive traversal by default, direct-dependents scan with
// --reverse — prints it as an ASCII tree on request, writes the
// diagram description to a file, and optionally renders an image.
// Subcommands manage the manifest cache and expose the graph engine
// over HTTP.
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// travel through context.Context.
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"depscope/internal/config"
	"depscope/pkg/buildinfo"
	"depscope/pkg/cache"
	apperrors "depscope/pkg/errors"
)

// graphOpts holds the root command's flags.
type graphOpts struct {
	pkgVersion string // version or dist-tag to start from
	output     string // diagram text file
	tree       bool   // also print the ASCII tree
	maxDepth   int    // depth limit; only honored when the flag is set
	filter     string // substring excluding dependency names
	repoPath   string // static repository fixture; empty = live registry
	reverse    bool   // reverse-dependency mode (requires repoPath)
	render     bool   // render a PNG next to the diagram text
	noCache    bool   // disable the manifest cache
	configPath string
}

// Execute runs the depscope CLI.
func Execute(ctx context.Context) error {
	var (
		verbose bool
		opts    graphOpts
	)

	root := &cobra.Command{
		Use:   "depscope <package>",
		Short: "Depscope draws the dependency graph of a package",
		Long: `Depscope builds the dependency graph of a package and renders it.

Forward mode walks transitive dependencies breadth-first from a live
registry or a static repository file. Reverse mode lists the packages
of a static repository that directly depend on the target. The graph
is written as a diagram description and, on request, printed as an
ASCII tree or rendered to PNG.

Examples:
  depscope express                          # live registry, full depth
  depscope express --max-depth 2 --tree     # shallow, with ASCII tree
  depscope left-pad --repo fixture.json     # offline, static repository
  depscope left-pad --repo fixture.json --reverse`,
		Args:          cobra.ExactArgs(1),
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd, args[0], opts)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("depscope %s\ncommit: %s\nbuilt: %s\n",
		buildinfo.Version, buildinfo.Commit, buildinfo.Date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/depscope/config.toml)")

	flags := root.Flags()
	flags.StringVar(&opts.pkgVersion, "pkg-version", "latest", "package version or dist-tag to start from")
	flags.StringVarP(&opts.output, "output", "o", "dependencies.txt", "diagram output file")
	flags.BoolVar(&opts.tree, "tree", false, "print the graph as an ASCII tree")
	flags.IntVar(&opts.maxDepth, "max-depth", 0, "maximum traversal depth (default unbounded)")
	flags.StringVar(&opts.filter, "filter", "", "exclude dependencies whose name contains this substring")
	flags.StringVar(&opts.repoPath, "repo", "", "static repository JSON file (instead of the live registry)")
	flags.BoolVar(&opts.reverse, "reverse", false, "list packages that depend on <package> (requires --repo)")
	flags.BoolVar(&opts.render, "render", false, "also render a PNG image of the graph")
	flags.BoolVar(&opts.noCache, "no-cache", false, "disable the manifest cache")

	root.AddCommand(newCacheCmd(&opts.configPath))
	root.AddCommand(newServeCmd(&opts.configPath))

	if err := root.ExecuteContext(ctx); err != nil {
		printError("%s", apperrors.UserMessage(err))
		return err
	}
	return nil
}

// newCacheBackend builds the configured cache backend. Invalid backend
// names are a configuration error.
func newCacheBackend(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		backend, err := cache.NewRedisCache(ctx, cfg.Redis.Addr)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "redis cache backend unavailable")
		}
		return backend, nil
	case config.BackendFile, "":
		backend, err := cache.NewFileCache(cfg.CacheDir())
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "cache directory not usable")
		}
		return backend, nil
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "unknown cache backend %q", cfg.Cache.Backend)
	}
}
