package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"depscope/internal/config"
	apperrors "depscope/pkg/errors"
)

// newCacheCmd manages the on-disk manifest cache.
func newCacheCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the manifest cache",
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached manifests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			dir := cfg.CacheDir()
			if err := os.RemoveAll(dir); err != nil {
				return apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "clearing cache")
			}
			printSuccess("Cleared cache at %s", styleTitle.Render(dir))
			return nil
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			fmt.Println(cfg.CacheDir())
			return nil
		},
	}

	cmd.AddCommand(clear, path)
	return cmd
}
