package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BardicNoel/perktree/pkg/cache"
	"github.com/BardicNoel/perktree/pkg/config"
	perrors "github.com/BardicNoel/perktree/pkg/errors"
)

var cacheFlagBindings = flagBindings{
	"cache.backend": "cache-backend",
	"cache.dir":     "cache-dir",
}

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout cache",
	}

	addCacheFlags(cmd.PersistentFlags())

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePurgeCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// fileCache opens the configured file cache. Other backends have no local
// directory to manage.
func (c *CLI) fileCache(cmd *cobra.Command) (*cache.FileCache, error) {
	cfg, err := c.loadConfig(cmd, cacheFlagBindings)
	if err != nil {
		return nil, err
	}
	if cfg.Cache.Backend != config.BackendFile {
		return nil, perrors.New(perrors.ErrCodeInvalidConfig,
			"cache backend is %q; only the file backend can be managed here", cfg.Cache.Backend)
	}
	return cache.NewFileCache(cfg.Cache.Dir)
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached layout and artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := c.fileCache(cmd)
			if err != nil {
				return err
			}
			if err := fc.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cache cleared")
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

func (c *CLI) cachePurgeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Remove expired cache entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := c.fileCache(cmd)
			if err != nil {
				return err
			}
			n, err := fc.Purge(cmd.Context())
			if err != nil {
				return fmt.Errorf("purge cache: %w", err)
			}
			printSuccess("Purged %d expired entries", n)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, cacheFlagBindings)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, cfg.Cache.Dir)
			return nil
		},
	}
}
