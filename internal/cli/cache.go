package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isograph/pkg/cache"
	"github.com/matzehuels/isograph/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the HTTP response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached HTTP responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.clearCache(cmd.Context())
		},
	}
}

func (c *CLI) clearCache(ctx context.Context) error {
	cfg := c.settings()
	switch cfg.Cache.Backend {
	case config.BackendNone:
		printInfo("Response cache is disabled")
		return nil
	case config.BackendRedis:
		rc, err := cache.DialRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer rc.Close()
		n, err := rc.Clear(ctx)
		if err != nil {
			return err
		}
		printSuccess("Cleared %d cached entries", n)
		printDetail("Redis: %s", cfg.Redis.Addr)
		return nil
	}

	dir, err := cacheDir(cfg)
	if err != nil {
		return err
	}
	if !fileExists(dir) {
		printInfo("Cache is empty")
		return nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	if err := fc.Clear(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	printSuccess("Cleared cache")
	printDetail("Directory: %s", dir)
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir(c.settings())
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// cacheDir returns the configured file cache directory.
func cacheDir(cfg *config.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cache.DefaultDir()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
