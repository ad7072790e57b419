package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout, artifact and generator cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cacheInfoCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// openFileCache opens the configured cache when it is file-backed.
func (c *CLI) openFileCache(ctx context.Context) (*cache.FileCache, error) {
	if c.Config.Cache.Backend != config.CacheFile {
		return nil, fmt.Errorf("cache backend is %q; only the file cache can be managed locally", c.Config.Cache.Backend)
	}
	backend, err := c.Config.Cache.Open(ctx)
	if err != nil {
		return nil, err
	}
	fc, ok := backend.(*cache.FileCache)
	if !ok {
		return nil, fmt.Errorf("cache directory unavailable")
	}
	return fc, nil
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := c.openFileCache(cmd.Context())
			if err != nil {
				return err
			}
			count, err := fc.Clear()
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache backend and usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			printKeyValue("Backend", c.Config.Cache.Backend)
			printKeyValue("TTL", c.Config.Cache.TTL.String())
			switch c.Config.Cache.Backend {
			case config.CacheRedis:
				printKeyValue("Redis", c.Config.Cache.RedisAddr)
				return nil
			case config.CacheNone:
				return nil
			}

			fc, err := c.openFileCache(cmd.Context())
			if err != nil {
				return err
			}
			entries, size, err := fc.Usage()
			if err != nil {
				return fmt.Errorf("read cache: %w", err)
			}
			printKeyValue("Directory", fc.Dir())
			printKeyValue("Entries", fmt.Sprintf("%d", entries))
			printKeyValue("Size", formatBytes(size))
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.Config.Cache.Dir
			if dir == "" {
				var err error
				if dir, err = config.CacheDir(); err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
