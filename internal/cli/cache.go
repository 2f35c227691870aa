package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ifscope/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render cache",
	}
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached renders",
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := c.newCache(cmd.Context(), false)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer ch.Close()

			out := newPrinter(cmd.OutOrStdout())
			var n int
			switch ch := ch.(type) {
			case *cache.FileCache:
				n, err = ch.Clear()
				if err == nil {
					out.success("Cleared %d cached renders", n)
					out.detail("Directory: %s", ch.Dir())
				}
			case *cache.RedisCache:
				n, err = ch.Clear(cmd.Context())
				if err == nil {
					out.success("Cleared %d cached renders", n)
					out.detail("Redis: %s", c.Config.Cache.RedisURL)
				}
			default:
				out.info("Cache is disabled")
			}
			return err
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.Config.Cache.Backend != backendFile {
				newPrinter(cmd.ErrOrStderr()).warn("cache backend is %q", c.Config.Cache.Backend)
			}
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
