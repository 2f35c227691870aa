// Package cli implements the ifscope command-line interface.
//
// Commands:
//   - list: show the built-in fractal catalog
//   - render: write PNG, SVG or JSON renders of an attractor
//   - describe: draw the transform diagram of a system
//   - explore: interactive terminal explorer
//   - serve: HTTP API
//   - cache, config, completion: housekeeping
//
// All commands log through charmbracelet/log; --verbose (-v) enables debug
// output. Settings come from config.toml (see [LoadConfig]) and are
// overridden by flags.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ifscope/pkg/buildinfo"
	"github.com/matzehuels/ifscope/pkg/cache"
	"github.com/matzehuels/ifscope/pkg/ifs"
	"github.com/matzehuels/ifscope/pkg/pipeline"
)

const appName = "ifscope"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger  *log.Logger
	Config  Config
	Catalog *ifs.Catalog

	configPath string
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:  newLogger(w, level),
		Config:  DefaultConfig(),
		Catalog: ifs.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the command tree. The config file is loaded before
// any subcommand runs, so subcommands see c.Config populated. Flag
// defaults are the built-in config; subcommands apply config values to
// flags the user did not set.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "ifscope draws iterated function system fractals",
		Long:         `ifscope renders fractal attractors (Sierpinski triangle, Barnsley fern, Heighway dragon and more) with the chaos game, as images, JSON, an interactive terminal explorer or an HTTP API.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/ifscope/config.toml)")

	root.AddCommand(c.listCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.describeCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ttl, err := c.Config.Cache.ttl()
	if err != nil {
		return nil, err
	}
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(ch, nil, c.Catalog, c.Logger)
	r.TTL = ttl
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.Config.Cache
	if noCache || cfg.Backend == backendNone {
		return cache.NewNullCache(), nil
	}
	if cfg.Backend == backendRedis {
		c.Logger.Debug("connecting to redis", "url", cfg.RedisURL)
		return cache.NewRedisCache(ctx, cfg.RedisURL, cache.WithRedisPrefix(cfg.RedisPrefix))
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the configured directory or $XDG_CACHE_HOME/ifscope,
// falling back to ~/.cache/ifscope.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

func cacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats splits a comma-separated --format value.
func parseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// completeSystems offers catalog names for shell completion.
func (c *CLI) completeSystems(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return c.Catalog.Names(), cobra.ShellCompDirectiveNoFileComp
}
