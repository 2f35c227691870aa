package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ifscope/pkg/cache"
	"github.com/matzehuels/ifscope/pkg/errors"
	"github.com/matzehuels/ifscope/pkg/ifs"
	"github.com/matzehuels/ifscope/pkg/pipeline"
	"github.com/matzehuels/ifscope/pkg/render"
	"github.com/matzehuels/ifscope/pkg/server"
)

// Cache backends.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the contents of config.toml. Flags override these values.
type Config struct {
	Render  RenderConfig  `toml:"render"`
	Cache   CacheConfig   `toml:"cache"`
	Serve   ServeConfig   `toml:"serve"`
	Explore ExploreConfig `toml:"explore"`
}

// RenderConfig holds defaults for `ifscope render`.
type RenderConfig struct {
	System  string   `toml:"system"`
	Points  int      `toml:"points"`
	Width   int      `toml:"width"`
	Height  int      `toml:"height"`
	Seed    uint64   `toml:"seed"` // 0 draws a random seed
	Formats []string `toml:"formats"`
	Zoom    float64  `toml:"zoom"` // 0 fits the point cloud
	PanX    float64  `toml:"pan_x"`
	PanY    float64  `toml:"pan_y"`
	Caption string   `toml:"caption"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend     string `toml:"backend"`
	Dir         string `toml:"dir"`
	TTL         string `toml:"ttl"`
	RedisURL    string `toml:"redis_url"`
	RedisPrefix string `toml:"redis_prefix"`
}

// ServeConfig holds defaults for `ifscope serve`.
type ServeConfig struct {
	Addr      string `toml:"addr"`
	MaxPoints int    `toml:"max_points"`
	Metrics   bool   `toml:"metrics"`
}

// ExploreConfig holds defaults for `ifscope explore`.
type ExploreConfig struct {
	System    string `toml:"system"`
	Points    int    `toml:"points"`
	MaxPoints int    `toml:"max_points"`
	FPS       int    `toml:"fps"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Render: RenderConfig{
			System:  pipeline.DefaultSystem,
			Points:  pipeline.DefaultPoints,
			Width:   render.DefaultWidth,
			Height:  render.DefaultHeight,
			Formats: []string{pipeline.FormatPNG},
		},
		Cache: CacheConfig{
			Backend:     backendFile,
			TTL:         cache.TTLArtifact.String(),
			RedisURL:    "redis://localhost:6379/0",
			RedisPrefix: cache.DefaultRedisPrefix,
		},
		Serve: ServeConfig{
			Addr:      server.DefaultAddr,
			MaxPoints: server.DefaultMaxPoints,
			Metrics:   true,
		},
		Explore: ExploreConfig{
			System:    ifs.Default().Names()[0],
			Points:    20_000,
			MaxPoints: 1_000_000,
			FPS:       30,
		},
	}
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults; an empty path uses [defaultConfigPath].
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	_, err := toml.DecodeFile(path, &cfg)
	if stderrors.Is(err, fs.ErrNotExist) && !explicit {
		return DefaultConfig(), nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Validate checks values that flags cannot fix up later.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case backendFile, backendRedis, backendNone:
	default:
		return fmt.Errorf("cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if _, err := c.Cache.ttl(); err != nil {
		return err
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return err
	}
	if c.Explore.FPS <= 0 || c.Explore.FPS > 120 {
		return fmt.Errorf("explore.fps must be in 1..120, got %d", c.Explore.FPS)
	}
	if c.Explore.MaxPoints <= 0 {
		return fmt.Errorf("explore.max_points must be positive, got %d", c.Explore.MaxPoints)
	}
	if c.Serve.MaxPoints <= 0 {
		return fmt.Errorf("serve.max_points must be positive, got %d", c.Serve.MaxPoints)
	}
	return nil
}

func (c CacheConfig) ttl() (time.Duration, error) {
	if c.TTL == "" {
		return cache.TTLArtifact, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0, fmt.Errorf("cache.ttl: %w", err)
	}
	return d, nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// configDir returns $XDG_CONFIG_HOME/ifscope, falling back to ~/.config/ifscope.
func configDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

func defaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// configCommand prints the effective configuration.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Config.Encode(cmd.OutOrStdout())
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				p, err := defaultConfigPath()
				if err != nil {
					return fmt.Errorf("get config dir: %w", err)
				}
				path = p
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
	return cmd
}
