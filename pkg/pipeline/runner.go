package pipeline

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ifscope/pkg/cache"
	"github.com/matzehuels/ifscope/pkg/ifs"
	"github.com/matzehuels/ifscope/pkg/observability"
)

// Runner executes pipeline runs against a catalog with caching.
//
// A Runner holds no per-run state; one Runner may serve concurrent
// Execute calls.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Catalog *ifs.Catalog
	Logger  *log.Logger

	// TTL is the lifetime of stored artifacts; <= 0 stores without expiry.
	TTL time.Duration
}

// NewRunner returns a Runner. A nil cache disables caching, a nil keyer
// uses [cache.DefaultKeyer] and a nil catalog uses [ifs.Default].
func NewRunner(c cache.Cache, keyer cache.Keyer, catalog *ifs.Catalog, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if catalog == nil {
		catalog = ifs.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Catalog: catalog, Logger: logger, TTL: cache.TTLArtifact}
}

// NewRNG returns the generator used for a run seeded with seed.
func NewRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Execute runs the pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	sys, err := r.Catalog.Lookup(opts.System)
	if err != nil {
		return nil, err
	}

	result := &Result{
		System:    sys,
		Stats:     Stats{Points: opts.Points},
		CacheInfo: CacheInfo{Cacheable: opts.Seed != nil},
	}
	if opts.Seed != nil {
		result.Seed = *opts.Seed
	} else {
		result.Seed = rand.Uint64()
	}

	var sysHash string
	if result.CacheInfo.Cacheable {
		sysHash = SystemHash(sys)
		if !opts.Refresh {
			if artifacts, ok := r.lookup(ctx, sysHash, result.Seed, opts); ok {
				logger.Debug("artifacts from cache", "system", sys.Name(), "seed", result.Seed)
				result.Artifacts = artifacts
				result.CacheInfo.RenderHit = true
				return result, nil
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	observability.Generate().OnGenerateStart(ctx, sys.Name(), opts.Points)
	start := time.Now()
	result.Points = ifs.GenerateWithBurnIn(sys, opts.Points, opts.BurnIn, NewRNG(result.Seed))
	result.Stats.GenerateTime = time.Since(start)
	observability.Generate().OnGenerateComplete(ctx, sys.Name(), opts.Points, result.Stats.GenerateTime)
	logger.Debug("generated", "system", sys.Name(), "points", opts.Points, "seed", result.Seed,
		"elapsed", result.Stats.GenerateTime)

	start = time.Now()
	artifacts, err := Render(ctx, result.Points, sys, result.Seed, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	logger.Debug("rendered", "formats", opts.Formats, "elapsed", result.Stats.RenderTime)

	if result.CacheInfo.Cacheable {
		r.store(ctx, sysHash, result.Seed, opts, artifacts)
	}
	return result, nil
}

// lookup returns every requested artifact from cache, or false if any is
// missing.
func (r *Runner) lookup(ctx context.Context, sysHash string, seed uint64, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(sysHash, opts.ArtifactKeyOpts(format, seed))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "format", format, "err", err)
		}
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, format)
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, format)
		artifacts[format] = data
	}
	return artifacts, true
}

func (r *Runner) store(ctx context.Context, sysHash string, seed uint64, opts Options, artifacts map[string][]byte) {
	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(sysHash, opts.ArtifactKeyOpts(format, seed))
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, format, len(data))
	}
}

// SystemHash identifies the exact definition of sys.
func SystemHash(sys *ifs.System) string {
	data, _ := json.Marshal(struct {
		Name       string       `json:"name"`
		Transforms []ifs.Affine `json:"transforms"`
	}{sys.Name(), sys.Transforms()})
	return cache.Hash(data)
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
