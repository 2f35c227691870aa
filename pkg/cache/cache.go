// Package cache stores rendered artifacts keyed by the inputs that produced
// them.
//
// A chaos-game run is a pure function of its system, seed and point count,
// so a seeded render can be replayed from cache byte-for-byte. Unseeded
// runs are never cached.
//
// Three backends implement [Cache]:
//
//   - [NullCache]: caching disabled
//   - [FileCache]: JSON entries on local disk, used by the CLI
//   - [RedisCache]: a shared Redis instance, used by the HTTP server
//
// Keys come from a [Keyer]; [DefaultKeyer] hashes every render input
// together with the system's coefficients.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is the default lifetime of a cached artifact.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. ttl <= 0 stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts are the render inputs that distinguish one artifact from
// another.
type ArtifactKeyOpts struct {
	System   string     `json:"system"`
	Seed     uint64     `json:"seed"`
	Points   int        `json:"points"`
	BurnIn   int        `json:"burn_in"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Viewport [3]float64 `json:"viewport"` // scale, x, y; zero means fitted
	Caption  string     `json:"caption,omitempty"`
	Format   string     `json:"format"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key for a rendered artifact. systemHash
	// identifies the exact coefficients so edited definitions miss.
	ArtifactKey(systemHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(systemHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", systemHash, opts)
}
