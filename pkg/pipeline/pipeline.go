// Package pipeline runs the generate → render pipeline shared by the CLI
// and the HTTP server.
//
// A run looks up a system in the catalog, plays the chaos game and encodes
// the points in each requested format. Seeded runs are deterministic, so
// their artifacts are cached; unseeded runs draw a fresh seed, report it in
// [Result.Seed], and bypass the cache.
//
//	runner := pipeline.NewRunner(c, nil, ifs.Default(), logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    System:  "fern",
//	    Points:  100000,
//	    Seed:    pipeline.Seed(42),
//	    Formats: []string{"png"},
//	})
//	png := result.Artifacts["png"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ifscope/pkg/cache"
	"github.com/matzehuels/ifscope/pkg/errors"
	"github.com/matzehuels/ifscope/pkg/ifs"
	"github.com/matzehuels/ifscope/pkg/render"
)

const (
	// DefaultPoints is the point count callers offer when the user gives
	// none. Options.Points of 0 is a valid request for no points.
	DefaultPoints = ifs.DefaultPoints

	// MaxPoints caps a single run.
	MaxPoints = 10_000_000

	// DefaultSystem is used when Options.System is empty.
	DefaultSystem = "sierpinski"
)

// Output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatPNG, FormatSVG, FormatJSON}

// Options configures a pipeline run.
type Options struct {
	System  string   `json:"system"`
	Points  int      `json:"points,omitempty"`
	Seed    *uint64  `json:"seed,omitempty"`    // nil draws a random seed
	BurnIn  int      `json:"burn_in,omitempty"` // 0 uses ifs.BurnIn
	Formats []string `json:"formats,omitempty"`

	Width    int              `json:"width,omitempty"`
	Height   int              `json:"height,omitempty"`
	Viewport *render.Viewport `json:"viewport,omitempty"` // nil fits the point cloud
	Caption  string           `json:"caption,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Seed returns a pointer to s for [Options.Seed].
func Seed(s uint64) *uint64 { return &s }

// Result holds the outputs of a run.
type Result struct {
	System *ifs.System
	Seed   uint64

	// Points is nil when every artifact came from cache.
	Points []ifs.Point

	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats records timing for a run.
type Stats struct {
	Points       int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo reports cache usage for a run.
type CacheInfo struct {
	Cacheable bool // run was seeded
	RenderHit bool // every artifact came from cache
}

// ValidateFormat checks that format is supported. Formats are
// case-sensitive.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateFormats checks every entry of formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// SetDefaults fills zero fields.
func (o *Options) SetDefaults() {
	if o.System == "" {
		o.System = DefaultSystem
	}
	if o.BurnIn == 0 {
		o.BurnIn = ifs.BurnIn
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if o.Width == 0 {
		o.Width = render.DefaultWidth
	}
	if o.Height == 0 {
		o.Height = render.DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the option values. Call [Options.SetDefaults] first.
func (o *Options) Validate() error {
	if err := errors.ValidateSystemName(o.System); err != nil {
		// No catalog entry can carry a malformed name.
		return errors.Wrap(errors.ErrCodeUnknownSystem, err, "unknown system: %q", o.System)
	}
	if err := errors.ValidateCount(o.Points, MaxPoints); err != nil {
		return err
	}
	if o.BurnIn < 0 {
		return errors.New(errors.ErrCodeInvalidCount, "burn-in must be non-negative, got %d", o.BurnIn)
	}
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if o.Viewport != nil {
		if err := o.Viewport.Validate(); err != nil {
			return err
		}
	}
	return ValidateFormats(o.Formats)
}

// ValidateAndSetDefaults applies defaults and validates. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.Formats = dedupe(o.Formats)
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns the cache key inputs for format.
func (o *Options) ArtifactKeyOpts(format string, seed uint64) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		System:  o.System,
		Seed:    seed,
		Points:  o.Points,
		BurnIn:  o.BurnIn,
		Width:   o.Width,
		Height:  o.Height,
		Caption: o.Caption,
		Format:  format,
	}
	if format == FormatJSON {
		// JSON ignores raster settings.
		k.Width, k.Height, k.Caption = 0, 0, ""
	} else if o.Viewport != nil {
		k.Viewport = [3]float64{o.Viewport.Scale, o.Viewport.X, o.Viewport.Y}
	}
	return k
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
