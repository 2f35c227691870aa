package ifs

import (
	"math"
	"sync"

	"github.com/matzehuels/ifscope/pkg/errors"
)

// Definition is the raw description of a system before validation.
type Definition struct {
	Name        string
	Description string
	Transforms  []Affine
}

// Catalog is a read-only, ordered set of validated systems addressed by name
// or index.
type Catalog struct {
	systems []*System
	index   map[string]int
}

// NewCatalog validates every definition and returns the catalog in definition
// order. An invalid definition, a bad name, or a duplicate name rejects the
// whole catalog with an INVALID_SYSTEM error.
func NewCatalog(defs ...Definition) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(defs))}
	for _, d := range defs {
		if err := errors.ValidateSystemName(d.Name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSystem, err, "catalog entry %d", len(c.systems))
		}
		if _, dup := c.index[d.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidSystem, "duplicate system name %q", d.Name)
		}
		sys, err := NewSystem(d.Name, d.Description, d.Transforms...)
		if err != nil {
			return nil, err
		}
		c.index[d.Name] = len(c.systems)
		c.systems = append(c.systems, sys)
	}
	return c, nil
}

// Len returns the number of systems.
func (c *Catalog) Len() int { return len(c.systems) }

// At returns the i-th system in catalog order.
func (c *Catalog) At(i int) *System { return c.systems[i] }

// Names returns the system names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.systems))
	for i, s := range c.systems {
		names[i] = s.Name()
	}
	return names
}

// Systems returns the systems in catalog order.
func (c *Catalog) Systems() []*System {
	out := make([]*System, len(c.systems))
	copy(out, c.systems)
	return out
}

// Index returns the position of name, or -1 when it is not in the catalog.
func (c *Catalog) Index(name string) int {
	if i, ok := c.index[name]; ok {
		return i
	}
	return -1
}

// Lookup returns the system registered under name. Unknown names yield an
// UNKNOWN_SYSTEM error.
func (c *Catalog) Lookup(name string) (*System, error) {
	i, ok := c.index[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownSystem, "unknown system: %q", name)
	}
	return c.systems[i], nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the compiled-in catalog. The definitions are fixed at build
// time; a definition that fails validation is a programming error and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := NewCatalog(Definitions()...)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Definitions returns fresh copies of the compiled-in definitions.
//
// Coefficients follow the canonical published tables:
//   - sierpinski: three half-scale maps onto the corners of an equilateral triangle
//   - carpet: eight third-scale maps, the centre cell removed
//   - fern: Barnsley's fern with probabilities 0.01/0.85/0.07/0.07
//   - dragon: Heighway dragon, f1(z) = (1+i)z/2, f2(z) = 1 - (1-i)z/2
//   - levy: Lévy C curve, f1(z) = (1-i)z/2, f2(z) = 1 + (1+i)(z-1)/2
//   - maple: four-map maple leaf from Barnsley's Fractals Everywhere
func Definitions() []Definition {
	h := math.Sqrt(3) / 4
	return []Definition{
		{
			Name:        "sierpinski",
			Description: "Sierpinski triangle",
			Transforms: []Affine{
				{A: 0.5, D: 0.5, E: 0, F: 0, Weight: 1, Hue: 0},
				{A: 0.5, D: 0.5, E: 0.5, F: 0, Weight: 1, Hue: 1.0 / 3},
				{A: 0.5, D: 0.5, E: 0.25, F: h, Weight: 1, Hue: 2.0 / 3},
			},
		},
		{
			Name:        "carpet",
			Description: "Sierpinski carpet",
			Transforms:  carpet(),
		},
		{
			Name:        "fern",
			Description: "Barnsley fern",
			Transforms: []Affine{
				{A: 0, B: 0, C: 0, D: 0.16, E: 0, F: 0, Weight: 0.01, Hue: 0},
				{A: 0.85, B: 0.04, C: -0.04, D: 0.85, E: 0, F: 1.6, Weight: 0.85, Hue: 0.3},
				{A: 0.2, B: -0.26, C: 0.23, D: 0.22, E: 0, F: 1.6, Weight: 0.07, Hue: 0.6},
				{A: -0.15, B: 0.28, C: 0.26, D: 0.24, E: 0, F: 0.44, Weight: 0.07, Hue: 0.9},
			},
		},
		{
			Name:        "dragon",
			Description: "Heighway dragon curve",
			Transforms: []Affine{
				{A: 0.5, B: -0.5, C: 0.5, D: 0.5, E: 0, F: 0, Weight: 1, Hue: 0.1},
				{A: -0.5, B: -0.5, C: 0.5, D: -0.5, E: 1, F: 0, Weight: 1, Hue: 0.7},
			},
		},
		{
			Name:        "levy",
			Description: "Lévy C curve",
			Transforms: []Affine{
				{A: 0.5, B: 0.5, C: -0.5, D: 0.5, E: 0, F: 0, Weight: 1, Hue: 0.2},
				{A: 0.5, B: -0.5, C: 0.5, D: 0.5, E: 0.5, F: -0.5, Weight: 1, Hue: 0.8},
			},
		},
		{
			Name:        "maple",
			Description: "Maple leaf",
			Transforms: []Affine{
				{A: 0.14, B: 0.01, C: 0, D: 0.51, E: -0.08, F: -1.31, Weight: 0.10, Hue: 0},
				{A: 0.43, B: 0.52, C: -0.45, D: 0.50, E: 1.49, F: -0.75, Weight: 0.35, Hue: 0.25},
				{A: 0.45, B: -0.49, C: 0.47, D: 0.47, E: -1.62, F: -0.74, Weight: 0.35, Hue: 0.5},
				{A: 0.49, B: 0, C: 0, D: 0.51, E: 0.02, F: 1.62, Weight: 0.20, Hue: 0.75},
			},
		},
	}
}

func carpet() []Affine {
	const third = 1.0 / 3
	out := make([]Affine, 0, 8)
	for j := range 3 {
		for i := range 3 {
			if i == 1 && j == 1 {
				continue
			}
			out = append(out, Affine{
				A: third, D: third,
				E: float64(i) * third, F: float64(j) * third,
				Weight: 1,
				Hue:    float64(len(out)) / 8,
			})
		}
	}
	return out
}
