package ifs

import "math"

// BurnIn is the number of orbit iterations discarded before the first point
// is emitted.
const BurnIn = 20

// Source is the random stream consumed by the selection step. *rand.Rand
// from math/rand/v2 satisfies it.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
}

// Generate runs the chaos game on sys and returns exactly n points. The orbit
// starts at the origin, which is never emitted, and the first [BurnIn]
// iterations are discarded. n <= 0 returns an empty slice without consuming
// any randomness.
func Generate(sys *System, n int, rng Source) []Point {
	return GenerateWithBurnIn(sys, n, BurnIn, rng)
}

// GenerateWithBurnIn is [Generate] with an explicit burn-in count. Negative
// counts are treated as zero.
func GenerateWithBurnIn(sys *System, n, burnIn int, rng Source) []Point {
	if n <= 0 {
		return []Point{}
	}
	return run(make([]Point, n), sys, burnIn, rng)
}

// GenerateInto behaves like [Generate] but reuses dst's backing array when it
// has capacity for n points. The returned slice has length n.
func GenerateInto(dst []Point, sys *System, n int, rng Source) []Point {
	if n <= 0 {
		return dst[:0]
	}
	if cap(dst) < n {
		dst = make([]Point, n)
	}
	return run(dst[:n], sys, BurnIn, rng)
}

func run(out []Point, sys *System, burnIn int, rng Source) []Point {
	total := sys.TotalWeight()
	var p Point

	for range max(burnIn, 0) {
		p = sys.transforms[sys.Pick(rng.Float64()*total)].Apply(p)
	}

	for i := range out {
		t := sys.transforms[sys.Pick(rng.Float64()*total)]
		p = t.Apply(p)
		p.Hue = t.Hue
		out[i] = p
	}
	return out
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Empty reports whether r encloses no points.
func (r Rect) Empty() bool { return r.MinX > r.MaxX || r.MinY > r.MaxY }

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center returns the midpoint of r.
func (r Rect) Center() (x, y float64) {
	return (r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2
}

// Contains reports whether (x, y) lies within r expanded by tol on each side.
func (r Rect) Contains(x, y, tol float64) bool {
	return x >= r.MinX-tol && x <= r.MaxX+tol && y >= r.MinY-tol && y <= r.MaxY+tol
}

// Bounds returns the bounding box of points. It returns an [Rect.Empty]
// rect when points is empty.
func Bounds(points []Point) Rect {
	r := Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, p := range points {
		r.MinX = min(r.MinX, p.X)
		r.MinY = min(r.MinY, p.Y)
		r.MaxX = max(r.MaxX, p.X)
		r.MaxY = max(r.MaxY, p.Y)
	}
	return r
}
