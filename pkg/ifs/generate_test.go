package ifs

import (
	"bytes"
	"encoding/binary"
	"math"
	"math/rand/v2"
	"testing"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// countingSource wraps a Source and records how many draws were taken.
type countingSource struct {
	src   Source
	draws int
}

func (c *countingSource) Float64() float64 {
	c.draws++
	return c.src.Float64()
}

func TestGenerateCount(t *testing.T) {
	for _, sys := range Default().Systems() {
		for _, n := range []int{0, 1, 7, 1000} {
			got := Generate(sys, n, newRand(1))
			if len(got) != n {
				t.Errorf("%s: Generate(n=%d) returned %d points", sys.Name(), n, len(got))
			}
		}
	}
}

func TestGenerateZeroConsumesNothing(t *testing.T) {
	sys, _ := Default().Lookup("fern")
	src := &countingSource{src: newRand(1)}

	for _, n := range []int{0, -5} {
		got := Generate(sys, n, src)
		if got == nil || len(got) != 0 {
			t.Errorf("Generate(n=%d) = %v, want empty non-nil slice", n, got)
		}
	}
	if src.draws != 0 {
		t.Errorf("Generate with n<=0 drew %d random values, want 0", src.draws)
	}
}

func TestGenerateDrawCount(t *testing.T) {
	sys, _ := Default().Lookup("sierpinski")
	src := &countingSource{src: newRand(1)}

	Generate(sys, 100, src)
	if want := BurnIn + 100; src.draws != want {
		t.Errorf("draws = %d, want %d (burn-in + emitted)", src.draws, want)
	}
}

func TestGenerateHueMembership(t *testing.T) {
	for _, sys := range Default().Systems() {
		hues := make(map[float64]bool)
		for _, h := range sys.Hues() {
			hues[h] = true
		}
		for i, p := range Generate(sys, 5000, newRand(3)) {
			if !hues[p.Hue] {
				t.Fatalf("%s: point %d has hue %v not in %v", sys.Name(), i, p.Hue, sys.Hues())
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	for _, sys := range Default().Systems() {
		a := Generate(sys, 2000, newRand(7))
		b := Generate(sys, 2000, newRand(7))
		if !bytes.Equal(encodePoints(t, a), encodePoints(t, b)) {
			t.Errorf("%s: identical seeds produced different output", sys.Name())
		}
	}
}

func TestGenerateDifferentSeedsDiffer(t *testing.T) {
	sys, _ := Default().Lookup("fern")
	a := Generate(sys, 100, newRand(1))
	b := Generate(sys, 100, newRand(2))
	if bytes.Equal(encodePoints(t, a), encodePoints(t, b)) {
		t.Error("different seeds should produce different point sequences")
	}
}

func encodePoints(t *testing.T, pts []Point) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, pts); err != nil {
		t.Fatalf("encode points: %v", err)
	}
	return buf.Bytes()
}

func TestGenerateEqualWeightsHueCounts(t *testing.T) {
	sys, err := NewSystem("tri", "",
		Affine{A: 0.5, D: 0.5, Weight: 1, Hue: 0},
		Affine{A: 0.5, D: 0.5, E: 0.5, Weight: 1, Hue: 0.5},
		Affine{A: 0.5, D: 0.5, E: 0.25, F: 0.5, Weight: 1, Hue: 1},
	)
	if err != nil {
		t.Fatalf("NewSystem() error: %v", err)
	}

	points := GenerateWithBurnIn(sys, 3000, 20, newRand(11))
	if len(points) != 3000 {
		t.Fatalf("got %d points, want 3000", len(points))
	}

	counts := make(map[float64]int)
	for _, p := range points {
		counts[p.Hue]++
	}
	// Binomial(3000, 1/3) has sd ~25.8; allow ~6 sd.
	for _, h := range []float64{0, 0.5, 1} {
		if c := counts[h]; c < 850 || c > 1150 {
			t.Errorf("hue %v appeared %d times, want ~1000", h, c)
		}
	}
}

// chiSquareCritical holds the chi-squared critical values at p = 1e-4 by
// degrees of freedom.
var chiSquareCritical = map[int]float64{
	1: 15.14,
	2: 18.42,
	3: 21.11,
	7: 29.88,
}

func TestSelectionDistribution(t *testing.T) {
	const draws = 200000

	for _, sys := range Default().Systems() {
		t.Run(sys.Name(), func(t *testing.T) {
			rng := newRand(99)
			counts := make([]int, sys.Len())
			for range draws {
				counts[sys.Pick(rng.Float64()*sys.TotalWeight())]++
			}

			stat := 0.0
			df := -1
			for i, c := range counts {
				expected := sys.Probability(i) * draws
				if expected == 0 {
					if c != 0 {
						t.Errorf("zero-weight transform %d selected %d times", i, c)
					}
					continue
				}
				d := float64(c) - expected
				stat += d * d / expected
				df++
			}

			critical, ok := chiSquareCritical[df]
			if !ok {
				t.Fatalf("no critical value for %d degrees of freedom", df)
			}
			if stat > critical {
				t.Errorf("chi-squared = %.2f exceeds %.2f (df=%d), counts %v", stat, critical, df, counts)
			}
		})
	}
}

func TestGenerateEmissionFrequencies(t *testing.T) {
	sys, _ := Default().Lookup("fern")
	const n = 100000

	counts := make(map[float64]int)
	for _, p := range Generate(sys, n, newRand(5)) {
		counts[p.Hue]++
	}

	stat := 0.0
	for i, tr := range sys.Transforms() {
		expected := sys.Probability(i) * n
		d := float64(counts[tr.Hue]) - expected
		stat += d * d / expected
	}
	if stat > chiSquareCritical[3] {
		t.Errorf("emitted hue frequencies do not match weights: chi-squared = %.2f", stat)
	}
}

// shifted is a Sierpinski triangle whose attractor sits far from the origin,
// with corners (20,20), (21,20) and (20.5, 20+sqrt(3)/2).
func shifted(t *testing.T) (*System, Rect) {
	t.Helper()
	h := math.Sqrt(3) / 4
	sys, err := NewSystem("shifted", "",
		Affine{A: 0.5, D: 0.5, E: 10, F: 10, Weight: 1, Hue: 0},
		Affine{A: 0.5, D: 0.5, E: 10.5, F: 10, Weight: 1, Hue: 0.5},
		Affine{A: 0.5, D: 0.5, E: 10.25, F: 10 + h, Weight: 1, Hue: 1},
	)
	if err != nil {
		t.Fatalf("NewSystem() error: %v", err)
	}
	return sys, Rect{MinX: 20, MinY: 20, MaxX: 21, MaxY: 20 + 2*h}
}

func TestBurnInRemovesSeedBias(t *testing.T) {
	sys, attractor := shifted(t)
	const tol = 1e-3

	for seed := uint64(0); seed < 500; seed++ {
		first := Generate(sys, 1, newRand(seed))[0]
		if !attractor.Contains(first.X, first.Y, tol) {
			t.Fatalf("seed %d: first point (%.6f, %.6f) lies off the attractor %v", seed, first.X, first.Y, attractor)
		}
	}

	// Later points sit in the same region as the first.
	for i, p := range Generate(sys, 10000, newRand(1)) {
		if !attractor.Contains(p.X, p.Y, tol) {
			t.Fatalf("point %d (%.6f, %.6f) lies off the attractor", i, p.X, p.Y)
		}
	}
}

func TestNoBurnInShowsSeedBias(t *testing.T) {
	sys, attractor := shifted(t)

	first := GenerateWithBurnIn(sys, 1, 0, newRand(1))[0]
	if attractor.Contains(first.X, first.Y, 1e-3) {
		t.Errorf("without burn-in the first point (%.3f, %.3f) should still be near the seed", first.X, first.Y)
	}
}

func TestGenerateWithNegativeBurnIn(t *testing.T) {
	sys, _ := Default().Lookup("dragon")
	a := GenerateWithBurnIn(sys, 50, -3, newRand(4))
	b := GenerateWithBurnIn(sys, 50, 0, newRand(4))
	if !bytes.Equal(encodePoints(t, a), encodePoints(t, b)) {
		t.Error("negative burn-in should behave like zero")
	}
}

func TestGenerateInto(t *testing.T) {
	sys, _ := Default().Lookup("maple")

	buf := make([]Point, 0, 500)
	got := GenerateInto(buf, sys, 500, newRand(8))
	if len(got) != 500 {
		t.Fatalf("len = %d, want 500", len(got))
	}
	if &got[0] != &buf[:1][0] {
		t.Error("GenerateInto should reuse a buffer with enough capacity")
	}

	want := Generate(sys, 500, newRand(8))
	if !bytes.Equal(encodePoints(t, got), encodePoints(t, want)) {
		t.Error("GenerateInto output differs from Generate")
	}

	grown := GenerateInto(buf, sys, 1000, newRand(8))
	if len(grown) != 1000 {
		t.Errorf("len = %d, want 1000", len(grown))
	}

	if empty := GenerateInto(got, sys, 0, newRand(8)); len(empty) != 0 {
		t.Errorf("len = %d, want 0", len(empty))
	}
}

func TestBounds(t *testing.T) {
	if !Bounds(nil).Empty() {
		t.Error("Bounds(nil) should be empty")
	}

	r := Bounds([]Point{{X: 1, Y: 2}, {X: -1, Y: 5}, {X: 3, Y: 0}})
	want := Rect{MinX: -1, MinY: 0, MaxX: 3, MaxY: 5}
	if r != want {
		t.Errorf("Bounds() = %v, want %v", r, want)
	}
	if r.Width() != 4 || r.Height() != 5 {
		t.Errorf("Width/Height = %v/%v, want 4/5", r.Width(), r.Height())
	}
	if x, y := r.Center(); x != 1 || y != 2.5 {
		t.Errorf("Center() = (%v, %v), want (1, 2.5)", x, y)
	}
}

func TestCatalogAttractorsStayBounded(t *testing.T) {
	for _, sys := range Default().Systems() {
		r := Bounds(Generate(sys, 20000, newRand(2)))
		if r.Empty() || r.Width() > 20 || r.Height() > 20 {
			t.Errorf("%s: unexpected attractor bounds %v", sys.Name(), r)
		}
	}
}
