package ifs

import (
	"slices"
	"testing"

	"github.com/matzehuels/ifscope/pkg/errors"
)

func newTestState(t *testing.T, opts ...StateOption) *State {
	t.Helper()
	opts = append([]StateOption{WithSource(newRand(1))}, opts...)
	s, err := NewState(Default(), opts...)
	if err != nil {
		t.Fatalf("NewState() error: %v", err)
	}
	return s
}

func TestNewStateDefaults(t *testing.T) {
	s := newTestState(t)
	if s.Selected() != Default().At(0) {
		t.Errorf("default selection = %q, want first catalog entry", s.Selected().Name())
	}
	if s.Count() != DefaultPoints {
		t.Errorf("Count() = %d, want %d", s.Count(), DefaultPoints)
	}
	if s.Catalog() != Default() {
		t.Error("Catalog() should return the catalog passed to NewState")
	}
}

func TestNewStateOptions(t *testing.T) {
	s := newTestState(t, WithSelection("dragon"), WithCount(10))
	if s.Selected().Name() != "dragon" {
		t.Errorf("selection = %q, want dragon", s.Selected().Name())
	}
	if s.Count() != 10 {
		t.Errorf("Count() = %d, want 10", s.Count())
	}

	if _, err := NewState(Default(), WithSelection("nope")); !errors.Is(err, errors.ErrCodeUnknownSystem) {
		t.Errorf("WithSelection(unknown) error = %v", err)
	}
	if _, err := NewState(Default(), WithCount(-1)); !errors.Is(err, errors.ErrCodeInvalidCount) {
		t.Errorf("WithCount(-1) error = %v", err)
	}
	if _, err := NewState(nil); err == nil {
		t.Error("NewState(nil) should fail")
	}
}

func TestStateSelect(t *testing.T) {
	s := newTestState(t)

	if err := s.Select("fern"); err != nil {
		t.Fatalf("Select(fern) error: %v", err)
	}
	if s.Selected().Name() != "fern" {
		t.Errorf("selection = %q, want fern", s.Selected().Name())
	}

	err := s.Select("julia")
	if !errors.Is(err, errors.ErrCodeUnknownSystem) {
		t.Errorf("Select(unknown) error = %v, want %v", err, errors.ErrCodeUnknownSystem)
	}
	if s.Selected().Name() != "fern" {
		t.Error("failed Select should leave the selection unchanged")
	}
}

func TestStateSetCount(t *testing.T) {
	s := newTestState(t)

	for _, n := range []int{0, 1, 123456} {
		if err := s.SetCount(n); err != nil {
			t.Errorf("SetCount(%d) error: %v", n, err)
		}
		if s.Count() != n {
			t.Errorf("Count() = %d, want %d", s.Count(), n)
		}
	}

	if err := s.SetCount(-3); !errors.Is(err, errors.ErrCodeInvalidCount) {
		t.Errorf("SetCount(-3) error = %v", err)
	}
	if s.Count() != 123456 {
		t.Error("failed SetCount should leave the count unchanged")
	}
}

func TestStateRegenerate(t *testing.T) {
	s := newTestState(t, WithSelection("sierpinski"), WithCount(300))

	first := s.Regenerate()
	if len(first) != 300 {
		t.Fatalf("Regenerate() returned %d points, want 300", len(first))
	}
	snapshot := append([]Point(nil), first...)

	if err := s.Select("dragon"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetCount(50); err != nil {
		t.Fatal(err)
	}

	// Earlier output is untouched by later changes.
	for i := range first {
		if first[i] != snapshot[i] {
			t.Fatal("changing selection mutated previously returned points")
		}
	}

	second := s.Regenerate()
	if len(second) != 50 {
		t.Fatalf("Regenerate() returned %d points, want 50", len(second))
	}
	dragonHues := map[float64]bool{}
	for _, h := range s.Selected().Hues() {
		dragonHues[h] = true
	}
	for _, p := range second {
		if !dragonHues[p.Hue] {
			t.Fatalf("point hue %v does not belong to the dragon", p.Hue)
		}
	}

	if err := s.SetCount(0); err != nil {
		t.Fatal(err)
	}
	if got := s.Regenerate(); len(got) != 0 {
		t.Errorf("count 0 should give no points, got %d", len(got))
	}
}

func TestStateRegenerateIsIndependent(t *testing.T) {
	s := newTestState(t, WithSelection("fern"), WithCount(200))
	a := s.Regenerate()
	first := slices.Clone(a)
	b := s.Regenerate()
	if !slices.Equal(a, first) {
		t.Error("Regenerate modified a previously returned slice")
	}

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("successive runs over one random stream should differ")
	}
}

func TestStateRegenerateMatchesGenerate(t *testing.T) {
	s := newTestState(t, WithSelection("levy"), WithCount(100), WithSource(newRand(21)))
	got := s.Regenerate()

	sys, _ := Default().Lookup("levy")
	want := Generate(sys, 100, newRand(21))
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStateBufferReuse(t *testing.T) {
	s := newTestState(t, WithCount(100), WithBufferReuse())
	a := s.Regenerate()
	first := slices.Clone(a)
	b := s.Regenerate()
	if &a[0] != &b[0] {
		t.Error("WithBufferReuse should write into the same backing array")
	}
	if slices.Equal(a, first) {
		t.Error("the previous frame should be overwritten in reuse mode")
	}

	if err := s.SetCount(1000); err != nil {
		t.Fatal(err)
	}
	if got := s.Regenerate(); len(got) != 1000 {
		t.Errorf("len = %d, want 1000", len(got))
	}
}
