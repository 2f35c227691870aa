package ifs

import (
	"math"
	"testing"
)

func TestAffineApply(t *testing.T) {
	tests := []struct {
		name string
		m    Affine
		in   Point
		want Point
	}{
		{
			name: "identity",
			m:    Affine{A: 1, D: 1},
			in:   Point{X: 3, Y: -2},
			want: Point{X: 3, Y: -2},
		},
		{
			name: "translation only",
			m:    Affine{A: 1, D: 1, E: 0.5, F: -1},
			in:   Point{X: 1, Y: 1},
			want: Point{X: 1.5, Y: 0},
		},
		{
			name: "half scale",
			m:    Affine{A: 0.5, D: 0.5},
			in:   Point{X: 2, Y: 4},
			want: Point{X: 1, Y: 2},
		},
		{
			name: "full matrix",
			m:    Affine{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6},
			in:   Point{X: 1, Y: 1},
			want: Point{X: 8, Y: 13},
		},
		{
			name: "rotation by 90 degrees",
			m:    Affine{A: 0, B: -1, C: 1, D: 0},
			in:   Point{X: 1, Y: 0},
			want: Point{X: 0, Y: 1},
		},
		{
			name: "collapse to a line",
			m:    Affine{D: 0.16},
			in:   Point{X: 10, Y: 10},
			want: Point{X: 0, Y: 1.6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Apply(tt.in)
			if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 {
				t.Errorf("Apply(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAffineApplyKeepsHue(t *testing.T) {
	m := Affine{A: 0.5, D: 0.5, Hue: 0.9}
	got := m.Apply(Point{X: 1, Y: 1, Hue: 0.25})
	if got.Hue != 0.25 {
		t.Errorf("Apply changed hue to %v, want 0.25", got.Hue)
	}
}

func TestAffineApplyTotal(t *testing.T) {
	m := Affine{A: 0.85, B: 0.04, C: -0.04, D: 0.85, F: 1.6}
	for _, p := range []Point{
		{X: math.MaxFloat64, Y: 0},
		{X: -1e300, Y: 1e300},
		{X: 0, Y: 0},
	} {
		_ = m.Apply(p) // must not panic for any real input
	}
}

func TestAffineDet(t *testing.T) {
	if got := (Affine{A: 0.5, D: 0.5}).Det(); got != 0.25 {
		t.Errorf("Det() = %v, want 0.25", got)
	}
	if got := (Affine{A: 1, B: 2, C: 3, D: 4}).Det(); got != -2 {
		t.Errorf("Det() = %v, want -2", got)
	}
}
