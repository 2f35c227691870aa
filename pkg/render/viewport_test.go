package render

import (
	"math"
	"testing"

	"github.com/matzehuels/ifscope/pkg/errors"
	"github.com/matzehuels/ifscope/pkg/ifs"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestViewportProject(t *testing.T) {
	v := Viewport{Scale: 2, X: 1, Y: -1}
	nx, ny := v.Project(ifs.Point{X: 1.5, Y: -0.5})
	if !approx(nx, 1) || !approx(ny, 1) {
		t.Errorf("Project = (%v, %v), want (1, 1)", nx, ny)
	}
}

func TestViewportPanScalesWithZoom(t *testing.T) {
	v := DefaultViewport().Zoom(4).Pan(PanStep, -PanStep)
	if !approx(v.X, PanStep/4) || !approx(v.Y, -PanStep/4) {
		t.Errorf("Pan at scale 4 = (%v, %v), want (%v, %v)", v.X, v.Y, PanStep/4, -PanStep/4)
	}
}

func TestViewportZoom(t *testing.T) {
	v := DefaultViewport().Zoom(ZoomIn).Zoom(ZoomOut)
	if !approx(v.Scale, ZoomIn*ZoomOut) {
		t.Errorf("Scale = %v, want %v", v.Scale, ZoomIn*ZoomOut)
	}
	if got := v.Zoom(0); got != v {
		t.Errorf("Zoom(0) changed viewport: %+v", got)
	}
	if got := v.Zoom(-2); got != v {
		t.Errorf("Zoom(-2) changed viewport: %+v", got)
	}
}

func TestViewportValidate(t *testing.T) {
	tests := []struct {
		name string
		v    Viewport
		ok   bool
	}{
		{"default", DefaultViewport(), true},
		{"zoomed", Viewport{Scale: 12.5, X: 3, Y: -4}, true},
		{"zero scale", Viewport{}, false},
		{"negative scale", Viewport{Scale: -1}, false},
		{"nan x", Viewport{Scale: 1, X: math.NaN()}, false},
		{"inf scale", Viewport{Scale: math.Inf(1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.Validate()
			if tt.ok && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, errors.ErrCodeInvalidViewport) {
				t.Fatalf("Validate() = %v, want INVALID_VIEWPORT", err)
			}
		})
	}
}

func TestFit(t *testing.T) {
	r := ifs.Rect{MinX: 0, MinY: 0, MaxX: 2, MaxY: 1}
	v := Fit(r, 0)
	if !approx(v.Scale, 1) || !approx(v.X, 1) || !approx(v.Y, 0.5) {
		t.Fatalf("Fit = %+v, want {1 1 0.5}", v)
	}
	nx, _ := v.Project(ifs.Point{X: 2, Y: 0.5})
	if !approx(nx, 1) {
		t.Errorf("right edge projects to %v, want 1", nx)
	}

	v = Fit(r, 0.1)
	if !approx(v.Scale, 0.9) {
		t.Errorf("Fit with margin: Scale = %v, want 0.9", v.Scale)
	}
}

func TestFitDegenerate(t *testing.T) {
	if got := Fit(ifs.Bounds(nil), 0.05); got != DefaultViewport() {
		t.Errorf("Fit(empty) = %+v, want default", got)
	}
	got := Fit(ifs.Rect{MinX: 3, MinY: 4, MaxX: 3, MaxY: 4}, 0.05)
	if got.Scale != 1 || got.X != 3 || got.Y != 4 {
		t.Errorf("Fit(point) = %+v, want {1 3 4}", got)
	}
}

func TestToPixel(t *testing.T) {
	v := DefaultViewport()
	tests := []struct {
		name   string
		p      ifs.Point
		w, h   int
		px, py int
		ok     bool
	}{
		{"origin square", ifs.Point{}, 100, 100, 50, 50, true},
		{"origin wide", ifs.Point{}, 200, 100, 100, 50, true},
		{"y is up", ifs.Point{Y: 0.5}, 100, 100, 50, 25, true},
		{"x right", ifs.Point{X: 0.5}, 100, 100, 75, 50, true},
		{"wide uses short side", ifs.Point{X: 1.5}, 200, 100, 175, 50, true},
		{"top left corner", ifs.Point{X: -1, Y: 1}, 100, 100, 0, 0, true},
		{"right edge excluded", ifs.Point{X: 1}, 100, 100, 0, 0, false},
		{"outside", ifs.Point{X: 5}, 100, 100, 0, 0, false},
		{"nan", ifs.Point{X: math.NaN()}, 100, 100, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			px, py, ok := v.ToPixel(tt.p, tt.w, tt.h)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && (px != tt.px || py != tt.py) {
				t.Errorf("ToPixel = (%d, %d), want (%d, %d)", px, py, tt.px, tt.py)
			}
		})
	}
}
