package render

import (
	"math"

	"github.com/matzehuels/ifscope/pkg/errors"
	"github.com/matzehuels/ifscope/pkg/ifs"
)

// Pan and zoom steps used by interactive front ends.
const (
	PanStep = 0.05 // fraction of the unit view per key press, divided by Scale
	ZoomIn  = 1.10
	ZoomOut = 0.9
)

// Viewport maps fractal coordinates to normalized device coordinates:
//
//	ndc = Scale * (p - (X, Y))
//
// so (X, Y) is the view centre and [-1, 1]² is the visible square.
type Viewport struct {
	Scale float64 `json:"scale" toml:"scale"`
	X     float64 `json:"x" toml:"x"`
	Y     float64 `json:"y" toml:"y"`
}

// DefaultViewport returns the identity view centred on the origin.
func DefaultViewport() Viewport {
	return Viewport{Scale: 1}
}

// Validate rejects non-finite fields and non-positive scale.
func (v Viewport) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{{"scale", v.Scale}, {"x", v.X}, {"y", v.Y}} {
		if err := errors.ValidateFinite(f.name, f.v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidViewport, err, "invalid viewport")
		}
	}
	if v.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidViewport, "viewport scale must be positive, got %v", v.Scale)
	}
	return nil
}

// Pan moves the view by (dx, dy) in screen units. The offset is divided by
// Scale so a key press moves the same distance on screen at any zoom level.
func (v Viewport) Pan(dx, dy float64) Viewport {
	v.X += dx / v.Scale
	v.Y += dy / v.Scale
	return v
}

// Zoom multiplies Scale by f. Non-positive factors are ignored.
func (v Viewport) Zoom(f float64) Viewport {
	if f > 0 {
		v.Scale *= f
	}
	return v
}

// Fit returns a viewport centred on r whose larger extent spans
// [-1+margin, 1-margin]. Empty rects yield [DefaultViewport]; degenerate
// rects (a single point or a line) keep unit scale on the flat axis.
func Fit(r ifs.Rect, margin float64) Viewport {
	if r.Empty() {
		return DefaultViewport()
	}
	cx, cy := r.Center()
	extent := max(r.Width(), r.Height())
	if extent <= 0 || math.IsInf(extent, 0) {
		return Viewport{Scale: 1, X: cx, Y: cy}
	}
	margin = min(max(margin, 0), 0.9)
	return Viewport{Scale: 2 * (1 - margin) / extent, X: cx, Y: cy}
}

// Project returns the normalized device coordinates of p.
func (v Viewport) Project(p ifs.Point) (nx, ny float64) {
	return v.Scale * (p.X - v.X), v.Scale * (p.Y - v.Y)
}

// ToPixel maps p into a w×h raster. The shorter side spans [-1, 1], the
// y axis points up, and ok is false when p lands outside the raster.
func (v Viewport) ToPixel(p ifs.Point, w, h int) (px, py int, ok bool) {
	nx, ny := v.Project(p)
	half := float64(min(w, h)) / 2
	fx := float64(w)/2 + nx*half
	fy := float64(h)/2 - ny*half
	if !(fx >= 0 && fx < float64(w) && fy >= 0 && fy < float64(h)) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}
