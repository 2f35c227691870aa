package ifs

import "math"

// Point is a single chaos-game sample: a position on the orbit and the hue of
// the transform that produced it.
type Point struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Hue float64 `json:"hue"`
}

// Affine is a weighted 2D affine map of the form
//
//	| x' |   | A  B | | x |   | E |
//	| y' | = | C  D | | y | + | F |
//
// Weight is the unnormalized selection weight. Hue tags every point the map
// produces and has no geometric meaning.
type Affine struct {
	A, B, C, D float64
	E, F       float64
	Weight     float64
	Hue        float64
}

// Apply returns M·p + t. The hue of p is carried through unchanged.
func (m Affine) Apply(p Point) Point {
	return Point{
		X:   m.A*p.X + m.B*p.Y + m.E,
		Y:   m.C*p.X + m.D*p.Y + m.F,
		Hue: p.Hue,
	}
}

// Det returns the determinant of the linear part. Its absolute value is the
// factor by which the map scales area.
func (m Affine) Det() float64 {
	return m.A*m.D - m.B*m.C
}

func (m Affine) finite() bool {
	for _, v := range [...]float64{m.A, m.B, m.C, m.D, m.E, m.F} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
