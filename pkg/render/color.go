package render

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Saturation and value of the point palette.
const (
	paletteSaturation = 0.8
	paletteValue      = 0.8
)

// HueColor returns the display color for a hue tag in [0, 1]. Hues run
// backwards around the HSV wheel so 0 is red and 1/3 is blue. Out-of-range
// tags are clamped.
func HueColor(h float64) color.RGBA {
	if math.IsNaN(h) {
		h = 0
	}
	h = min(max(h, 0), 1)
	c := colorful.Hsv(math.Mod(360*(1-h), 360), paletteSaturation, paletteValue).Clamped()
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// HueHex returns [HueColor] as a "#rrggbb" string.
func HueHex(h float64) string {
	c := HueColor(h)
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

// palette caches hue colors for a render pass; a system has only a handful
// of distinct hues.
type palette map[float64]color.RGBA

func (p palette) color(h float64) color.RGBA {
	c, ok := p[h]
	if !ok {
		c = HueColor(h)
		p[h] = c
	}
	return c
}
