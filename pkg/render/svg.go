package render

import (
	"bytes"
	"fmt"
	"html"
	"image"
	"slices"

	"github.com/matzehuels/ifscope/pkg/ifs"
)

// RenderSVG draws points as an SVG document. Each lit pixel becomes a 1×1
// rect, grouped by color, so the output size is bounded by the raster area
// rather than the point count.
func RenderSVG(points []ifs.Point, opts ...Option) []byte {
	o := newOptions(opts...)
	vp := o.resolveViewport(points)

	// Last writer wins per pixel, matching Rasterize.
	lit := make(map[image.Point]float64)
	for _, p := range points {
		px, py, ok := vp.ToPixel(p, o.width, o.height)
		if !ok {
			continue
		}
		lit[image.Point{X: px, Y: py}] = p.Hue
	}

	groups := make(map[float64][]image.Point)
	for px, h := range lit {
		groups[h] = append(groups[h], px)
	}
	hues := make([]float64, 0, len(groups))
	for h := range groups {
		hues = append(hues, h)
	}
	slices.Sort(hues)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d" shape-rendering="crispEdges">`+"\n",
		o.width, o.height, o.width, o.height)
	bg := o.background
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="#%02x%02x%02x"/>`+"\n", bg.R, bg.G, bg.B)

	for _, h := range hues {
		pts := groups[h]
		slices.SortFunc(pts, func(a, b image.Point) int {
			if a.Y != b.Y {
				return a.Y - b.Y
			}
			return a.X - b.X
		})
		fmt.Fprintf(&buf, `  <g fill="%s">`+"\n", HueHex(h))
		for _, p := range pts {
			fmt.Fprintf(&buf, `    <rect x="%d" y="%d" width="1" height="1"/>`+"\n", p.X, p.Y)
		}
		buf.WriteString("  </g>\n")
	}

	if o.caption != "" {
		fmt.Fprintf(&buf, `  <text x="%d" y="%d" font-family="monospace" font-size="13" fill="#ffffff">%s</text>`+"\n",
			captionPadding, o.height-captionPadding, html.EscapeString(o.caption))
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
