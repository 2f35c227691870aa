package render

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/ifscope/pkg/errors"
	"github.com/matzehuels/ifscope/pkg/ifs"
)

const captionPadding = 6

// Rasterize plots points into a new RGBA image. Later points overwrite
// earlier ones at the same pixel.
func Rasterize(points []ifs.Point, opts ...Option) *image.RGBA {
	o := newOptions(opts...)
	img := image.NewRGBA(image.Rect(0, 0, o.width, o.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(o.background), image.Point{}, draw.Src)

	vp := o.resolveViewport(points)
	pal := palette{}
	for _, p := range points {
		px, py, ok := vp.ToPixel(p, o.width, o.height)
		if !ok {
			continue
		}
		img.SetRGBA(px, py, pal.color(p.Hue))
	}

	if o.caption != "" {
		drawCaption(img, o.caption)
	}
	return img
}

// RenderPNG rasterizes points and encodes the result as PNG.
func RenderPNG(points []ifs.Point, opts ...Option) ([]byte, error) {
	img := Rasterize(points, opts...)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func (o options) resolveViewport(points []ifs.Point) Viewport {
	if o.viewport != nil {
		return *o.viewport
	}
	return Fit(ifs.Bounds(points), o.margin)
}

func drawCaption(img *image.RGBA, text string) {
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(captionPadding, img.Bounds().Dy()-captionPadding-face.Descent),
	}
	d.DrawString(text)
}
