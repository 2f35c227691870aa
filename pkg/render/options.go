package render

import "image/color"

// Default raster settings.
const (
	DefaultWidth  = 800
	DefaultHeight = 800
	DefaultMargin = 0.05
)

// Option configures the PNG and SVG sinks.
type Option func(*options)

type options struct {
	width      int
	height     int
	viewport   *Viewport
	margin     float64
	caption    string
	background color.RGBA
}

// WithSize sets the output size in pixels.
func WithSize(w, h int) Option { return func(o *options) { o.width, o.height = w, h } }

// WithViewport renders through v instead of fitting the point cloud.
func WithViewport(v Viewport) Option { return func(o *options) { o.viewport = &v } }

// WithMargin sets the fraction of the view left empty around a fitted cloud.
func WithMargin(m float64) Option { return func(o *options) { o.margin = m } }

// WithCaption draws text in the bottom-left corner.
func WithCaption(s string) Option { return func(o *options) { o.caption = s } }

// WithBackground sets the background color (default opaque black).
func WithBackground(c color.RGBA) Option { return func(o *options) { o.background = c } }

func newOptions(opts ...Option) options {
	o := options{
		width:      DefaultWidth,
		height:     DefaultHeight,
		margin:     DefaultMargin,
		background: color.RGBA{A: 0xff},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.width <= 0 {
		o.width = DefaultWidth
	}
	if o.height <= 0 {
		o.height = DefaultHeight
	}
	return o
}
