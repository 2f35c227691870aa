// Package render turns chaos-game point clouds into images.
//
// # Viewport
//
// A [Viewport] maps fractal coordinates to normalized device coordinates
// with ndc = Scale * (p - (X, Y)). The visible square is [-1, 1]² and is
// stretched over the shorter side of the output raster. [Fit] picks a
// viewport that frames a bounding rectangle; [Viewport.Pan] and
// [Viewport.Zoom] implement the interactive controls.
//
// # Sinks
//
// Three output formats are supported:
//
//   - [RenderPNG]: a rasterized image, one pixel per point
//   - [RenderSVG]: a vector image with one 1×1 rect per lit pixel
//   - [RenderJSON]: the raw points with metadata
//
// Points are colored by their hue tag via [HueColor]:
//
//	pts := ifs.Generate(sys, 50000, rng)
//	png, err := render.RenderPNG(pts, render.WithSize(1024, 1024))
//
// The transform diagram of a system lives in the [diagram] subpackage.
package render
