// Package diagram draws the structure of an iterated function system as a
// Graphviz diagram.
//
// The attractor is the root node; each affine map is a child node labelled
// with its coefficients and filled with the color its points are drawn in.
// Edges carry the selection probability of the map.
//
//	dot := diagram.ToDOT(sys)
//	svg, err := diagram.RenderSVG(ctx, dot)
package diagram
