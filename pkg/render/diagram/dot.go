package diagram

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/ifscope/pkg/errors"
	"github.com/matzehuels/ifscope/pkg/ifs"
	"github.com/matzehuels/ifscope/pkg/render"
)

const rootID = "attractor"

// ToDOT converts a system to Graphviz DOT source.
func ToDOT(sys *ifs.System) string {
	var buf bytes.Buffer
	buf.WriteString("digraph IFS {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"monospace\", fontsize=12];\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse, fillcolor=white];\n", rootID, rootLabel(sys))
	for i, t := range sys.Transforms() {
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n", nodeID(i), mapLabel(i, t), render.HueHex(t.Hue))
	}

	buf.WriteString("\n")
	for i := range sys.Len() {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", rootID, nodeID(i), fmtProb(sys.Probability(i)))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(i int) string { return "f" + strconv.Itoa(i) }

func rootLabel(sys *ifs.System) string {
	if sys.Description() == "" {
		return sys.Name()
	}
	return sys.Name() + "\n" + sys.Description()
}

func mapLabel(i int, t ifs.Affine) string {
	var b strings.Builder
	fmt.Fprintf(&b, "f%d\n", i)
	fmt.Fprintf(&b, "[%s %s | %s]\n", fmtNum(t.A), fmtNum(t.B), fmtNum(t.E))
	fmt.Fprintf(&b, "[%s %s | %s]", fmtNum(t.C), fmtNum(t.D), fmtNum(t.F))
	return b.String()
}

func fmtNum(v float64) string { return strconv.FormatFloat(v, 'g', 4, 64) }

func fmtProb(p float64) string { return strconv.FormatFloat(100*p, 'f', 1, 64) + "%" }

// RenderSVG renders DOT source to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders DOT source to PNG.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root tag with a plain
// origin-anchored viewBox so the diagram scales in a browser.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
