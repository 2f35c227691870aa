package diagram

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/ifscope/pkg/ifs"
	"github.com/matzehuels/ifscope/pkg/render"
)

func lookup(t *testing.T, name string) *ifs.System {
	t.Helper()
	sys, err := ifs.Default().Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q) error: %v", name, err)
	}
	return sys
}

func TestToDOT(t *testing.T) {
	sys := lookup(t, "sierpinski")
	dot := ToDOT(sys)

	if !strings.HasPrefix(dot, "digraph IFS {") {
		t.Errorf("DOT should start with digraph header: %q", dot[:20])
	}
	if n := strings.Count(dot, `"attractor" -> `); n != sys.Len() {
		t.Errorf("edges = %d, want %d", n, sys.Len())
	}
	for i := range sys.Len() {
		if !strings.Contains(dot, `"f`+string(rune('0'+i))+`" [label=`) {
			t.Errorf("missing node f%d", i)
		}
	}
	if !strings.Contains(dot, `label="33.3%"`) {
		t.Error("equal-weight edges should be labelled 33.3%")
	}
	if !strings.Contains(dot, render.HueHex(sys.Transform(0).Hue)) {
		t.Error("nodes should be filled with their hue color")
	}
}

func TestToDOTFernProbabilities(t *testing.T) {
	dot := ToDOT(lookup(t, "fern"))
	for _, want := range []string{`label="1.0%"`, `label="85.0%"`, `label="7.0%"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing edge %s", want)
		}
	}
}

func TestFmtNum(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0.5, "0.5"},
		{0, "0"},
		{-0.04, "-0.04"},
		{0.433012701892, "0.433"},
	}
	for _, tt := range tests {
		if got := fmtNum(tt.v); got != tt.want {
			t.Errorf("fmtNum(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 62.00 116.00" width="62" height="116"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("svg without viewBox should pass through, got %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz render in short mode")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(lookup(t, "dragon")))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
}

func TestRenderSVGInvalidDOT(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz render in short mode")
	}
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("RenderSVG() should fail on malformed DOT")
	}
}
