package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/ifscope/pkg/ifs"
	"github.com/matzehuels/ifscope/pkg/render"
)

// Each terminal cell holds a 2×4 braille dot matrix.
const (
	brailleBase = 0x2800
	dotsX       = 2
	dotsY       = 4
)

var brailleBits = [dotsY][dotsX]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// canvas rasterizes a point cloud into braille cells. A cell takes the hue
// of the last point plotted into it.
type canvas struct {
	cols, rows int
	dots       []uint8
	hues       []float64
	styles     map[string]lipgloss.Style
}

func newCanvas(cols, rows int) *canvas {
	cols, rows = max(cols, 1), max(rows, 1)
	return &canvas{
		cols:   cols,
		rows:   rows,
		dots:   make([]uint8, cols*rows),
		hues:   make([]float64, cols*rows),
		styles: make(map[string]lipgloss.Style),
	}
}

func (c *canvas) resize(cols, rows int) {
	cols, rows = max(cols, 1), max(rows, 1)
	if cols == c.cols && rows == c.rows {
		return
	}
	c.cols, c.rows = cols, rows
	c.dots = make([]uint8, cols*rows)
	c.hues = make([]float64, cols*rows)
}

func (c *canvas) clear() {
	clear(c.dots)
}

// plot clears the canvas and draws points through view. It returns the
// number of points that landed on screen.
func (c *canvas) plot(points []ifs.Point, view render.Viewport) int {
	c.clear()
	w, h := c.cols*dotsX, c.rows*dotsY
	var visible int
	for _, p := range points {
		px, py, ok := view.ToPixel(p, w, h)
		if !ok {
			continue
		}
		i := (py/dotsY)*c.cols + px/dotsX
		c.dots[i] |= brailleBits[py%dotsY][px%dotsX]
		c.hues[i] = p.Hue
		visible++
	}
	return visible
}

func (c *canvas) style(hex string) lipgloss.Style {
	s, ok := c.styles[hex]
	if !ok {
		s = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
		c.styles[hex] = s
	}
	return s
}

// String renders the canvas row by row, batching runs of equal color.
func (c *canvas) String() string {
	var b, run strings.Builder
	for y := range c.rows {
		runHex := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runHex == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(c.style(runHex).Render(run.String()))
			}
			run.Reset()
		}
		for x := range c.cols {
			i := y*c.cols + x
			if c.dots[i] == 0 {
				run.WriteByte(' ')
				continue
			}
			if hex := render.HueHex(c.hues[i]); hex != runHex {
				flush()
				runHex = hex
			}
			run.WriteRune(rune(brailleBase + int(c.dots[i])))
		}
		flush()
		if y < c.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
