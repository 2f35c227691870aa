package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors adapt to light and dark terminal backgrounds.
var (
	colorAccent = lipgloss.AdaptiveColor{Light: "30", Dark: "36"}
	colorOK     = lipgloss.AdaptiveColor{Light: "28", Dark: "35"}
	colorWarn   = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorErr    = lipgloss.AdaptiveColor{Light: "124", Dark: "167"}
	colorCmd    = lipgloss.AdaptiveColor{Light: "25", Dark: "75"}
	colorText   = lipgloss.AdaptiveColor{Light: "235", Dark: "255"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "243", Dark: "245"}
	colorFaint  = lipgloss.AdaptiveColor{Light: "250", Dark: "240"}
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleAccent = lipgloss.NewStyle().Foreground(colorAccent)
	styleText   = lipgloss.NewStyle().Foreground(colorText)
	styleMuted  = lipgloss.NewStyle().Foreground(colorMuted)
	styleFaint  = lipgloss.NewStyle().Foreground(colorFaint)
	styleWarn   = lipgloss.NewStyle().Foreground(colorWarn)
	styleCmd    = lipgloss.NewStyle().Foreground(colorCmd)
	styleKey    = lipgloss.NewStyle().Foreground(colorMuted).Width(10)
)

// Status glyphs with their colors.
var (
	glyphOK    = lipgloss.NewStyle().Foreground(colorOK).Render("✓")
	glyphFail  = lipgloss.NewStyle().Foreground(colorErr).Render("✗")
	glyphWarn  = styleWarn.Render("!")
	glyphInfo  = styleMuted.Render("›")
	glyphArrow = styleFaint.Render("→")
)

// printer writes human-oriented status lines. Machine-readable output
// (DOT, TOML, completion scripts) goes straight to the command's writer.
type printer struct{ w io.Writer }

func newPrinter(w io.Writer) printer { return printer{w: w} }

func (p printer) status(glyph, format string, args ...any) {
	fmt.Fprintln(p.w, glyph+" "+fmt.Sprintf(format, args...))
}

func (p printer) success(format string, args ...any) { p.status(glyphOK, format, args...) }
func (p printer) fail(format string, args ...any)    { p.status(glyphFail, format, args...) }
func (p printer) info(format string, args ...any)    { p.status(glyphInfo, format, args...) }

func (p printer) warn(format string, args ...any) {
	p.status(glyphWarn, "%s", styleWarn.Render(fmt.Sprintf(format, args...)))
}

// detail prints an indented, muted line under the previous status.
func (p printer) detail(format string, args ...any) {
	fmt.Fprintln(p.w, "  "+styleFaint.Render(fmt.Sprintf(format, args...)))
}

func (p printer) file(path string) {
	fmt.Fprintln(p.w, "  "+glyphArrow+" "+styleText.Render(path))
}

func (p printer) kv(key, value string) {
	fmt.Fprintln(p.w, styleKey.Render(key)+" "+styleText.Render(value))
}

// stats prints "50000 points · seed 42 · cached".
func (p printer) stats(points int, seed uint64, cached bool) {
	source := styleMuted.Render("fresh")
	if cached {
		source = lipgloss.NewStyle().Foreground(colorOK).Render("cached")
	}
	sep := styleFaint.Render(" · ")
	fmt.Fprintln(p.w, "  "+strings.Join([]string{
		styleFaint.Render(fmt.Sprintf("%d points", points)),
		styleFaint.Render(fmt.Sprintf("seed %d", seed)),
		source,
	}, sep))
}

// hint suggests a follow-up command.
func (p printer) hint(label, cmd string) {
	fmt.Fprintln(p.w, styleFaint.Render(label+":")+" "+styleCmd.Render(cmd))
}
