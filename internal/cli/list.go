package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ifscope/pkg/ifs"
	"github.com/matzehuels/ifscope/pkg/render"
)

func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the built-in fractal systems",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), catalogTable(c.Catalog))
			return nil
		},
	}
}

// catalogTable renders one row per system with a colored swatch per map.
func catalogTable(cat *ifs.Catalog) string {
	rows := make([][]string, 0, cat.Len())
	for _, sys := range cat.Systems() {
		rows = append(rows, []string{
			sys.Name(),
			strconv.Itoa(sys.Len()),
			swatches(sys),
			fmtWeights(sys),
			sys.Description(),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("System", "Maps", "Hues", "Probabilities", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return base.Foreground(colorAccent).Bold(true)
			case col == 3:
				return base.Foreground(colorMuted)
			}
			return base
		})
	return t.Render()
}

func swatches(sys *ifs.System) string {
	var b strings.Builder
	for _, h := range sys.Hues() {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(render.HueHex(h))).Render("●"))
	}
	return b.String()
}

func fmtWeights(sys *ifs.System) string {
	parts := make([]string, sys.Len())
	for i := range parts {
		parts[i] = strconv.FormatFloat(sys.Probability(i), 'f', 2, 64)
	}
	return strings.Join(parts, " ")
}
