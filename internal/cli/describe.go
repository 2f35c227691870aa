package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ifscope/pkg/render/diagram"
)

const (
	describeDOT = "dot"
	describeSVG = "svg"
	describePNG = "png"
)

func (c *CLI) describeCommand() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "describe <system>",
		Short: "Show the affine maps of a system as a diagram",
		Long: `Describe prints a system's maps and, with --format svg or png, draws them
as a Graphviz diagram. The default format writes DOT source to stdout.`,
		Example: `  ifscope describe fern
  ifscope describe dragon -f svg -o dragon-maps.svg`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeSystems,
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := c.Catalog.Lookup(args[0])
			if err != nil {
				return err
			}
			dot := diagram.ToDOT(sys)

			var data []byte
			switch format {
			case describeDOT:
				data = []byte(dot)
			case describeSVG:
				data, err = diagram.RenderSVG(cmd.Context(), dot)
			case describePNG:
				data, err = diagram.RenderPNG(cmd.Context(), dot)
			default:
				return fmt.Errorf("invalid format: %q (must be one of: dot, svg, png)", format)
			}
			if err != nil {
				return fmt.Errorf("render diagram: %w", err)
			}

			if output == "" && format == describeDOT {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if output == "" {
				output = sys.Name() + "-maps." + format
			}
			if err := writeFile(output, data); err != nil {
				return err
			}

			out := newPrinter(cmd.OutOrStdout())
			out.success("Described %s", styleAccent.Render(sys.Description()))
			out.kv("maps", strconv.Itoa(sys.Len()))
			out.kv("weights", fmtWeights(sys))
			out.file(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", describeDOT, "output format: dot, svg, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout for dot, <system>-maps.<format> otherwise)")
	return cmd
}
