package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ifscope/pkg/pipeline"
	"github.com/matzehuels/ifscope/pkg/render"
)

// renderFlags holds the render command's flags.
type renderFlags struct {
	output  string
	formats string
	points  int
	seed    uint64
	width   int
	height  int
	zoom    float64
	panX    float64
	panY    float64
	caption string
	noCache bool
	refresh bool
}

func (c *CLI) renderCommand() *cobra.Command {
	def := DefaultConfig().Render
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render [system]",
		Short: "Render a fractal to PNG, SVG or JSON",
		Long: `Render plays the chaos game for a catalog system and writes the result.

Without --seed every run draws a fresh seed, which is printed so the image
can be reproduced. Seeded renders are cached.`,
		Example: `  ifscope render fern
  ifscope render dragon -f png,svg --points 200000 --seed 7
  ifscope render sierpinski --zoom 4 --pan-x 0.25 -o corner.png`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeSystems,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyRenderConfig(cmd, &f)
			system := c.Config.Render.System
			if len(args) == 1 {
				system = args[0]
			}
			opts, err := f.options(system, cmd.Flags().Changed("seed") || c.Config.Render.Seed != 0,
				cmd.Flags().Changed("zoom") || cmd.Flags().Changed("pan-x") || cmd.Flags().Changed("pan-y") || c.Config.Render.Zoom != 0)
			if err != nil {
				return err
			}
			return c.runRender(cmd, opts, f)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (default: <system>)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", strings.Join(def.Formats, ","), "output format(s): png, svg, json (comma-separated)")
	cmd.Flags().IntVarP(&f.points, "points", "n", def.Points, "number of points")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (default: random)")
	cmd.Flags().IntVar(&f.width, "width", def.Width, "image width in pixels")
	cmd.Flags().IntVar(&f.height, "height", def.Height, "image height in pixels")
	cmd.Flags().Float64Var(&f.zoom, "zoom", 1, "zoom factor (default: fit the attractor)")
	cmd.Flags().Float64Var(&f.panX, "pan-x", 0, "view centre x")
	cmd.Flags().Float64Var(&f.panY, "pan-y", 0, "view centre y")
	cmd.Flags().StringVar(&f.caption, "caption", "", "caption drawn in the corner")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached artifacts")

	return cmd
}

// applyRenderConfig copies config values into flags the user did not set.
func (c *CLI) applyRenderConfig(cmd *cobra.Command, f *renderFlags) {
	rc := c.Config.Render
	set := cmd.Flags().Changed
	if !set("format") {
		f.formats = strings.Join(rc.Formats, ",")
	}
	if !set("points") {
		f.points = rc.Points
	}
	if !set("seed") {
		f.seed = rc.Seed
	}
	if !set("width") {
		f.width = rc.Width
	}
	if !set("height") {
		f.height = rc.Height
	}
	if !set("zoom") && rc.Zoom != 0 {
		f.zoom = rc.Zoom
	}
	if !set("pan-x") {
		f.panX = rc.PanX
	}
	if !set("pan-y") {
		f.panY = rc.PanY
	}
	if !set("caption") {
		f.caption = rc.Caption
	}
}

func (f renderFlags) options(system string, seeded, fixedView bool) (pipeline.Options, error) {
	opts := pipeline.Options{
		System:  system,
		Points:  f.points,
		Formats: parseFormats(f.formats),
		Width:   f.width,
		Height:  f.height,
		Caption: f.caption,
		Refresh: f.refresh,
	}
	if len(opts.Formats) == 0 {
		return opts, fmt.Errorf("no output format given")
	}
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return opts, err
	}
	if seeded {
		opts.Seed = pipeline.Seed(f.seed)
	}
	if fixedView {
		opts.Viewport = &render.Viewport{Scale: f.zoom, X: f.panX, Y: f.panY}
	}
	return opts, nil
}

func (c *CLI) runRender(cmd *cobra.Command, opts pipeline.Options, f renderFlags) error {
	ctx := cmd.Context()
	out := newPrinter(cmd.OutOrStdout())
	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spin := startSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Rendering %s...", opts.System))
	prog := newProgress(c.Logger)

	res, err := runner.Execute(ctx, opts)
	spin.stop()
	if err != nil {
		out.fail("Render failed")
		return fmt.Errorf("render %s: %w", opts.System, err)
	}
	prog.done("Rendered", "system", res.System.Name(), "points", res.Stats.Points)

	paths := outputPaths(f.output, res.System.Name(), opts.Formats)
	for _, format := range opts.Formats {
		if err := writeFile(paths[format], res.Artifacts[format]); err != nil {
			return err
		}
	}

	out.success("Rendered %s", styleAccent.Render(res.System.Description()))
	for _, format := range opts.Formats {
		out.file(paths[format])
	}
	out.stats(res.Stats.Points, res.Seed, res.CacheInfo.RenderHit)
	if opts.Seed == nil {
		out.hint("Reproduce", fmt.Sprintf("ifscope render %s --seed %d", res.System.Name(), res.Seed))
	}
	return nil
}

// outputPaths maps each format to a file path. A single format with an
// explicit output uses it verbatim; otherwise the output (or the system
// name) is a base path with a known extension stripped.
func outputPaths(output, system string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	base := system
	if output != "" {
		base = output
		if ext := strings.TrimPrefix(filepath.Ext(output), "."); slices.Contains(pipeline.ValidFormats, ext) {
			base = strings.TrimSuffix(output, "."+ext)
		}
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
