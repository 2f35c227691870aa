package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ifscope/pkg/ifs"
	"github.com/matzehuels/ifscope/pkg/pipeline"
	"github.com/matzehuels/ifscope/pkg/render"
)

const (
	explorerHeaderLines = 2
	explorerFooterLines = 2
)

type tickMsg time.Time

// exploreModel is the bubbletea model for the interactive explorer. Every
// tick regenerates the point cloud of the selected system.
type exploreModel struct {
	state     *ifs.State
	view      render.Viewport
	canvas    *canvas
	points    []ifs.Point
	maxPoints int
	interval  time.Duration
	paused    bool
	fitNext   bool
	visible   int
	genTime   time.Duration
	width     int
	height    int
}

func newExploreModel(state *ifs.State, maxPoints, fps int) exploreModel {
	return exploreModel{
		state:     state,
		view:      render.DefaultViewport(),
		canvas:    newCanvas(80, 20),
		maxPoints: maxPoints,
		interval:  time.Second / time.Duration(max(fps, 1)),
		fitNext:   true,
		width:     80,
		height:    20 + explorerHeaderLines + explorerFooterLines,
	}
}

func (m exploreModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m exploreModel) Init() tea.Cmd {
	return m.tick()
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.canvas.resize(msg.Width, msg.Height-explorerHeaderLines-explorerFooterLines)
	case tickMsg:
		if !m.paused {
			m.frame()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m exploreModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		return m, tea.Quit
	case "left":
		m.view = m.view.Pan(-render.PanStep, 0)
	case "right":
		m.view = m.view.Pan(render.PanStep, 0)
	case "up":
		m.view = m.view.Pan(0, render.PanStep)
	case "down":
		m.view = m.view.Pan(0, -render.PanStep)
	case "q":
		m.view = m.view.Zoom(render.ZoomIn)
	case "z":
		m.view = m.view.Zoom(render.ZoomOut)
	case "tab":
		m.cycle(1)
	case "shift+tab":
		m.cycle(-1)
	case "]":
		m.setCount(max(m.state.Count()*2, 1))
	case "[":
		m.setCount(m.state.Count() / 2)
	case "f":
		m.fitNext = true
	case "p", " ":
		m.paused = !m.paused
	}
	if m.paused {
		m.visible = m.canvas.plot(m.points, m.view)
	}
	return m, nil
}

// cycle selects the system step places away, wrapping around the catalog.
func (m *exploreModel) cycle(step int) {
	cat := m.state.Catalog()
	i := cat.Index(m.state.Selected().Name())
	next := ((i+step)%cat.Len() + cat.Len()) % cat.Len()
	if err := m.state.Select(cat.At(next).Name()); err == nil {
		m.fitNext = true
	}
}

func (m *exploreModel) setCount(n int) {
	n = min(max(n, 0), m.maxPoints)
	_ = m.state.SetCount(n)
}

// frame regenerates the cloud and redraws the canvas.
func (m *exploreModel) frame() {
	start := time.Now()
	m.points = m.state.Regenerate()
	m.genTime = time.Since(start)
	if m.fitNext && len(m.points) > 0 {
		m.view = render.Fit(ifs.Bounds(m.points), render.DefaultMargin)
		m.fitNext = false
	}
	m.visible = m.canvas.plot(m.points, m.view)
}

func (m exploreModel) View() string {
	var b strings.Builder
	sys := m.state.Selected()

	status := ""
	if m.paused {
		status = styleWarn.Render("  paused")
	}
	b.WriteString(styleTitle.Render(sys.Description()))
	b.WriteString(styleFaint.Render(fmt.Sprintf("  %s  %d maps", sys.Name(), sys.Len())))
	b.WriteString(status)
	b.WriteString("\n")
	b.WriteString(styleFaint.Render(fmt.Sprintf("points %s  visible %d  zoom %.2f  center (%.3f, %.3f)  gen %s",
		styleText.Render(fmt.Sprint(m.state.Count())), m.visible, m.view.Scale, m.view.X, m.view.Y,
		m.genTime.Round(time.Microsecond))))
	b.WriteString("\n")
	b.WriteString(m.canvas.String())
	b.WriteString("\n\n")
	b.WriteString(styleFaint.Render("←↑↓→ pan  q/z zoom  tab system  [/] points  f fit  p pause  esc quit"))
	return b.String()
}

func (c *CLI) exploreCommand() *cobra.Command {
	var (
		points    int
		maxPoints int
		fps       int
		seed      uint64
	)

	cmd := &cobra.Command{
		Use:   "explore [system]",
		Short: "Explore fractals interactively in the terminal",
		Long: `Explore opens a full-screen terminal view that regenerates the selected
system every frame and draws it with braille characters.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeSystems,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Explore
			flags := cmd.Flags()
			if !flags.Changed("points") {
				points = cfg.Points
			}
			if !flags.Changed("max-points") {
				maxPoints = cfg.MaxPoints
			}
			if !flags.Changed("fps") {
				fps = cfg.FPS
			}
			system := cfg.System
			if len(args) > 0 {
				system = args[0]
			}

			opts := []ifs.StateOption{
				ifs.WithSelection(system),
				ifs.WithCount(min(points, maxPoints)),
				ifs.WithBufferReuse(),
			}
			if flags.Changed("seed") {
				opts = append(opts, ifs.WithSource(pipeline.NewRNG(seed)))
			}
			state, err := ifs.NewState(c.Catalog, opts...)
			if err != nil {
				return err
			}

			loggerFromContext(cmd.Context()).Debug("starting explorer", "system", system, "points", state.Count(), "fps", fps)
			p := tea.NewProgram(newExploreModel(state, maxPoints, fps), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			if errors.Is(err, tea.ErrProgramKilled) && cmd.Context().Err() != nil {
				return cmd.Context().Err()
			}
			return err
		},
	}

	cmd.Flags().IntVarP(&points, "points", "n", 20_000, "initial point count")
	cmd.Flags().IntVar(&maxPoints, "max-points", 1_000_000, "upper bound for ] doubling")
	cmd.Flags().IntVar(&fps, "fps", 30, "frames per second")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed the random source for a reproducible first frame")
	return cmd
}
