package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/motion"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 120
	defaultFPS      = 30
)

type TickMsg time.Time

// Motion is the part of the motion policy the terminal front end drives.
type Motion interface {
	Toggle() bool
	Enabled() bool
	Source() motion.Source
}

// Options configure a Model. Indicator, when set, drives the motion
// badge; otherwise the badge asks the policy on every render.
type Options struct {
	FPS        int
	Theme      string
	Background string
	Indicator  *motion.Indicator
}

// Model renders a particle field into the terminal and feeds it pointer
// and resize events.
type Model struct {
	sched     *field.Scheduler
	motion    Motion
	indicator *motion.Indicator
	canvas    *Canvas
	surface   *Surface

	fps        int
	cols, rows int
	inside     bool

	theme  Theme
	styles styles

	edgeHistory []float64
	lastFrame   time.Time
	measuredFPS float64
}

// NewModel builds a model around sched. The field is resized to the
// initial canvas before the first frame.
func NewModel(sched *field.Scheduler, m Motion, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = defaultFPS
	}
	theme := GetTheme(opts.Theme)
	bg := opts.Background
	if bg == "" {
		bg = string(theme.Background)
	}

	canvas := NewCanvas(width-panelWidth, height)
	model := Model{
		sched:       sched,
		motion:      m,
		indicator:   opts.Indicator,
		canvas:      canvas,
		surface:     NewSurface(canvas, bg),
		fps:         opts.FPS,
		cols:        canvas.Width,
		rows:        canvas.Height,
		theme:       theme,
		styles:      newStyles(theme),
		edgeHistory: make([]float64, 0, historyCapacity),
	}
	model.postResize()
	return model
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and renders a frame on every tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "m":
			m.motion.Toggle()
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.styles = newStyles(m.theme)
		}
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width-panelWidth, 1)
		m.rows = max(msg.Height, 1)
		m.canvas.Resize(m.cols, m.rows)
		m.postResize()
	case tea.MouseMsg:
		if msg.X >= 0 && msg.X < m.cols && msg.Y >= 0 && msg.Y < m.rows {
			x, y := CellToField(msg.X, msg.Y)
			m.sched.Post(field.PointerMoved{X: x, Y: y})
			m.inside = true
		} else if m.inside {
			m.sched.Post(field.PointerLeft{})
			m.inside = false
		}
	case tea.BlurMsg:
		m.sched.Post(field.PointerLeft{})
		m.inside = false
	case TickMsg:
		stats := m.sched.Frame(m.surface)
		m.recordEdges(stats.Edges)
		now := time.Time(msg)
		if !m.lastFrame.IsZero() {
			if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
				m.measuredFPS = 1 / dt
			}
		}
		m.lastFrame = now
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) postResize() {
	w, h := m.surface.Size()
	m.sched.Post(field.Resized{W: w, H: h})
}

func (m Model) motionOn() bool {
	if m.indicator != nil {
		return m.indicator.On()
	}
	return m.motion.Enabled()
}

func (m *Model) recordEdges(n int) {
	if len(m.edgeHistory) == historyCapacity {
		copy(m.edgeHistory, m.edgeHistory[1:])
		m.edgeHistory = m.edgeHistory[:historyCapacity-1]
	}
	m.edgeHistory = append(m.edgeHistory, float64(n))
}

// View renders the canvas and the side panel.
func (m Model) View() string {
	stats := m.sched.Last()
	var s strings.Builder
	s.WriteString(m.styles.header.Render("DRIFTFIELD") + "\n")
	s.WriteString(m.styles.motionBadge(m.motionOn(), m.motion.Source().String()) + "\n\n")

	if len(m.edgeHistory) > 1 {
		chart := asciigraph.Plot(m.edgeHistory,
			asciigraph.Height(5),
			asciigraph.Width(panelWidth-10),
			asciigraph.Caption("Links"))
		s.WriteString(m.styles.graph.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(m.styles.label.Render(label) + m.styles.value.Render(value) + "\n")
	}
	row("Particles", fmt.Sprintf("%d", stats.Particles))
	row("Links", fmt.Sprintf("%d", stats.Edges))
	row("Frames", fmt.Sprintf("%d", m.sched.Frames()))
	row("FPS", fmt.Sprintf("%.1f", m.measuredFPS))
	row("Theme", m.theme.Name)

	s.WriteString(m.styles.help.Render(m.styles.separator(panelWidth-4) + "\nM:Motion T:Theme Q:Quit"))

	canvasView := lipgloss.NewStyle().Width(m.cols).Render(m.canvas.Render())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.styles.panel.Height(m.rows).Render(s.String()))
}

// Run starts the terminal front end and blocks until the user quits.
func Run(m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
