package viz

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/neuralgrid/internal/config"
	"github.com/san-kum/neuralgrid/internal/export"
	"github.com/san-kum/neuralgrid/internal/field"
	"github.com/san-kum/neuralgrid/internal/metrics"
	"github.com/san-kum/neuralgrid/internal/sim"
)

const (
	width           = 80
	height          = 24
	panelWidth      = 38
	historyCapacity = 300

	// MaxLiveFPS caps the terminal redraw rate.
	MaxLiveFPS = 30

	// gifScale is output pixels per field unit when recording.
	gifScale     = 0.5
	gifMaxFrames = 600

	// average links per particle that fills the density gauge
	fullDegree = 12.0
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(panelWidth)
	headerStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	graphStyle  = lipgloss.NewStyle().Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// canvas origin inside the terminal, from canvasStyle padding
const canvasLeft, canvasTop = 2, 1

type TickMsg time.Time

// Model runs one simulator in the terminal. All field mutation happens in
// Update, which bubbletea calls from a single goroutine.
type Model struct {
	cfg     *config.Config
	seed    int64
	fps     int
	sim     *sim.Simulator
	links   *metrics.LinkCount
	energy  *metrics.KineticEnergy
	canvas  *Canvas
	surface *BrailleSurface
	theme   Theme
	palette []lipgloss.Color

	width, height int
	sized         bool
	running       bool
	showHelp      bool
	status        string

	linkHistory   []float64
	energyHistory []float64

	spring     harmonica.Spring
	gauge      float64
	gaugeSpeed float64

	recording bool
	raster    *export.RasterSurface
	recorder  *export.GIFRecorder
	GIFPath   string
}

// NewModel builds a live model for cfg. The field is sized to the canvas,
// not to cfg.Width and cfg.Height, and is rebuilt once the terminal reports
// its real size.
func NewModel(cfg *config.Config) Model {
	fps := min(max(cfg.FPS, 1), MaxLiveFPS)
	m := Model{
		cfg:     cfg,
		seed:    cfg.Seed,
		fps:     fps,
		canvas:  NewCanvas(width, height),
		width:   width + panelWidth,
		height:  height,
		running: true,
		spring:  harmonica.NewSpring(harmonica.FPS(fps), 6.0, 0.4),
		GIFPath: "neuralgrid.gif",
	}
	m.surface = NewBrailleSurface(m.canvas)
	m.setTheme(GetTheme(cfg.Theme))
	m.reseed(m.seed)
	return m
}

func (m Model) Simulator() *sim.Simulator { return m.sim }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.stopRecording()
			}
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.seed++
			m.reseed(m.seed)
			m.status = fmt.Sprintf("reseeded (%d)", m.seed)
		case "t":
			m.setTheme(NextTheme(m.theme))
			m.status = "theme " + m.theme.Name
		case "g":
			if m.recording {
				m.stopRecording()
			} else {
				m.startRecording()
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) mouse(msg tea.MouseMsg) {
	col, row := msg.X-canvasLeft, msg.Y-canvasTop
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		return
	}
	x, y := m.surface.CellToField(col, row)
	switch {
	case msg.Action == tea.MouseActionMotion:
		m.sim.Apply(sim.Event{Kind: sim.PointerMove, X: x, Y: y})
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.sim.Apply(sim.Event{Kind: sim.Burst, X: x, Y: y})
	}
}

// resize fits the canvas to the terminal. The first size report rebuilds
// the field so its particle count matches the real width; later reports
// only change the bounds. A recording in progress keeps its frame size.
func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.canvas.Resize(w-panelWidth-2*canvasLeft-1, h-2*canvasTop)
	fw, fh := m.surface.FieldSize()
	if !m.sized {
		m.sized = true
		m.reseed(m.seed)
		return
	}
	m.sim.Apply(sim.Event{Kind: sim.Resize, X: fw, Y: fh})
}

func (m *Model) reseed(seed int64) {
	rng := rand.New(rand.NewSource(seed))
	fw, fh := m.surface.FieldSize()
	f := field.NewWithParams(fw, fh, m.cfg.Params(), rng)

	m.sim = sim.New(f, rng)
	m.links = metrics.NewLinkCount()
	m.energy = metrics.NewKineticEnergy()
	m.sim.AddMetric(m.links)
	m.sim.AddMetric(m.energy)
	m.linkHistory = m.linkHistory[:0]
	m.energyHistory = m.energyHistory[:0]
	m.gauge, m.gaugeSpeed = 0, 0
	m.draw()
}

func (m *Model) setTheme(t Theme) {
	m.theme = t
	m.palette = t.Palette(6)
}

// step advances the simulation one frame and updates the side panel.
func (m *Model) step() {
	m.sim.Step()

	m.linkHistory = appendCapped(m.linkHistory, m.links.Value())
	m.energyHistory = appendCapped(m.energyHistory, m.energy.Value())

	target := 0.0
	if n := m.sim.Field().Len(); n > 0 {
		target = min(2*m.links.Value()/float64(n)/fullDegree, 1)
	}
	m.gauge, m.gaugeSpeed = m.spring.Update(m.gauge, m.gaugeSpeed, target)

	m.draw()
	if m.recording {
		m.sim.Render(m.raster)
		m.recorder.Add(m.raster.Image())
	}
}

func (m *Model) draw() {
	m.sim.Render(m.surface)
}

func (m *Model) startRecording() {
	fw, fh := m.surface.FieldSize()
	fg, bg := m.theme.RGBA()
	m.raster = export.NewRasterSurface(int(fw*gifScale), int(fh*gifScale), gifScale, bg)
	m.recorder = export.NewGIFRecorder(export.Palette(bg, fg, 64), 100/m.fps, gifMaxFrames)
	m.recording = true
	m.status = "recording"
}

func (m *Model) stopRecording() {
	m.recording = false
	if err := m.saveGIF(); err != nil {
		m.status = "gif: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("saved %s (%d frames)", m.GIFPath, m.recorder.Len())
}

func (m *Model) saveGIF() error {
	f, err := os.Create(m.GIFPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.recorder.Encode(f)
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.Render(m.palette))

	var s strings.Builder
	title := headerStyle.Render(GradientText("NEURAL GRID", m.theme.Primary, m.theme.Accent))
	s.WriteString(title + "\n")

	switch {
	case m.recording:
		s.WriteString(StatusRecording.Render(AnimatedSpinner(m.sim.Frame()) + " REC"))
	case m.running:
		s.WriteString(StatusRunning.Render("RUNNING"))
	default:
		s.WriteString(StatusPaused.Render("PAUSED"))
	}
	s.WriteString("\n\n")

	if len(m.linkHistory) > 1 {
		chart := asciigraph.Plot(m.linkHistory,
			asciigraph.Height(5),
			asciigraph.Width(panelWidth-12),
			asciigraph.Caption("links"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	f := m.sim.Field()
	s.WriteString(MetricLabel.Render("Frame") + MetricValue.Render(fmt.Sprintf("%d", m.sim.Frame())) + "\n")
	s.WriteString(MetricLabel.Render("Particles") + MetricValue.Render(fmt.Sprintf("%d", f.Len())) + "\n")
	s.WriteString(MetricLabel.Render("Links") + MetricValue.Render(fmt.Sprintf("%.0f", m.links.Value())) + "\n")
	s.WriteString(MetricLabel.Render("Sparks") + MetricValue.Render(fmt.Sprintf("%d", m.sim.Bursts().Len())) + "\n")
	s.WriteString(MetricLabel.Render("Field") + MetricValue.Render(fmt.Sprintf("%.0fx%.0f", f.Width, f.Height)) + "\n")
	s.WriteString(MetricLabel.Render("Theme") + MetricValue.Render(m.theme.Name) + "\n\n")

	s.WriteString(MetricLabel.Render("Density") + ProgressBar(m.gauge, panelWidth-16) + "\n")
	s.WriteString(MetricLabel.Render("Energy") + SparklineChart(m.energyHistory, panelWidth-16) + "\n")

	if m.status != "" {
		s.WriteString("\n" + KeyHint.Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render(Separator(panelWidth-6) + "\nSP:Pause R:Reseed Q:Quit\nT:Theme  G:Record ?:Help\nmouse: move to repel, click to burst"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return GlassPanel.Render(`KEYBOARD SHORTCUTS

Space   pause / resume
R       reseed the field
T       cycle themes
G       start / stop GIF recording
?       toggle this help
Q       quit

Moving the mouse over the grid pushes
nearby particles away. Clicking fires
a burst of sparks.`) + "\n" + mainView
	}
	return mainView
}

// RunLive starts the full-screen live view for cfg.
func RunLive(cfg *config.Config) error {
	p := tea.NewProgram(NewModel(cfg), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
