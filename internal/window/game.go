package window

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/san-kum/neuralgrid/internal/config"
	"github.com/san-kum/neuralgrid/internal/field"
	"github.com/san-kum/neuralgrid/internal/metrics"
	"github.com/san-kum/neuralgrid/internal/sim"
	"github.com/san-kum/neuralgrid/internal/viz"
)

type Game struct {
	cfg     *config.Config
	seed    int64
	sim     *sim.Simulator
	links   *metrics.LinkCount
	surface *ebitenSurface
	in      input
	paused  bool
	hud     bool
	logger  *log.Logger
}

func NewGame(cfg *config.Config, logger *log.Logger) *Game {
	fg, bg := viz.GetTheme(cfg.Theme).RGBA()
	g := &Game{
		cfg:     cfg,
		seed:    cfg.Seed,
		surface: &ebitenSurface{background: bg},
		hud:     true,
		logger:  logger,
		in:      input{width: int(cfg.Width), height: int(cfg.Height)},
	}
	g.reseed()

	style := field.DefaultStyle()
	style.Dot.Color, style.Glow.Paint.Color, style.Line = fg, fg, fg
	g.sim.Field().Style = style
	g.sim.Bursts().Style = style
	return g
}

func (g *Game) reseed() {
	var style *field.Style
	if g.sim != nil {
		s := g.sim.Field().Style
		style = &s
	}
	rng := rand.New(rand.NewSource(g.seed))
	f := field.NewWithParams(float64(g.in.width), float64(g.in.height), g.cfg.Params(), rng)
	g.sim = sim.New(f, rng)
	g.links = metrics.NewLinkCount()
	g.sim.AddMetric(g.links)
	if style != nil {
		f.Style = *style
		g.sim.Bursts().Style = *style
	}
	g.logger.Debug("field seeded", "seed", g.seed, "particles", f.Len(), "width", f.Width, "height", f.Height)
}

func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.seed++
		g.reseed()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.hud = !g.hud
	}

	if e, ok := g.in.resize(); ok {
		g.sim.Apply(e)
		g.logger.Debug("resized", "width", e.X, "height", e.Y)
	}
	x, y := ebiten.CursorPosition()
	if e, ok := g.in.cursor(x, y); ok {
		g.sim.Apply(e)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.sim.Apply(g.in.click(x, y))
	}

	if !g.paused {
		g.sim.Step()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.screen = screen
	g.sim.Render(g.surface)
	if g.hud {
		f := g.sim.Field()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("frame %d  particles %d  links %.0f  fps %.0f",
			g.sim.Frame(), f.Len(), g.links.Value(), ebiten.ActualFPS()), 8, 8)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.in.layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run opens a resizable window sized from cfg and blocks until it closes.
func Run(cfg *config.Config, logger *log.Logger) error {
	ebiten.SetWindowSize(int(cfg.Width), int(cfg.Height))
	ebiten.SetWindowTitle("neuralgrid")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FPS)

	logger.Info("opening window", "width", cfg.Width, "height", cfg.Height, "tps", cfg.FPS)
	if err := ebiten.RunGame(NewGame(cfg, logger)); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
