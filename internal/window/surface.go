package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/san-kum/neuralgrid/internal/field"
)

// glow is faked with one wide translucent disc under the dot
const glowAlpha = 0.3

type ebitenSurface struct {
	screen     *ebiten.Image
	background color.NRGBA
}

func (s *ebitenSurface) Clear() {
	s.screen.Fill(s.background)
}

func (s *ebitenSurface) FillCircle(x, y, r float64, p field.Paint, g field.Glow) {
	if g.Blur > 0 && g.Paint.Alpha > 0 {
		vector.DrawFilledCircle(s.screen, float32(x), float32(y), float32(r+g.Blur/2), withAlpha(g.Paint.Color, g.Paint.Alpha*glowAlpha), true)
	}
	vector.DrawFilledCircle(s.screen, float32(x), float32(y), float32(r), withAlpha(p.Color, p.Alpha), true)
}

func (s *ebitenSurface) StrokeLine(x0, y0, x1, y1, width float64, p field.Paint) {
	vector.StrokeLine(s.screen, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), withAlpha(p.Color, p.Alpha), true)
}

func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(min(max(a, 0), 1) * 255)
	return c
}
