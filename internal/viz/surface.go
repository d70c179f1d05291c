package viz

import (
	"math"

	"github.com/san-kum/neuralgrid/internal/field"
)

const (
	// DefaultScale is field units per braille dot. An 80 column canvas
	// covers a 1280 unit wide field.
	DefaultScale = 8.0

	// Braille has no alpha, so near-invisible links are left out.
	DefaultMinLineAlpha = 0.02
)

// BrailleSurface draws a field onto a braille Canvas.
type BrailleSurface struct {
	Canvas       *Canvas
	Scale        float64
	MinLineAlpha float64
}

func NewBrailleSurface(c *Canvas) *BrailleSurface {
	return &BrailleSurface{Canvas: c, Scale: DefaultScale, MinLineAlpha: DefaultMinLineAlpha}
}

// FieldSize is the field extent the canvas covers, in field units.
func (s *BrailleSurface) FieldSize() (w, h float64) {
	return float64(s.Canvas.DotsWide()) * s.Scale, float64(s.Canvas.DotsHigh()) * s.Scale
}

// CellToField maps the centre of a terminal cell to field coordinates.
func (s *BrailleSurface) CellToField(col, row int) (x, y float64) {
	return (float64(col)*2 + 1) * s.Scale, (float64(row)*4 + 2) * s.Scale
}

func (s *BrailleSurface) Clear() { s.Canvas.Clear() }

func (s *BrailleSurface) FillCircle(x, y, r float64, p field.Paint, _ field.Glow) {
	cx, cy := s.dot(x), s.dot(y)
	rd := int(math.Round(r / s.Scale))
	if rd <= 0 {
		s.Canvas.Plot(cx, cy, p.Alpha)
		return
	}
	for dy := -rd; dy <= rd; dy++ {
		for dx := -rd; dx <= rd; dx++ {
			if dx*dx+dy*dy <= rd*rd {
				s.Canvas.Plot(cx+dx, cy+dy, p.Alpha)
			}
		}
	}
}

func (s *BrailleSurface) StrokeLine(x0, y0, x1, y1, _ float64, p field.Paint) {
	if p.Alpha < s.MinLineAlpha {
		return
	}
	s.Canvas.DrawLine(s.dot(x0), s.dot(y0), s.dot(x1), s.dot(y1), p.Alpha)
}

func (s *BrailleSurface) dot(v float64) int {
	return int(math.Floor(v / s.Scale))
}
