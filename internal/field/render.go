package field

import "image/color"

// Paint is an opaque colour plus a separate opacity in [0, 1].
type Paint struct {
	Color color.NRGBA
	Alpha float64
}

// Glow is a soft halo drawn around a dot.
type Glow struct {
	Blur  float64
	Paint Paint
}

// Surface is anything the field can draw itself onto.
type Surface interface {
	Clear()
	FillCircle(x, y, r float64, p Paint, g Glow)
	StrokeLine(x0, y0, x1, y1, width float64, p Paint)
}

// Style holds the visual constants of the field.
type Style struct {
	Dot       Paint
	Glow      Glow
	Line      color.NRGBA
	LineWidth float64
}

// Matrix is the grid green, rgb(0, 255, 65).
var Matrix = color.NRGBA{R: 0, G: 255, B: 65, A: 255}

func DefaultStyle() Style {
	return Style{
		Dot:       Paint{Color: Matrix, Alpha: 0.8},
		Glow:      Glow{Blur: 10, Paint: Paint{Color: Matrix, Alpha: 0.5}},
		Line:      Matrix,
		LineWidth: 1,
	}
}

// Render clears s and draws every particle followed by every link.
func (f *Field) Render(s Surface) {
	s.Clear()
	f.draw(s)
}

func (f *Field) draw(s Surface) {
	for _, p := range f.Particles {
		s.FillCircle(p.X, p.Y, p.Radius, f.Style.Dot, f.Style.Glow)
	}
	f.links = f.Links(f.links[:0])
	for _, l := range f.links {
		a, b := f.Particles[l.I], f.Particles[l.J]
		s.StrokeLine(a.X, a.Y, b.X, b.Y, f.Style.LineWidth, Paint{Color: f.Style.Line, Alpha: l.Opacity})
	}
}
