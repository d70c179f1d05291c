package export

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/san-kum/neuralgrid/internal/field"
)

// SVGSurface accumulates SVG elements for one frame.
type SVGSurface struct {
	Width, Height float64
	Background    color.NRGBA

	body strings.Builder
	glow float64
}

func NewSVGSurface(width, height float64, bg color.NRGBA) *SVGSurface {
	return &SVGSurface{Width: width, Height: height, Background: bg}
}

func (s *SVGSurface) Clear() {
	s.body.Reset()
}

func (s *SVGSurface) FillCircle(x, y, r float64, p field.Paint, g field.Glow) {
	if g.Blur > 0 {
		s.glow = g.Blur
		fmt.Fprintf(&s.body, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.3f" filter="url(#glow)"/>
`, x, y, r, hex(g.Paint.Color), g.Paint.Alpha)
	}
	fmt.Fprintf(&s.body, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.3f"/>
`, x, y, r, hex(p.Color), p.Alpha)
}

func (s *SVGSurface) StrokeLine(x0, y0, x1, y1, width float64, p field.Paint) {
	fmt.Fprintf(&s.body, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f" stroke-opacity="%.4f"/>
`, x0, y0, x1, y1, hex(p.Color), width, p.Alpha)
}

// String returns the complete SVG document.
func (s *SVGSurface) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
`, s.Width, s.Height, s.Width, s.Height))
	if s.glow > 0 {
		sb.WriteString(fmt.Sprintf(`<defs><filter id="glow" x="-200%%" y="-200%%" width="500%%" height="500%%"><feGaussianBlur stdDeviation="%.1f"/></filter></defs>
`, s.glow/2))
	}
	sb.WriteString(fmt.Sprintf(`<rect width="100%%" height="100%%" fill="%s"/>
`, hex(s.Background)))
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (s *SVGSurface) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
