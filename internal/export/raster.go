package export

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/san-kum/neuralgrid/internal/field"
	"golang.org/x/image/vector"
)

const circleSegments = 24

// RasterSurface draws anti-aliased shapes onto an RGBA image. Field units
// are multiplied by Scale to get pixels.
type RasterSurface struct {
	Scale      float64
	Background color.NRGBA

	img *image.RGBA
	ras *vector.Rasterizer
	pts [][2]float64
}

func NewRasterSurface(width, height int, scale float64, bg color.NRGBA) *RasterSurface {
	return &RasterSurface{
		Scale:      scale,
		Background: bg,
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		ras:        vector.NewRasterizer(1, 1),
	}
}

func (s *RasterSurface) Image() *image.RGBA { return s.img }

func (s *RasterSurface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.Background), image.Point{}, draw.Src)
}

func (s *RasterSurface) FillCircle(x, y, r float64, p field.Paint, g field.Glow) {
	cx, cy, rr := x*s.Scale, y*s.Scale, r*s.Scale
	if g.Blur > 0 && g.Paint.Alpha > 0 {
		// two soft rings stand in for a gaussian shadow
		halo := g.Blur * s.Scale / 2
		s.circle(cx, cy, rr+halo, g.Paint.Color, g.Paint.Alpha*0.15)
		s.circle(cx, cy, rr+halo/2, g.Paint.Color, g.Paint.Alpha*0.25)
	}
	s.circle(cx, cy, math.Max(rr, 0.5), p.Color, p.Alpha)
}

func (s *RasterSurface) StrokeLine(x0, y0, x1, y1, width float64, p field.Paint) {
	ax, ay, bx, by := x0*s.Scale, y0*s.Scale, x1*s.Scale, y1*s.Scale
	dx, dy := bx-ax, by-ay
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	half := math.Max(width*s.Scale, 1) / 2
	nx, ny := -dy/length*half, dx/length*half

	s.pts = append(s.pts[:0],
		[2]float64{ax + nx, ay + ny},
		[2]float64{bx + nx, by + ny},
		[2]float64{bx - nx, by - ny},
		[2]float64{ax - nx, ay - ny},
	)
	s.fill(p.Color, p.Alpha)
}

func (s *RasterSurface) circle(cx, cy, r float64, c color.NRGBA, alpha float64) {
	s.pts = s.pts[:0]
	for i := 0; i < circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		s.pts = append(s.pts, [2]float64{cx + r*math.Cos(a), cy + r*math.Sin(a)})
	}
	s.fill(c, alpha)
}

// fill rasterizes the polygon in s.pts inside its clipped bounding box only.
func (s *RasterSurface) fill(c color.NRGBA, alpha float64) {
	if alpha <= 0 || len(s.pts) < 3 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range s.pts {
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	box := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY))).
		Intersect(s.img.Bounds())
	if box.Empty() {
		return
	}

	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	s.ras.Reset(box.Dx(), box.Dy())
	s.ras.DrawOp = draw.Over
	s.ras.MoveTo(float32(s.pts[0][0]-ox), float32(s.pts[0][1]-oy))
	for _, p := range s.pts[1:] {
		s.ras.LineTo(float32(p[0]-ox), float32(p[1]-oy))
	}
	s.ras.ClosePath()

	c.A = uint8(math.Round(math.Min(alpha, 1) * 255))
	s.ras.Draw(s.img, box, image.NewUniform(c), image.Point{})
}
