package metrics

import (
	"math"

	"github.com/san-kum/neuralgrid/internal/field"
)

// OutOfBounds counts particles currently outside the surface bounds.
type OutOfBounds struct {
	name    string
	current int
}

func NewOutOfBounds() *OutOfBounds {
	return &OutOfBounds{name: "out_of_bounds"}
}

func (o *OutOfBounds) Name() string { return o.name }

func (o *OutOfBounds) Observe(f *field.Field) {
	o.current = 0
	for _, p := range f.Particles {
		if p.X < 0 || p.X > f.Width || p.Y < 0 || p.Y > f.Height {
			o.current++
		}
	}
}

func (o *OutOfBounds) Value() float64 { return float64(o.current) }

func (o *OutOfBounds) Reset() { o.current = 0 }

// MaxSpeed is the highest particle speed seen since the last reset.
type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(f *field.Field) {
	for _, p := range f.Particles {
		m.max = math.Max(m.max, math.Hypot(p.VX, p.VY))
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }
