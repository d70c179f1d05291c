package field

import (
	"math"
	"math/rand"
)

const (
	DefaultMaxParticles  = 100
	DefaultSpacing       = 15.0
	DefaultMaxSpeed      = 0.25
	DefaultMinRadius     = 1.0
	DefaultMaxRadius     = 3.0
	DefaultLinkDistance  = 150.0
	DefaultLinkOpacity   = 0.3
	DefaultPointerRadius = 100.0
	DefaultPointerForce  = 0.0001
)

// Particle is one point in the field. Velocity is in units per frame.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Radius float64
}

// Params tunes the field. Zero values fall back to the defaults.
type Params struct {
	MaxParticles  int     `yaml:"max_particles"`
	Spacing       float64 `yaml:"spacing"`
	MaxSpeed      float64 `yaml:"max_speed"`
	MinRadius     float64 `yaml:"min_radius"`
	MaxRadius     float64 `yaml:"max_radius"`
	LinkDistance  float64 `yaml:"link_distance"`
	LinkOpacity   float64 `yaml:"link_opacity"`
	PointerRadius float64 `yaml:"pointer_radius"`
	PointerForce  float64 `yaml:"pointer_force"`
}

func DefaultParams() Params {
	return Params{
		MaxParticles:  DefaultMaxParticles,
		Spacing:       DefaultSpacing,
		MaxSpeed:      DefaultMaxSpeed,
		MinRadius:     DefaultMinRadius,
		MaxRadius:     DefaultMaxRadius,
		LinkDistance:  DefaultLinkDistance,
		LinkOpacity:   DefaultLinkOpacity,
		PointerRadius: DefaultPointerRadius,
		PointerForce:  DefaultPointerForce,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.MaxParticles <= 0 {
		p.MaxParticles = d.MaxParticles
	}
	if p.Spacing <= 0 {
		p.Spacing = d.Spacing
	}
	if p.MaxSpeed <= 0 {
		p.MaxSpeed = d.MaxSpeed
	}
	if p.MinRadius <= 0 {
		p.MinRadius = d.MinRadius
	}
	if p.MaxRadius < p.MinRadius {
		p.MaxRadius = math.Max(d.MaxRadius, p.MinRadius)
	}
	if p.LinkDistance <= 0 {
		p.LinkDistance = d.LinkDistance
	}
	if p.LinkOpacity <= 0 {
		p.LinkOpacity = d.LinkOpacity
	}
	if p.PointerRadius <= 0 {
		p.PointerRadius = d.PointerRadius
	}
	if p.PointerForce <= 0 {
		p.PointerForce = d.PointerForce
	}
	return p
}

// Count returns how many particles a surface of the given width holds.
func (p Params) Count(width float64) int {
	p = p.withDefaults()
	if width <= 0 || math.IsNaN(width) {
		return 0
	}
	n := int(math.Floor(width / p.Spacing))
	if n > p.MaxParticles {
		n = p.MaxParticles
	}
	return n
}

// Field is the particle collection plus the current surface bounds.
// The particle count is fixed once the field is built.
type Field struct {
	Width, Height float64
	Particles     []Particle
	Params        Params
	Style         Style

	index grid
	links []Link
}

// New seeds a field for a width x height surface using default params.
func New(width, height float64, rng *rand.Rand) *Field {
	return NewWithParams(width, height, DefaultParams(), rng)
}

// NewWithParams seeds a field with explicit tuning.
func NewWithParams(width, height float64, params Params, rng *rand.Rand) *Field {
	params = params.withDefaults()
	n := params.Count(width)

	f := &Field{
		Width:     width,
		Height:    height,
		Particles: make([]Particle, n),
		Params:    params,
		Style:     DefaultStyle(),
	}
	for i := range f.Particles {
		f.Particles[i] = Particle{
			X:      rng.Float64() * width,
			Y:      rng.Float64() * height,
			VX:     (rng.Float64() - 0.5) * 2 * params.MaxSpeed,
			VY:     (rng.Float64() - 0.5) * 2 * params.MaxSpeed,
			Radius: params.MinRadius + rng.Float64()*(params.MaxRadius-params.MinRadius),
		}
	}
	return f
}

// Len returns the number of particles.
func (f *Field) Len() int { return len(f.Particles) }

// Advance moves every particle by its velocity. A velocity component flips
// sign once the position has crossed the matching edge; the position itself
// is never clamped.
func (f *Field) Advance() {
	w, h := f.Width, f.Height
	for i := range f.Particles {
		p := &f.Particles[i]
		p.X += p.VX
		p.Y += p.VY
		if p.X < 0 || p.X > w {
			p.VX = -p.VX
		}
		if p.Y < 0 || p.Y > h {
			p.VY = -p.VY
		}
	}
}

// Resize updates the surface bounds. Particles keep their positions, so
// some may sit outside the new bounds until they happen to cross an edge.
func (f *Field) Resize(width, height float64) {
	f.Width, f.Height = width, height
}

// PointerMove nudges every particle strictly within the pointer radius away
// from (px, py). Velocities are not capped.
func (f *Field) PointerMove(px, py float64) {
	r, k := f.Params.PointerRadius, f.Params.PointerForce
	for i := range f.Particles {
		p := &f.Particles[i]
		dx, dy := p.X-px, p.Y-py
		if math.Sqrt(dx*dx+dy*dy) < r {
			p.VX += dx * k
			p.VY += dy * k
		}
	}
}

// Clone returns a deep copy of the particle state and bounds.
func (f *Field) Clone() *Field {
	c := &Field{
		Width:     f.Width,
		Height:    f.Height,
		Particles: make([]Particle, len(f.Particles)),
		Params:    f.Params,
		Style:     f.Style,
	}
	copy(c.Particles, f.Particles)
	return c
}
