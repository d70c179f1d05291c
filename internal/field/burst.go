package field

import (
	"math"
	"math/rand"
)

const (
	BurstSparks   = 20
	burstLifetime = 50 // frames; opacity drops by 1/50 per frame
	sparkRadius   = 2.0

	// DefaultMaxSparks holds fifty overlapping bursts.
	DefaultMaxSparks = 50 * BurstSparks
)

type spark struct {
	X, Y   float64
	VX, VY float64
	age    int
}

// Alpha is the spark opacity, 1 at spawn and 0 once it expires.
func (s spark) Alpha() float64 {
	return 1 - float64(s.age)/burstLifetime
}

// Bursts is the set of live click bursts drawn over the field. Once Max
// sparks are live, new bursts evict the oldest sparks. Max <= 0 disables the
// cap.
type Bursts struct {
	sparks []spark
	Style  Style
	Max    int
}

func NewBursts() *Bursts {
	return &Bursts{Style: DefaultStyle(), Max: DefaultMaxSparks}
}

// Spawn emits BurstSparks sparks from (x, y) at evenly spaced angles with a
// random speed in [3, 6).
func (b *Bursts) Spawn(x, y float64, rng *rand.Rand) {
	for i := 0; i < BurstSparks; i++ {
		angle := 2 * math.Pi * float64(i) / BurstSparks
		speed := 3 + rng.Float64()*3
		b.sparks = append(b.sparks, spark{
			X: x, Y: y,
			VX: math.Cos(angle) * speed,
			VY: math.Sin(angle) * speed,
		})
	}
	if b.Max > 0 && len(b.sparks) > b.Max {
		// sparks are kept in spawn order, so the oldest sit at the front
		n := copy(b.sparks, b.sparks[len(b.sparks)-b.Max:])
		b.sparks = b.sparks[:n]
	}
}

// Advance moves sparks one frame and drops the ones that have faded out.
func (b *Bursts) Advance() {
	live := b.sparks[:0]
	for _, s := range b.sparks {
		s.X += s.VX
		s.Y += s.VY
		s.age++
		if s.age < burstLifetime {
			live = append(live, s)
		}
	}
	b.sparks = live
}

// Len returns the number of live sparks.
func (b *Bursts) Len() int { return len(b.sparks) }

// Each calls fn for every live spark with its position and opacity.
func (b *Bursts) Each(fn func(x, y, alpha float64)) {
	for _, s := range b.sparks {
		fn(s.X, s.Y, s.Alpha())
	}
}

// Render draws live sparks on top of whatever s already holds.
func (b *Bursts) Render(s Surface) {
	for _, sp := range b.sparks {
		a := sp.Alpha()
		dot := Paint{Color: b.Style.Dot.Color, Alpha: a}
		glow := Glow{Blur: b.Style.Glow.Blur, Paint: Paint{Color: b.Style.Glow.Paint.Color, Alpha: a * b.Style.Glow.Paint.Alpha}}
		s.FillCircle(sp.X, sp.Y, sparkRadius, dot, glow)
	}
}
