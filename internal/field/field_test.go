package field_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/neuralgrid/internal/field"
)

type recorder struct {
	clears  int
	circles []float64
	lines   []float64 // alpha per line
}

func (r *recorder) Clear() { r.clears++ }
func (r *recorder) FillCircle(x, y, rad float64, p field.Paint, g field.Glow) {
	r.circles = append(r.circles, rad)
}
func (r *recorder) StrokeLine(x0, y0, x1, y1, w float64, p field.Paint) {
	r.lines = append(r.lines, p.Alpha)
}

func seeded() *rand.Rand { return rand.New(rand.NewSource(42)) }

var _ = Describe("New", func() {
	DescribeTable("particle count",
		func(width float64, want int) {
			f := field.New(width, 600, seeded())
			Expect(f.Len()).To(Equal(want))
		},
		Entry("zero width", 0.0, 0),
		Entry("negative width", -20.0, 0),
		Entry("narrow", 14.0, 0),
		Entry("one per 15 units", 450.0, 30),
		Entry("just under the cap", 1499.0, 99),
		Entry("exactly at the cap", 1500.0, 100),
		Entry("wide surface", 3840.0, 100),
	)

	It("seeds positions, velocities and radii inside their ranges", func() {
		f := field.New(1200, 800, seeded())
		Expect(f.Particles).To(HaveLen(80))
		for _, p := range f.Particles {
			Expect(p.X).To(BeNumerically(">=", 0))
			Expect(p.X).To(BeNumerically("<", 1200))
			Expect(p.Y).To(BeNumerically(">=", 0))
			Expect(p.Y).To(BeNumerically("<", 800))
			Expect(math.Abs(p.VX)).To(BeNumerically("<=", 0.25))
			Expect(math.Abs(p.VY)).To(BeNumerically("<=", 0.25))
			Expect(p.Radius).To(BeNumerically(">=", 1))
			Expect(p.Radius).To(BeNumerically("<", 3))
		}
	})

	It("is reproducible for a fixed seed", func() {
		a := field.New(900, 600, seeded())
		b := field.New(900, 600, seeded())
		Expect(a.Particles).To(Equal(b.Particles))
	})
})

var _ = Describe("Advance", func() {
	It("moves by velocity and reflects once an edge is crossed", func() {
		f := field.New(100, 100, seeded())
		f.Particles = []field.Particle{
			{X: 50, Y: 50, VX: 0.2, VY: -0.1, Radius: 1},
			{X: 99.9, Y: 0.05, VX: 0.25, VY: -0.25, Radius: 1},
		}
		f.Advance()

		Expect(f.Particles[0].X).To(BeNumerically("~", 50.2, 1e-12))
		Expect(f.Particles[0].Y).To(BeNumerically("~", 49.9, 1e-12))
		Expect(f.Particles[0].VX).To(Equal(0.2))

		// crossed both edges: position is not clamped, velocity flips
		Expect(f.Particles[1].X).To(BeNumerically("~", 100.15, 1e-12))
		Expect(f.Particles[1].Y).To(BeNumerically("~", -0.2, 1e-12))
		Expect(f.Particles[1].VX).To(Equal(-0.25))
		Expect(f.Particles[1].VY).To(Equal(0.25))
	})

	It("keeps particles within one velocity step of the bounds", func() {
		f := field.New(600, 400, seeded())
		outside := 0
		for frame := 0; frame < 5000; frame++ {
			f.Advance()
			for _, p := range f.Particles {
				sx, sy := math.Abs(p.VX), math.Abs(p.VY)
				if p.X < -sx || p.X > f.Width+sx || p.Y < -sy || p.Y > f.Height+sy {
					outside++
				}
			}
		}
		Expect(outside).To(BeZero())
	})

	It("is a pure function of prior state and bounds", func() {
		a := field.New(800, 600, seeded())
		b := a.Clone()

		step := func(ps []field.Particle, w, h float64) {
			for i := range ps {
				p := &ps[i]
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
		for k := 0; k < 250; k++ {
			a.Advance()
			step(b.Particles, b.Width, b.Height)
		}
		Expect(a.Particles).To(Equal(b.Particles))
	})

	It("does nothing on an empty field", func() {
		f := field.New(0, 0, seeded())
		f.Advance()
		Expect(f.Particles).To(BeEmpty())
	})
})

var _ = Describe("Opacity", func() {
	DescribeTable("linear falloff scaled by 0.3",
		func(d, want float64) {
			Expect(field.Opacity(d)).To(BeNumerically("~", want, 1e-12))
		},
		Entry("touching", 0.0, 0.3),
		Entry("half way", 75.0, 0.15),
		Entry("near the threshold", 149.0, 0.3/150),
		Entry("at the threshold", 150.0, 0.0),
		Entry("beyond", 400.0, 0.0),
	)
})

var _ = Describe("Links", func() {
	var f *field.Field

	BeforeEach(func() {
		f = field.New(1000, 1000, seeded())
	})

	It("connects pairs strictly closer than 150 units", func() {
		f.Particles = []field.Particle{
			{X: 0, Y: 0},
			{X: 149, Y: 0},
			{X: 299, Y: 0},
			{X: 299, Y: 90},
		}
		links := f.Links(nil)
		Expect(links).To(HaveLen(2))

		Expect(links[0].I).To(Equal(0))
		Expect(links[0].J).To(Equal(1))
		Expect(links[0].Opacity).To(BeNumerically("~", (150.0-149.0)/150*0.3, 1e-12))

		// 1-2 are exactly 150 apart and stay unlinked
		Expect(links[1].I).To(Equal(2))
		Expect(links[1].J).To(Equal(3))
		Expect(links[1].Distance).To(BeNumerically("~", 90, 1e-12))
	})

	It("orders links by first then second index", func() {
		f = field.New(1500, 800, seeded())
		links := f.Links(nil)
		for k := 1; k < len(links); k++ {
			prev, cur := links[k-1], links[k]
			Expect(prev.I < cur.I || (prev.I == cur.I && prev.J < cur.J)).To(BeTrue())
		}
	})
})

var _ = Describe("Render", func() {
	It("clears, then draws every particle and link", func() {
		f := field.New(1000, 1000, seeded())
		f.Particles = []field.Particle{
			{X: 10, Y: 10, Radius: 1.5},
			{X: 10, Y: 85, Radius: 2},
			{X: 900, Y: 900, Radius: 2.5},
		}
		r := &recorder{}
		f.Render(r)

		Expect(r.clears).To(Equal(1))
		Expect(r.circles).To(Equal([]float64{1.5, 2, 2.5}))
		Expect(r.lines).To(HaveLen(1))
		Expect(r.lines[0]).To(BeNumerically("~", 0.15, 1e-12))
	})

	It("only clears an empty field", func() {
		f := field.New(0, 500, seeded())
		r := &recorder{}
		f.Render(r)
		Expect(r.clears).To(Equal(1))
		Expect(r.circles).To(BeEmpty())
		Expect(r.lines).To(BeEmpty())
	})
})

var _ = Describe("Resize", func() {
	It("changes bounds without touching particles", func() {
		f := field.New(1200, 900, seeded())
		before := f.Clone().Particles
		f.Resize(300, 200)

		Expect(f.Width).To(Equal(300.0))
		Expect(f.Height).To(Equal(200.0))
		Expect(f.Particles).To(Equal(before))
	})
})

var _ = Describe("PointerMove", func() {
	var f *field.Field

	BeforeEach(func() {
		f = field.New(1000, 1000, seeded())
		f.Particles = []field.Particle{
			{X: 100, Y: 0, VX: 0.1, VY: 0.1},
			{X: 99, Y: 0, VX: 0.1, VY: 0.1},
			{X: 0, Y: -60, VX: 0, VY: 0},
		}
	})

	It("leaves a particle exactly 100 units away alone", func() {
		f.PointerMove(0, 0)
		Expect(f.Particles[0].VX).To(Equal(0.1))
		Expect(f.Particles[0].VY).To(Equal(0.1))
	})

	It("pushes particles inside the radius away from the pointer", func() {
		f.PointerMove(0, 0)
		Expect(f.Particles[1].VX).To(BeNumerically("~", 0.1+99*0.0001, 1e-12))
		Expect(f.Particles[1].VY).To(BeNumerically("~", 0.1, 1e-12))
		Expect(f.Particles[2].VX).To(BeNumerically("~", 0, 1e-12))
		Expect(f.Particles[2].VY).To(BeNumerically("~", -60*0.0001, 1e-12))
	})

	It("accumulates without a speed cap", func() {
		for i := 0; i < 10000; i++ {
			f.PointerMove(0, 0)
		}
		Expect(f.Particles[1].VX).To(BeNumerically(">", 99))
	})
})

var _ = Describe("Bursts", func() {
	It("emits twenty sparks that fade out after fifty frames", func() {
		b := field.NewBursts()
		b.Spawn(200, 200, seeded())
		Expect(b.Len()).To(Equal(field.BurstSparks))

		b.Each(func(x, y, alpha float64) {
			Expect(x).To(Equal(200.0))
			Expect(alpha).To(Equal(1.0))
		})

		for i := 0; i < 49; i++ {
			b.Advance()
		}
		Expect(b.Len()).To(Equal(field.BurstSparks))
		b.Each(func(x, y, alpha float64) {
			Expect(alpha).To(BeNumerically("~", 0.02, 1e-12))
		})

		b.Advance()
		Expect(b.Len()).To(BeZero())
	})

	It("moves sparks radially at speeds between 3 and 6", func() {
		b := field.NewBursts()
		b.Spawn(0, 0, seeded())
		b.Advance()
		b.Each(func(x, y, _ float64) {
			Expect(math.Hypot(x, y)).To(BeNumerically(">=", 3))
			Expect(math.Hypot(x, y)).To(BeNumerically("<", 6))
		})
	})

	It("caps live sparks by evicting the oldest", func() {
		b := field.NewBursts()
		b.Max = 3 * field.BurstSparks
		b.Spawn(0, 0, seeded())
		b.Advance()
		for i := 0; i < 3; i++ {
			b.Spawn(500, 500, seeded())
		}
		Expect(b.Len()).To(Equal(b.Max))
		b.Each(func(x, y, alpha float64) {
			Expect(x).To(Equal(500.0))
			Expect(alpha).To(Equal(1.0))
		})
	})

	It("holds the default cap under a flood of bursts", func() {
		b := field.NewBursts()
		rng := seeded()
		for i := 0; i < 5000; i++ {
			b.Spawn(float64(i%300), 10, rng)
		}
		Expect(b.Len()).To(Equal(field.DefaultMaxSparks))
	})

	It("draws sparks without clearing the surface", func() {
		b := field.NewBursts()
		b.Spawn(10, 10, seeded())
		r := &recorder{}
		b.Render(r)
		Expect(r.clears).To(BeZero())
		Expect(r.circles).To(HaveLen(field.BurstSparks))
	})
})
