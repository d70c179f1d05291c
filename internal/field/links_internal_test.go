package field

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("grid index", func() {
	DescribeTable("matches the all-pairs pass",
		func(width, height float64, max int, frames int) {
			params := DefaultParams()
			params.MaxParticles = max
			f := NewWithParams(width, height, params, rand.New(rand.NewSource(7)))
			Expect(f.Len()).To(BeNumerically(">", gridThreshold))

			for k := 0; k <= frames; k++ {
				got, ok := f.gridLinks(nil)
				Expect(ok).To(BeTrue())
				Expect(got).To(Equal(f.pairLinks(nil)))
				f.Advance()
			}
		},
		Entry("default cap", 1920.0, 1080.0, 100, 20),
		Entry("dense field", 7500.0, 900.0, 500, 5),
		Entry("tall narrow field", 1200.0, 6000.0, 80, 5),
	)

	It("falls back when particles are scattered far apart", func() {
		f := NewWithParams(1500, 1500, DefaultParams(), rand.New(rand.NewSource(3)))
		f.Particles[0].X = 1e9
		f.Particles[1].Y = -1e9

		_, ok := f.gridLinks(nil)
		Expect(ok).To(BeFalse())
		Expect(f.Links(nil)).To(Equal(f.pairLinks(nil)))
	})
})
