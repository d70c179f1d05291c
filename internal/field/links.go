package field

import (
	"math"
	"slices"
)

// gridThreshold is the particle count above which Links switches from the
// all-pairs pass to the grid index.
const gridThreshold = 64

// Link is a connection between particles I < J closer than the link distance.
type Link struct {
	I, J     int
	Distance float64
	Opacity  float64
}

// Opacity returns the line opacity for two particles d units apart using the
// default link distance and opacity scale.
func Opacity(d float64) float64 {
	return linkOpacity(d, DefaultLinkDistance, DefaultLinkOpacity)
}

func linkOpacity(d, maxDist, scale float64) float64 {
	if d >= maxDist {
		return 0
	}
	return math.Max(0, (maxDist-d)/maxDist) * scale
}

// Links appends every pair closer than the link distance to dst, ordered by
// (I, J). Small fields use the all-pairs pass; larger ones bucket particles
// into a uniform grid with cells one link distance wide.
func (f *Field) Links(dst []Link) []Link {
	if len(f.Particles) > gridThreshold {
		if out, ok := f.gridLinks(dst); ok {
			return out
		}
	}
	return f.pairLinks(dst)
}

// LinkCount returns how many links the current frame would draw.
func (f *Field) LinkCount() int {
	f.links = f.Links(f.links[:0])
	return len(f.links)
}

func (f *Field) pairLinks(dst []Link) []Link {
	ps := f.Particles
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			if l, ok := f.link(i, j); ok {
				dst = append(dst, l)
			}
		}
	}
	return dst
}

func (f *Field) link(i, j int) (Link, bool) {
	a, b := &f.Particles[i], &f.Particles[j]
	dx, dy := a.X-b.X, a.Y-b.Y
	d := math.Sqrt(dx*dx + dy*dy)
	if d >= f.Params.LinkDistance {
		return Link{}, false
	}
	return Link{I: i, J: j, Distance: d, Opacity: linkOpacity(d, f.Params.LinkDistance, f.Params.LinkOpacity)}, true
}

// grid is a counting-sort bucket index reused across frames.
type grid struct {
	cols, rows int
	minX, minY float64
	start      []int // cell -> first slot in order, len cells+1
	order      []int // particle indices grouped by cell
	cell       []int // particle -> cell
	fill       []int
	cand       []int
}

func (f *Field) gridLinks(dst []Link) ([]Link, bool) {
	g := &f.index
	if !g.build(f.Particles, f.Params.LinkDistance) {
		return dst, false
	}
	for i := range f.Particles {
		c := g.cell[i]
		cx, cy := c%g.cols, c/g.cols
		g.cand = g.cand[:0]
		for ny := cy - 1; ny <= cy+1; ny++ {
			if ny < 0 || ny >= g.rows {
				continue
			}
			for nx := cx - 1; nx <= cx+1; nx++ {
				if nx < 0 || nx >= g.cols {
					continue
				}
				n := ny*g.cols + nx
				for _, j := range g.order[g.start[n]:g.start[n+1]] {
					if j > i {
						g.cand = append(g.cand, j)
					}
				}
			}
		}
		slices.Sort(g.cand)
		for _, j := range g.cand {
			if l, ok := f.link(i, j); ok {
				dst = append(dst, l)
			}
		}
	}
	return dst, true
}

// build buckets ps into cells of the given size. It reports false when the
// particles are spread so far apart that the grid would be mostly empty.
func (g *grid) build(ps []Particle, size float64) bool {
	n := len(ps)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range ps {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	spanX, spanY := (maxX-minX)/size, (maxY-minY)/size
	if math.IsNaN(spanX) || math.IsNaN(spanY) || (spanX+1)*(spanY+1) > float64(16*n+64) {
		return false
	}
	g.cols, g.rows = int(spanX)+1, int(spanY)+1
	g.minX, g.minY = minX, minY
	cells := g.cols * g.rows

	g.start = resize(g.start, cells+1)
	g.order = resize(g.order, n)
	g.cell = resize(g.cell, n)
	clear(g.start)

	for i, p := range ps {
		cx := int((p.X - minX) / size)
		cy := int((p.Y - minY) / size)
		c := cy*g.cols + cx
		g.cell[i] = c
		g.start[c+1]++
	}
	for c := 0; c < cells; c++ {
		g.start[c+1] += g.start[c]
	}
	// fill keeps indices ascending within each cell
	g.fill = resize(g.fill, cells)
	copy(g.fill, g.start[:cells])
	for i := range ps {
		c := g.cell[i]
		g.order[g.fill[c]] = i
		g.fill[c]++
	}
	return true
}

func resize(s []int, n int) []int {
	if cap(s) < n {
		return make([]int, n)
	}
	return s[:n]
}
