package stream

import (
	"encoding/json"
	"math"

	"github.com/san-kum/neuralgrid/internal/sim"
)

// Frame is the wire form of one rendered frame.
//
//	p: [x, y, radius] per particle
//	l: [i, j, opacity] per link
//	b: [x, y, opacity] per burst spark
type Frame struct {
	Frame  int          `json:"f"`
	Width  float64      `json:"w"`
	Height float64      `json:"h"`
	P      [][3]float64 `json:"p"`
	L      [][3]float64 `json:"l"`
	B      [][3]float64 `json:"b"`
}

// Snapshot captures the simulator state as a Frame. Coordinates are
// rounded to a tenth of a unit to keep messages small.
func Snapshot(s *sim.Simulator) Frame {
	f := s.Field()
	fr := Frame{
		Frame:  s.Frame(),
		Width:  f.Width,
		Height: f.Height,
		P:      make([][3]float64, len(f.Particles)),
		L:      make([][3]float64, 0),
		B:      make([][3]float64, 0, s.Bursts().Len()),
	}
	for i, p := range f.Particles {
		fr.P[i] = [3]float64{round(p.X, 10), round(p.Y, 10), round(p.Radius, 100)}
	}
	for _, l := range f.Links(nil) {
		fr.L = append(fr.L, [3]float64{float64(l.I), float64(l.J), round(l.Opacity, 1000)})
	}
	s.Bursts().Each(func(x, y, alpha float64) {
		fr.B = append(fr.B, [3]float64{round(x, 10), round(y, 10), round(alpha, 100)})
	})
	return fr
}

func Encode(s *sim.Simulator) ([]byte, error) {
	return json.Marshal(Snapshot(s))
}

func round(v, scale float64) float64 {
	return math.Round(v*scale) / scale
}
