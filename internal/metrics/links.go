package metrics

import (
	"github.com/san-kum/neuralgrid/internal/field"
	"github.com/san-kum/neuralgrid/internal/sim"
)

// LinkCount is the number of links drawn at the last frame.
type LinkCount struct {
	name    string
	current int
}

func NewLinkCount() *LinkCount {
	return &LinkCount{name: "links"}
}

func (l *LinkCount) Name() string { return l.name }

func (l *LinkCount) Observe(f *field.Field) { l.current = f.LinkCount() }

func (l *LinkCount) Value() float64 { return float64(l.current) }

func (l *LinkCount) Reset() { l.current = 0 }

// Standard returns the metric set recorded for every stored run.
func Standard() []sim.Metric {
	return []sim.Metric{
		NewLinkCount(),
		NewKineticEnergy(),
		NewEnergyDrift(),
		NewOutOfBounds(),
		NewMaxSpeed(),
	}
}
