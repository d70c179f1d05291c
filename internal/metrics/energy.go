package metrics

import (
	"math"

	"github.com/san-kum/neuralgrid/internal/field"
)

// KineticEnergy is the total 0.5*|v|^2 of the field at the last frame.
type KineticEnergy struct {
	name    string
	current float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(f *field.Field) {
	e.current = kinetic(f)
}

func (e *KineticEnergy) Value() float64 { return e.current }

func (e *KineticEnergy) Reset() { e.current = 0 }

func kinetic(f *field.Field) float64 {
	total := 0.0
	for _, p := range f.Particles {
		total += 0.5 * (p.VX*p.VX + p.VY*p.VY)
	}
	return total
}

// EnergyDrift tracks the largest relative change of kinetic energy since the
// first observed frame. Reflection keeps energy constant, so any drift comes
// from pointer input.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(f *field.Field) {
	energy := kinetic(f)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / e.initialEnergy
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
